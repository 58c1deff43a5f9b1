package dto

// ErrorResponse is the uniform error body returned by every controller.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// PaginatedResultsDTO wraps a page of result summaries.
type PaginatedResultsDTO struct {
	Results     []TestResultSummaryDTO `json:"results"`
	Total       int64                  `json:"total"`
	TotalPages  int                    `json:"total_pages"`
	CurrentPage int                    `json:"current_page"`
}
