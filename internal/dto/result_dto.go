package dto

import "time"

// SubmittedAnswerDTO is one answer inside a submission. SelectedAnswer is
// nil when the question was left unanswered.
type SubmittedAnswerDTO struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedAnswer *int `json:"selected_answer"`
	TimeSpent      int  `json:"time_spent"`
}

// DeviceInfoDTO describes the submitting client.
type DeviceInfoDTO struct {
	Platform  string `json:"platform"`
	Version   string `json:"version"`
	UserAgent string `json:"user_agent"`
}

// ResultSubmitDTO is the canonical submission body for POST /test-results.
type ResultSubmitDTO struct {
	TestID     uint                 `json:"test_id" binding:"required"`
	Answers    []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
	TimeSpent  int                  `json:"time_spent"`  // seconds
	TimeLimit  int                  `json:"time_limit"`  // seconds
	DeviceInfo *DeviceInfoDTO       `json:"device_info"` // optional
}

// QuickSubmitDTO is the historic positional submission body for
// POST /tests/:test_id/submit. Answers align with question order; nil
// entries are unanswered.
type QuickSubmitDTO struct {
	Answers   []*int `json:"answers" binding:"required"`
	TimeSpent int    `json:"time_spent"`
}

// QuickAnswerResultDTO is the per-question outcome of a quick submission.
type QuickAnswerResultDTO struct {
	QuestionID    uint `json:"question_id"`
	UserAnswer    *int `json:"user_answer"`
	CorrectAnswer int  `json:"correct_answer"`
	IsCorrect     bool `json:"is_correct"`
	Points        int  `json:"points"`
}

// QuickSubmitResponseDTO is the unpersisted scoring summary.
type QuickSubmitResponseDTO struct {
	TotalScore     int                    `json:"total_score"`
	CorrectAnswers int                    `json:"correct_answers"`
	TotalQuestions int                    `json:"total_questions"`
	Percentage     float64                `json:"percentage"`
	TimeSpent      int                    `json:"time_spent"`
	Results        []QuickAnswerResultDTO `json:"results"`
}

// AnswerDetailDTO is one scored answer within a persisted result.
type AnswerDetailDTO struct {
	QuestionID     uint                 `json:"question_id"`
	Question       *QuestionResponseDTO `json:"question,omitempty"`
	SelectedAnswer *int                 `json:"selected_answer"`
	CorrectAnswer  int                  `json:"correct_answer"`
	IsCorrect      bool                 `json:"is_correct"`
	TimeSpent      int                  `json:"time_spent"`
}

// CategoryPerformanceDTO aggregates correctness per category.
type CategoryPerformanceDTO struct {
	Category       string  `json:"category"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

// DifficultyPerformanceDTO aggregates correctness per difficulty.
type DifficultyPerformanceDTO struct {
	Difficulty     string  `json:"difficulty"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

// TestResultDetailDTO is the full persisted result representation.
type TestResultDetailDTO struct {
	ID                    uint                       `json:"id"`
	UserID                uint                       `json:"user_id"`
	TestID                uint                       `json:"test_id"`
	TestTitle             string                     `json:"test_title,omitempty"`
	TestCategory          string                     `json:"test_category,omitempty"`
	Score                 float64                    `json:"score"`
	TotalQuestions        int                        `json:"total_questions"`
	CorrectAnswers        int                        `json:"correct_answers"`
	WrongAnswers          int                        `json:"wrong_answers"`
	UnansweredQuestions   int                        `json:"unanswered_questions"`
	TimeSpent             int                        `json:"time_spent"`
	TimeLimit             int                        `json:"time_limit"`
	Answers               []AnswerDetailDTO          `json:"answers,omitempty"`
	CategoryPerformance   []CategoryPerformanceDTO   `json:"category_performance"`
	DifficultyPerformance []DifficultyPerformanceDTO `json:"difficulty_performance"`
	Percentile            float64                    `json:"percentile"`
	Rank                  int                        `json:"rank"`
	TotalParticipants     int                        `json:"total_participants"`
	StartedAt             time.Time                  `json:"started_at"`
	CompletedAt           time.Time                  `json:"completed_at"`
}

// TestResultSummaryDTO is the list-view shape of a result.
type TestResultSummaryDTO struct {
	ID             uint      `json:"id"`
	TestID         uint      `json:"test_id"`
	TestTitle      string    `json:"test_title,omitempty"`
	TestCategory   string    `json:"test_category,omitempty"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Rank           int       `json:"rank"`
	Percentile     float64   `json:"percentile"`
	CompletedAt    time.Time `json:"completed_at"`
}
