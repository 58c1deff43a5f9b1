package dto

import "time"

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Category      string   `json:"category" binding:"required"`
	Image         string   `json:"image"`
	OptionImages  []string `json:"option_images"`
	Points        int      `json:"points"`
	TimeLimit     int      `json:"time_limit"`
}

// TestCreateDTO is for admins to create a new test with all its questions.
type TestCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Category    string              `json:"category" binding:"required"`
	Difficulty  string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	TimeLimit   int                 `json:"time_limit"`
	Image       string              `json:"image"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestUpdateDTO carries optional metadata updates for an existing test.
type TestUpdateDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	TimeLimit   *int    `json:"time_limit"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"is_active"`
}

// QuestionUpdateDTO carries optional updates for one question. Options and
// CorrectAnswer are re-validated together after patching.
type QuestionUpdateDTO struct {
	QuestionText  *string  `json:"question_text"`
	Options       []string `json:"options" binding:"omitempty,min=2"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   *string  `json:"explanation"`
	Difficulty    *string  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Category      *string  `json:"category"`
	Image         *string  `json:"image"`
	Points        *int     `json:"points"`
	TimeLimit     *int     `json:"time_limit"`
}

// QuestionResponseDTO exposes a question including its correct answer.
// Admin-facing only; solvers get SolvableQuestionDTO instead.
type QuestionResponseDTO struct {
	ID            uint     `json:"id"`
	TestID        uint     `json:"test_id"`
	OrderInTest   int      `json:"order_in_test"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"`
	Category      string   `json:"category"`
	Image         string   `json:"image,omitempty"`
	OptionImages  []string `json:"option_images,omitempty"`
	Points        int      `json:"points"`
	TimeLimit     int      `json:"time_limit"`
}

// TestResponseDTO is the full admin-facing test representation.
type TestResponseDTO struct {
	ID           uint                  `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Category     string                `json:"category"`
	Difficulty   string                `json:"difficulty"`
	TimeLimit    int                   `json:"time_limit"`
	Image        string                `json:"image,omitempty"`
	IsActive     bool                  `json:"is_active"`
	Participants int                   `json:"participants"`
	Rating       float64               `json:"rating"`
	Questions    []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	TimeLimit     int       `json:"time_limit"`
	Image         string    `json:"image,omitempty"`
	Participants  int       `json:"participants"`
	Rating        float64   `json:"rating"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// SolvableQuestionDTO is a question as shown to a solver: the correct
// answer index is deliberately absent.
type SolvableQuestionDTO struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   string   `json:"difficulty"`
	Category     string   `json:"category"`
	Image        string   `json:"image,omitempty"`
	OptionImages []string `json:"option_images,omitempty"`
	Points       int      `json:"points"`
	TimeLimit    int      `json:"time_limit"`
}

// SolvableTestDTO bundles test metadata with its answer-stripped questions.
type SolvableTestDTO struct {
	Test struct {
		ID          uint   `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Category    string `json:"category"`
		Difficulty  string `json:"difficulty"`
		TimeLimit   int    `json:"time_limit"`
		Image       string `json:"image,omitempty"`
	} `json:"test"`
	Questions []SolvableQuestionDTO `json:"questions"`
}
