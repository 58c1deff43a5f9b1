package model

import (
	"time"

	"gorm.io/gorm"
)

// TestResult is one scored submission of a test by a user. Rows are
// append-only: a result is created exactly once at submission time and
// never mutated, which keeps rank snapshots over prior results stable.
type TestResult struct {
	ID        uint `gorm:"primarykey" json:"id"`
	UserID    uint `json:"user_id" gorm:"not null;index"`
	User      User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TestID    uint `json:"test_id" gorm:"not null;index:idx_results_test_score"`
	Test      Test `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Score     float64 `json:"score" gorm:"not null;index:idx_results_test_score"`

	TotalQuestions      int `json:"total_questions" gorm:"not null"`
	CorrectAnswers      int `json:"correct_answers" gorm:"not null"`
	WrongAnswers        int `json:"wrong_answers" gorm:"not null"`
	UnansweredQuestions int `json:"unanswered_questions" gorm:"default:0"`

	TimeSpent int `json:"time_spent" gorm:"not null"` // seconds
	TimeLimit int `json:"time_limit" gorm:"not null"` // seconds

	Answers []AnswerDetail `json:"answers,omitempty" gorm:"foreignKey:TestResultID;constraint:OnDelete:CASCADE"`

	CategoryPerformance   []CategoryPerformance   `json:"category_performance" gorm:"serializer:json"`
	DifficultyPerformance []DifficultyPerformance `json:"difficulty_performance" gorm:"serializer:json"`

	Percentile        float64 `json:"percentile"`
	Rank              int     `json:"rank"`
	TotalParticipants int     `json:"total_participants"`

	StartedAt   time.Time `json:"started_at" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null"`

	DeviceInfo *DeviceInfo `json:"device_info,omitempty" gorm:"serializer:json"`
	IPAddress  string      `json:"ip_address,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerDetail records the outcome of one question within a result.
// SelectedAnswer is nil for unanswered questions.
type AnswerDetail struct {
	ID             uint     `gorm:"primarykey" json:"id"`
	TestResultID   uint     `json:"-" gorm:"not null;index"`
	QuestionID     uint     `json:"question_id" gorm:"not null;index"`
	Question       Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedAnswer *int     `json:"selected_answer"`
	CorrectAnswer  int      `json:"correct_answer"`
	IsCorrect      bool     `json:"is_correct"`
	TimeSpent      int      `json:"time_spent"` // seconds
}

type CategoryPerformance struct {
	Category       string  `json:"category"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

type DifficultyPerformance struct {
	Difficulty     string  `json:"difficulty"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

type DeviceInfo struct {
	Platform  string `json:"platform,omitempty"`
	Version   string `json:"version,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
