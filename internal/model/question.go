package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	TestID       uint     `json:"test_id" gorm:"not null;index"`
	OrderInTest  int      `json:"order_in_test" gorm:"not null"`
	QuestionText string   `json:"question_text" gorm:"type:text;not null"`
	Options      []string `json:"options" gorm:"serializer:json;not null"`
	// CorrectAnswer is the zero-based index into Options. Always valid for
	// persisted questions; NewQuestion enforces the bound at write time.
	CorrectAnswer int            `json:"correct_answer"`
	Explanation   string         `json:"explanation,omitempty" gorm:"type:text"`
	Difficulty    string         `json:"difficulty" gorm:"default:'medium'"`
	Category      string         `json:"category" gorm:"not null"`
	Image         string         `json:"image,omitempty"`
	OptionImages  []string       `json:"option_images,omitempty" gorm:"serializer:json"`
	Points        int            `json:"points" gorm:"default:10"`
	TimeLimit     int            `json:"time_limit" gorm:"default:60"` // seconds
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewQuestion validates a question at construction time: at least two
// options, and a correct-answer index inside the option range.
func NewQuestion(text string, options []string, correctAnswer int, difficulty, category string, orderInTest int) (*Question, error) {
	if text == "" {
		return nil, fmt.Errorf("question text is required")
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("at least 2 options are required, got %d", len(options))
	}
	if correctAnswer < 0 || correctAnswer >= len(options) {
		return nil, fmt.Errorf("correct answer index %d is out of range for %d options", correctAnswer, len(options))
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	if !validDifficulty(difficulty) {
		return nil, fmt.Errorf("invalid difficulty %q", difficulty)
	}
	if !validCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	return &Question{
		OrderInTest:   orderInTest,
		QuestionText:  text,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Difficulty:    difficulty,
		Category:      category,
		Points:        10,
		TimeLimit:     60,
	}, nil
}
