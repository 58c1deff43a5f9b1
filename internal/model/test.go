package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Difficulty levels shared by tests and questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// TestCategories is the closed set of categories a test or question may
// belong to.
var TestCategories = []string{
	"General Knowledge", "Science", "History", "Sports", "Music",
	"Movies", "Geography", "Literature", "Technology",
}

type Test struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category" gorm:"not null"`
	Difficulty  string `json:"difficulty" gorm:"default:'medium'"`
	// TimeLimit is in minutes; question time limits are in seconds.
	TimeLimit    int            `json:"time_limit" gorm:"default:20"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	Image        string         `json:"image,omitempty"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	Participants int            `json:"participants" gorm:"default:0"`
	Rating       float64        `json:"rating" gorm:"default:0"`
	RatingCount  int            `json:"rating_count" gorm:"default:0"`
	CreatedByID  uint           `json:"created_by_id" gorm:"not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func validCategory(category string) bool {
	for _, c := range TestCategories {
		if c == category {
			return true
		}
	}
	return false
}

func validDifficulty(difficulty string) bool {
	return difficulty == DifficultyEasy || difficulty == DifficultyMedium || difficulty == DifficultyHard
}

// NewTest validates test metadata at construction time. Questions are
// validated separately through NewQuestion and attached by the caller.
func NewTest(title, description, category, difficulty string, timeLimitMinutes int, createdByID uint) (*Test, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !validCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	if !validDifficulty(difficulty) {
		return nil, fmt.Errorf("invalid difficulty %q", difficulty)
	}
	if timeLimitMinutes <= 0 {
		timeLimitMinutes = 20
	}
	return &Test{
		Title:       title,
		Description: description,
		Category:    category,
		Difficulty:  difficulty,
		TimeLimit:   timeLimitMinutes,
		IsActive:    true,
		CreatedByID: createdByID,
	}, nil
}
