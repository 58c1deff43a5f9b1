package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `json:"name" gorm:"not null"`
	Email          string         `json:"email" gorm:"not null;uniqueIndex"`
	Password       string         `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role           Role           `json:"role" gorm:"type:varchar(20);default:'user'"`
	Age            string         `json:"age,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	SelectedAvatar string         `json:"selected_avatar" gorm:"default:'avatar1.png'"`
	EmailVerified  bool           `json:"email_verified" gorm:"default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewUser builds a User from raw registration input. The password here is
// the already-hashed credential; plaintext never reaches the model layer.
// Emails are stored lowercase so uniqueness is case-insensitive.
func NewUser(name, email, hashedPassword, role string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if hashedPassword == "" {
		return nil, fmt.Errorf("password is required")
	}
	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}
	return &User{
		Name:           name,
		Email:          email,
		Password:       hashedPassword,
		Role:           r,
		SelectedAvatar: "avatar1.png",
	}, nil
}
