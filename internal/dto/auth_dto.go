package dto

// RegisterDTO is the request body for user registration.
type RegisterDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
}

// LoginDTO is the request body for login.
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponseDTO is returned by register and login.
type AuthResponseDTO struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	SelectedAvatar string `json:"selected_avatar"`
	EmailVerified  bool   `json:"email_verified"`
	Token          string `json:"token"`
}
