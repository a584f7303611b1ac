package model

import "time"

// User represents a registered community member. A user may only submit
// ratings scoped to their own declared major.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Major         string    `json:"major"`
	GradYear      int       `json:"grad_year"`
	DisplayName   string    `json:"display_name"`
	CreatedAt     time.Time `json:"created_at"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
}

// RegisterRequest is the payload for creating a new user account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,uncemail"`
	Password string `json:"password" binding:"required,min=8,max=100,strongpassword"`
	Major    string `json:"major" binding:"required,max=100"`
	GradYear int    `json:"grad_year" binding:"required,min=2024,max=2034"`
}

// LoginRequest is the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Major       string `json:"major"`
	GradYear    int    `json:"grad_year"`
}

// AuthResponse is returned after successful registration or login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// PublicView maps a User to its public response shape.
func (u *User) PublicView() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Major:       u.Major,
		GradYear:    u.GradYear,
	}
}
