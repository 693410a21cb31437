package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Ana Torres"`
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret!"`
}

// LoginRequest represents the credentials sent to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// UserResponse represents a user visible to other users
type UserResponse struct {
	ID    uuid.UUID `json:"id" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name  string    `json:"name" example:"Ana Torres"`
	Email string    `json:"email" example:"ana@example.com"`
	Role  string    `json:"role" example:"member"`
}

// NewUserResponse converts a domain user to its response form
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

// CheckAdminResponse reports whether the current user is an administrator
type CheckAdminResponse struct {
	IsAdmin bool `json:"isAdmin" example:"false"`
}

// TokenResponse carries a bearer token for programmatic API access
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
