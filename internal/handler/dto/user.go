package dto

import (
	"time"

	"github.com/dearyou/dearyou/internal/model"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents an account in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse represents an established session.
type SessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ProfileResponse aggregates a user's activity.
type ProfileResponse struct {
	User    SessionResponse  `json:"user"`
	Posted  []LetterResponse `json:"posted"`
	Liked   []LetterResponse `json:"liked"`
	Hearted []string         `json:"hearted_letter_ids"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
