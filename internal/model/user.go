// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that can own letters and give hearts.
// Users are created on signup and never mutated or deleted afterwards.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
