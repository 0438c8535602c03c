// Package model defines domain entities for the application.
package model

import "time"

// Reaction marks that a user has hearted a letter.
// At most one reaction exists per (user, letter) pair, enforced by a
// unique index in the database.
type Reaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LetterID  string    `json:"letter_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the server-held identity established at login and cleared
// at logout. The token is opaque to clients.
type Session struct {
	Token  string `json:"-"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
