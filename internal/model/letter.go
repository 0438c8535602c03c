// Package model defines domain entities for the application.
package model

import "time"

// Letter represents a posted message addressed to a recipient.
// Hearts is a denormalized counter: it always equals the number of
// reaction rows referencing the letter. It is only ever changed inside
// the same transaction that inserts a reaction.
type Letter struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Hearts    int64     `json:"hearts"`
	OwnerID   *string   `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAnonymous reports whether the letter was posted without an account.
func (l *Letter) IsAnonymous() bool {
	return l.OwnerID == nil || *l.OwnerID == ""
}

// OwnedBy reports whether the letter is attributed to the given user.
func (l *Letter) OwnedBy(userID string) bool {
	return l.OwnerID != nil && userID != "" && *l.OwnerID == userID
}
