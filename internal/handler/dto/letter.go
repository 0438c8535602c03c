// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/dearyou/dearyou/internal/model"
)

// CreateLetterRequest represents the request body for posting a letter.
type CreateLetterRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// EditLetterRequest represents the request body for editing a letter.
type EditLetterRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// LetterResponse represents a letter in API responses.
type LetterResponse struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Hearts    int64     `json:"hearts"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// LetterListResponse represents a list of letters.
// The full set is always returned; the API has no pagination.
type LetterListResponse struct {
	Data  []LetterResponse `json:"data"`
	Count int              `json:"count"`
}

// ReactResponse reports the outcome of a heart attempt.
type ReactResponse struct {
	AlreadyReacted bool `json:"already_reacted"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToLetterResponse converts a Letter model to LetterResponse DTO.
func ToLetterResponse(letter *model.Letter) *LetterResponse {
	resp := &LetterResponse{
		ID:        letter.ID,
		Recipient: letter.Recipient,
		Message:   letter.Message,
		Hearts:    letter.Hearts,
		Anonymous: letter.IsAnonymous(),
		CreatedAt: letter.CreatedAt,
	}
	if letter.OwnerID != nil {
		resp.OwnerID = *letter.OwnerID
	}
	return resp
}

// ToLetterListResponse converts a slice of Letter models to LetterListResponse.
func ToLetterListResponse(letters []*model.Letter) *LetterListResponse {
	responses := make([]LetterResponse, len(letters))
	for i, letter := range letters {
		responses[i] = *ToLetterResponse(letter)
	}
	return &LetterListResponse{
		Data:  responses,
		Count: len(responses),
	}
}
