// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/dearyou/dearyou/internal/metrics"
	"github.com/dearyou/dearyou/internal/model"
	"github.com/dearyou/dearyou/internal/repository"
)

// Service errors.
var (
	ErrEmptyRecipient = errors.New("recipient must not be empty")
	ErrEmptyMessage   = errors.New("message must not be empty")
	ErrLetterNotFound = errors.New("letter not found")
)

// LetterService handles letter and reaction business logic.
type LetterService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewLetterService creates a new LetterService.
func NewLetterService(repo *repository.Repository, recorder metrics.Recorder) *LetterService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LetterService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateLetterInput defines input for posting a letter.
// OwnerID is empty for anonymous letters.
type CreateLetterInput struct {
	Recipient string
	Message   string
	OwnerID   string
}

// CreateLetter posts a new letter.
// The creation timestamp is server-assigned and the heart count starts at zero.
func (s *LetterService) CreateLetter(ctx context.Context, input CreateLetterInput) (*model.Letter, error) {
	recipient, message, err := validateLetterContent(input.Recipient, input.Message)
	if err != nil {
		return nil, err
	}

	letter := &model.Letter{
		ID:        newID(),
		Recipient: recipient,
		Message:   message,
		Hearts:    0,
		CreatedAt: time.Now().UTC(),
	}
	if input.OwnerID != "" {
		ownerID := input.OwnerID
		letter.OwnerID = &ownerID
	}

	if err := s.repo.CreateLetter(ctx, letter); err != nil {
		return nil, fmt.Errorf("failed to create letter: %w", err)
	}

	s.metrics.IncLetterCreated()

	return letter, nil
}

// ListLetters returns all letters newest first, optionally filtered by a
// case-insensitive substring match on the recipient. The search term is
// trimmed first; a blank term means no filter.
func (s *LetterService) ListLetters(ctx context.Context, search string) ([]*model.Letter, error) {
	return s.repo.ListLetters(ctx, strings.TrimSpace(search))
}

// GetLetter retrieves a letter by ID.
func (s *LetterService) GetLetter(ctx context.Context, id string) (*model.Letter, error) {
	letter, err := s.repo.GetLetterByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return nil, ErrLetterNotFound
		}
		return nil, err
	}

	return letter, nil
}

// EditLetterInput defines input for editing a letter.
type EditLetterInput struct {
	ID        string
	Recipient string
	Message   string
}

// EditLetter overwrites a letter's recipient and message.
// Timestamp and heart count are untouched. There is deliberately no
// ownership check: any authenticated caller may edit any letter, matching
// the application's permissive editing model.
func (s *LetterService) EditLetter(ctx context.Context, input EditLetterInput) (*model.Letter, error) {
	recipient, message, err := validateLetterContent(input.Recipient, input.Message)
	if err != nil {
		return nil, err
	}

	letter, err := s.repo.GetLetterByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return nil, ErrLetterNotFound
		}
		return nil, err
	}

	letter.Recipient = recipient
	letter.Message = message

	if err := s.repo.UpdateLetter(ctx, letter); err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return nil, ErrLetterNotFound
		}
		return nil, err
	}

	s.metrics.IncLetterEdited()

	return letter, nil
}

// DeleteLetter removes a letter and, via cascade, its reactions.
// Like EditLetter, no ownership check is performed.
func (s *LetterService) DeleteLetter(ctx context.Context, id string) error {
	if err := s.repo.DeleteLetter(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return ErrLetterNotFound
		}
		return err
	}

	s.metrics.IncLetterDeleted()

	return nil
}

// React records a heart from a user on a letter.
// The operation is idempotent per (user, letter) pair: repeated calls
// return alreadyReacted=true and change nothing. The caller must only pass
// a resolved user ID; unauthenticated requests are rejected at the HTTP
// boundary before this runs.
func (s *LetterService) React(ctx context.Context, userID, letterID string) (alreadyReacted bool, err error) {
	reaction := &model.Reaction{
		ID:        newID(),
		UserID:    userID,
		LetterID:  letterID,
		CreatedAt: time.Now().UTC(),
	}

	already, err := s.repo.CreateReaction(ctx, reaction)
	if err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return false, ErrLetterNotFound
		}
		return false, err
	}

	if already {
		s.metrics.IncHeartDuplicate()
	} else {
		s.metrics.IncHeartGiven()
	}

	return already, nil
}

// ReactionsByUser returns every letter ID the user has hearted.
// Used to render which hearts are already filled.
func (s *LetterService) ReactionsByUser(ctx context.Context, userID string) ([]string, error) {
	return s.repo.ListReactionLetterIDs(ctx, userID)
}

// PostedLetters returns all letters attributed to the user, newest first.
func (s *LetterService) PostedLetters(ctx context.Context, userID string) ([]*model.Letter, error) {
	return s.repo.ListLettersByOwner(ctx, userID)
}

// LikedLetters returns all letters the user has hearted, newest first.
// A user with no reactions gets an empty slice, not an error.
func (s *LetterService) LikedLetters(ctx context.Context, userID string) ([]*model.Letter, error) {
	ids, err := s.repo.ListReactionLetterIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListLettersByIDs(ctx, ids)
}

// validateLetterContent trims and checks the required letter fields.
func validateLetterContent(recipient, message string) (string, string, error) {
	recipient = strings.TrimSpace(recipient)
	message = strings.TrimSpace(message)

	if recipient == "" {
		return "", "", ErrEmptyRecipient
	}
	if message == "" {
		return "", "", ErrEmptyMessage
	}

	return recipient, message, nil
}

// newID generates a unique, lexicographically sortable ID.
func newID() string {
	return ulid.Make().String()
}
