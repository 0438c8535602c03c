package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dearyou/dearyou/internal/model"
)

// Common errors for letter repository operations.
var (
	ErrLetterNotFound = errors.New("letter not found")
)

// CreateLetter inserts a new letter into the database.
func (r *Repository) CreateLetter(ctx context.Context, letter *model.Letter) error {
	query := `
		INSERT INTO letters (id, recipient, message, hearts, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		letter.ID,
		letter.Recipient,
		letter.Message,
		letter.Hearts,
		letter.OwnerID,
		letter.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create letter: %w", err)
	}

	return nil
}

// GetLetterByID retrieves a letter by its ID.
func (r *Repository) GetLetterByID(ctx context.Context, id string) (*model.Letter, error) {
	query := `
		SELECT id, recipient, message, hearts, owner_id, created_at
		FROM letters
		WHERE id = $1
	`

	letter, err := scanLetter(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to get letter by ID: %w", err)
	}

	return letter, nil
}

// ListLetters retrieves all letters, newest first.
// A non-empty search term filters by case-insensitive substring match on the
// recipient. No pagination: the full result set is returned every call.
func (r *Repository) ListLetters(ctx context.Context, search string) ([]*model.Letter, error) {
	query := `
		SELECT id, recipient, message, hearts, owner_id, created_at
		FROM letters
	`
	args := []any{}

	if search != "" {
		query += ` WHERE recipient ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters: %w", err)
	}
	defer rows.Close()

	return collectLetters(rows)
}

// ListLettersByOwner retrieves all letters owned by a user, newest first.
func (r *Repository) ListLettersByOwner(ctx context.Context, ownerID string) ([]*model.Letter, error) {
	query := `
		SELECT id, recipient, message, hearts, owner_id, created_at
		FROM letters
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters by owner: %w", err)
	}
	defer rows.Close()

	return collectLetters(rows)
}

// ListLettersByIDs retrieves the letters whose IDs are in the given set,
// newest first. An empty set matches nothing and returns an empty slice.
func (r *Repository) ListLettersByIDs(ctx context.Context, ids []string) ([]*model.Letter, error) {
	query := `
		SELECT id, recipient, message, hearts, owner_id, created_at
		FROM letters
		WHERE id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters by IDs: %w", err)
	}
	defer rows.Close()

	return collectLetters(rows)
}

// UpdateLetter overwrites a letter's recipient and message.
// The creation timestamp and heart count are never touched by edits.
func (r *Repository) UpdateLetter(ctx context.Context, letter *model.Letter) error {
	query := `
		UPDATE letters
		SET recipient = $2, message = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		letter.ID,
		letter.Recipient,
		letter.Message,
	)

	if err != nil {
		return fmt.Errorf("failed to update letter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLetterNotFound
	}

	return nil
}

// DeleteLetter removes a letter. Reactions referencing it are removed by
// the ON DELETE CASCADE on the reactions table.
func (r *Repository) DeleteLetter(ctx context.Context, id string) error {
	query := `DELETE FROM letters WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete letter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLetterNotFound
	}

	return nil
}

// scanLetter scans a single row into a Letter model.
func scanLetter(row pgx.Row) (*model.Letter, error) {
	var letter model.Letter
	err := row.Scan(
		&letter.ID,
		&letter.Recipient,
		&letter.Message,
		&letter.Hearts,
		&letter.OwnerID,
		&letter.CreatedAt,
	)
	return &letter, err
}

// collectLetters drains rows into a slice of Letter models.
func collectLetters(rows pgx.Rows) ([]*model.Letter, error) {
	letters := make([]*model.Letter, 0)
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan letter: %w", err)
		}
		letters = append(letters, letter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating letters: %w", err)
	}

	return letters, nil
}
