package repository

import (
	"context"
	"fmt"

	"github.com/dearyou/dearyou/internal/model"
)

// CreateReaction records a heart from a user on a letter.
//
// The insert and the hearts increment run in a single transaction so the
// denormalized counter can never drift from the true reaction count. The
// unique index on (user_id, letter_id) makes the operation idempotent:
// when the pair already exists the insert is a no-op, no increment happens,
// and alreadyReacted is true. Under concurrent calls for the same pair
// exactly one transaction performs the increment.
//
// Returns ErrLetterNotFound if the letter does not exist.
func (r *Repository) CreateReaction(ctx context.Context, reaction *model.Reaction) (alreadyReacted bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	insert := `
		INSERT INTO reactions (id, user_id, letter_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, letter_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, insert,
		reaction.ID,
		reaction.UserID,
		reaction.LetterID,
		reaction.CreatedAt,
	)
	if err != nil {
		// Users are never deleted, so a foreign key violation here means
		// the letter is gone.
		if isForeignKeyViolation(err) {
			return false, ErrLetterNotFound
		}
		return false, fmt.Errorf("failed to insert reaction: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// The pair already exists; nothing was mutated.
		return true, nil
	}

	increment := `UPDATE letters SET hearts = hearts + 1 WHERE id = $1`

	tag, err = tx.Exec(ctx, increment, reaction.LetterID)
	if err != nil {
		return false, fmt.Errorf("failed to increment hearts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, ErrLetterNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit reaction: %w", err)
	}

	return false, nil
}

// ListReactionLetterIDs returns every letter ID the user has hearted.
func (r *Repository) ListReactionLetterIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT letter_id
		FROM reactions
		WHERE user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reactions: %w", err)
	}

	return ids, nil
}

// CountReactionsByLetter returns the number of reaction rows for a letter.
// Used to verify the hearts counter against the true count.
func (r *Repository) CountReactionsByLetter(ctx context.Context, letterID string) (int64, error) {
	query := `SELECT COUNT(*) FROM reactions WHERE letter_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, letterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reactions: %w", err)
	}

	return count, nil
}
