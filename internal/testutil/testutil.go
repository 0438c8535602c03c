package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dearyou/dearyou/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 624624

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationOrder lists migration basenames in dependency order.
var migrationOrder = []string{
	"000001_users",
	"000002_letters",
	"000003_reactions",
}

// ResetSchema drops and recreates the full schema for tests.
// Down migrations are applied in reverse dependency order, then all up
// migrations are applied.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationOrder) - 1; i >= 0; i-- {
		downPath := filepath.Join(root, "migrations", migrationOrder[i]+".down.sql")
		downSQL, err := os.ReadFile(downPath)
		if err != nil {
			return fmt.Errorf("read down migration: %w", err)
		}
		if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
			return fmt.Errorf("apply down migration %s: %w", migrationOrder[i], err)
		}
	}

	for _, name := range migrationOrder {
		upPath := filepath.Join(root, "migrations", name+".up.sql")
		upSQL, err := os.ReadFile(upPath)
		if err != nil {
			return fmt.Errorf("read up migration: %w", err)
		}
		if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
			return fmt.Errorf("apply up migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
// The password hash is a placeholder; use auth.HashPassword when the test
// exercises login.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           fmt.Sprintf("user-%d", now.UnixNano()),
		Email:        email,
		PasswordHash: fmt.Sprintf("hash-%d", now.UnixNano()),
		CreatedAt:    now,
	}
}

// NewTestLetter creates an anonymous test letter with sensible defaults.
func NewTestLetter(t testing.TB, recipient string) *model.Letter {
	t.Helper()
	now := time.Now().UTC()
	return &model.Letter{
		ID:        fmt.Sprintf("letter-%d", now.UnixNano()),
		Recipient: recipient,
		Message:   "Dear " + recipient + ", thinking of you.",
		Hearts:    0,
		CreatedAt: now,
	}
}

// NewTestLetterOwnedBy creates a test letter attributed to a user.
func NewTestLetterOwnedBy(t testing.TB, recipient, ownerID string) *model.Letter {
	t.Helper()
	letter := NewTestLetter(t, recipient)
	letter.OwnerID = &ownerID
	return letter
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
