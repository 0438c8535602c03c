package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dearyou/dearyou/internal/testutil"
)

func TestRepository_CreateAndGetLetter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	letter := testutil.NewTestLetter(t, "Alice")
	if err := repo.CreateLetter(ctx, letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	loaded, err := repo.GetLetterByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("get letter by ID: %v", err)
	}

	if loaded.Recipient != letter.Recipient {
		t.Errorf("recipient mismatch: got %q, want %q", loaded.Recipient, letter.Recipient)
	}
	if loaded.Message != letter.Message {
		t.Errorf("message mismatch: got %q, want %q", loaded.Message, letter.Message)
	}
	if loaded.Hearts != 0 {
		t.Errorf("new letter should have 0 hearts, got %d", loaded.Hearts)
	}
	if loaded.OwnerID != nil {
		t.Errorf("anonymous letter should have nil owner, got %v", *loaded.OwnerID)
	}
	if loaded.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestRepository_CreateLetter_WithOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	letter := testutil.NewTestLetterOwnedBy(t, "Bob", user.ID)
	if err := repo.CreateLetter(ctx, letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	loaded, err := repo.GetLetterByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("get letter by ID: %v", err)
	}
	if !loaded.OwnedBy(user.ID) {
		t.Errorf("letter should be owned by %q, got owner %v", user.ID, loaded.OwnerID)
	}
}

func TestRepository_CreateLetter_UnknownOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	letter := testutil.NewTestLetterOwnedBy(t, "Bob", "no-such-user")
	if err := repo.CreateLetter(ctx, letter); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRepository_GetLetterByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if _, err := repo.GetLetterByID(ctx, "nonexistent-id"); !errors.Is(err, ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound, got %v", err)
	}
}

func TestRepository_ListLetters_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	base := time.Now().UTC().Add(-time.Hour)
	for i, recipient := range []string{"first", "second", "third"} {
		letter := testutil.NewTestLetter(t, recipient)
		letter.ID = testutil.UniqueID("letter")
		letter.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.CreateLetter(ctx, letter); err != nil {
			t.Fatalf("create letter %q: %v", recipient, err)
		}
	}

	letters, err := repo.ListLetters(ctx, "")
	if err != nil {
		t.Fatalf("list letters: %v", err)
	}

	if len(letters) != 3 {
		t.Fatalf("expected 3 letters, got %d", len(letters))
	}

	want := []string{"third", "second", "first"}
	for i, letter := range letters {
		if letter.Recipient != want[i] {
			t.Errorf("position %d: got %q, want %q", i, letter.Recipient, want[i])
		}
	}
}

func TestRepository_ListLetters_SearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	for _, recipient := range []string{"Alice", "BALICE", "bob"} {
		letter := testutil.NewTestLetter(t, recipient)
		letter.ID = testutil.UniqueID("letter")
		if err := repo.CreateLetter(ctx, letter); err != nil {
			t.Fatalf("create letter %q: %v", recipient, err)
		}
	}

	letters, err := repo.ListLetters(ctx, "alice")
	if err != nil {
		t.Fatalf("list letters: %v", err)
	}

	if len(letters) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "alice", len(letters))
	}
	for _, letter := range letters {
		if letter.Recipient == "bob" {
			t.Errorf("search %q should not match recipient %q", "alice", letter.Recipient)
		}
	}
}

func TestRepository_ListLetters_SearchNoMatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	letter := testutil.NewTestLetter(t, "Alice")
	if err := repo.CreateLetter(ctx, letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	letters, err := repo.ListLetters(ctx, "zzz")
	if err != nil {
		t.Fatalf("list letters: %v", err)
	}
	if len(letters) != 0 {
		t.Fatalf("expected no matches, got %d", len(letters))
	}
}

func TestRepository_UpdateLetter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	letter := testutil.NewTestLetter(t, "Alice")
	if err := repo.CreateLetter(ctx, letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	letter.Recipient = "Alicia"
	letter.Message = "An edited message."
	if err := repo.UpdateLetter(ctx, letter); err != nil {
		t.Fatalf("update letter: %v", err)
	}

	loaded, err := repo.GetLetterByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("get letter by ID: %v", err)
	}
	if loaded.Recipient != "Alicia" {
		t.Errorf("recipient not updated: got %q", loaded.Recipient)
	}
	if loaded.Message != "An edited message." {
		t.Errorf("message not updated: got %q", loaded.Message)
	}

	// Edits never touch the timestamp or heart count.
	diff := loaded.CreatedAt.Sub(letter.CreatedAt)
	if diff > time.Second || diff < -time.Second {
		t.Errorf("created_at changed by edit: %v vs %v", loaded.CreatedAt, letter.CreatedAt)
	}
	if loaded.Hearts != 0 {
		t.Errorf("hearts changed by edit: got %d", loaded.Hearts)
	}
}

func TestRepository_UpdateLetter_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	missing := testutil.NewTestLetter(t, "Nobody")
	missing.ID = "nonexistent-id"
	if err := repo.UpdateLetter(ctx, missing); !errors.Is(err, ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound, got %v", err)
	}
}

func TestRepository_DeleteLetter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	letter := testutil.NewTestLetter(t, "Alice")
	if err := repo.CreateLetter(ctx, letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	if err := repo.DeleteLetter(ctx, letter.ID); err != nil {
		t.Fatalf("delete letter: %v", err)
	}

	if _, err := repo.GetLetterByID(ctx, letter.ID); !errors.Is(err, ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound after delete, got %v", err)
	}

	if err := repo.DeleteLetter(ctx, letter.ID); !errors.Is(err, ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound on second delete, got %v", err)
	}
}

func TestRepository_ListLettersByOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 2; i++ {
		letter := testutil.NewTestLetterOwnedBy(t, "Alice", user.ID)
		letter.ID = testutil.UniqueID("owned")
		letter.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.CreateLetter(ctx, letter); err != nil {
			t.Fatalf("create owned letter: %v", err)
		}
	}

	anon := testutil.NewTestLetter(t, "Alice")
	anon.ID = testutil.UniqueID("anon")
	if err := repo.CreateLetter(ctx, anon); err != nil {
		t.Fatalf("create anonymous letter: %v", err)
	}

	letters, err := repo.ListLettersByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("list letters by owner: %v", err)
	}

	if len(letters) != 2 {
		t.Fatalf("expected 2 owned letters, got %d", len(letters))
	}
	if letters[0].CreatedAt.Before(letters[1].CreatedAt) {
		t.Error("owned letters should be newest first")
	}
}

func TestRepository_ListLettersByIDs_EmptySet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	letter := testutil.NewTestLetter(t, "Alice")
	if err := repo.CreateLetter(ctx, letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	// An empty ID set must match nothing, not everything.
	letters, err := repo.ListLettersByIDs(ctx, []string{})
	if err != nil {
		t.Fatalf("list letters by empty ID set: %v", err)
	}
	if len(letters) != 0 {
		t.Fatalf("empty ID set should return no letters, got %d", len(letters))
	}
}

func newTestRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "DATABASE_URL")
	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo
}
