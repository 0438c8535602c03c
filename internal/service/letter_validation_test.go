package service

import (
	"errors"
	"testing"
)

func TestValidateLetterContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		recipient     string
		message       string
		wantRecipient string
		wantMessage   string
		wantErr       error
	}{
		{"valid", "Alice", "Dear Alice", "Alice", "Dear Alice", nil},
		{"trims whitespace", "  Alice  ", "  Dear Alice  ", "Alice", "Dear Alice", nil},
		{"empty recipient", "", "Dear Alice", "", "", ErrEmptyRecipient},
		{"whitespace recipient", "   ", "Dear Alice", "", "", ErrEmptyRecipient},
		{"empty message", "Alice", "", "", "", ErrEmptyMessage},
		{"whitespace message", "Alice", "\n\t ", "", "", ErrEmptyMessage},
		{"both empty", "", "", "", "", ErrEmptyRecipient},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recipient, message, err := validateLetterContent(tt.recipient, tt.message)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if recipient != tt.wantRecipient {
				t.Errorf("recipient = %q, want %q", recipient, tt.wantRecipient)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newID()
		if len(id) != 26 {
			t.Fatalf("ULID should be 26 chars, got %d (%q)", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
