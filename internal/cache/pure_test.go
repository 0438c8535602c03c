package cache

import (
	"encoding/json"
	"testing"
)

func TestSessionKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"simple", "dy_abc", "session:dy_abc"},
		{"empty", "", "session:"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sessionKey(tt.token); got != tt.want {
				t.Errorf("sessionKey(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestCachedSession_RoundTrip(t *testing.T) {
	t.Parallel()

	in := cachedSession{UserID: "user-1", Email: "a@x.com"}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out cachedSession
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestCachedSession_CorruptedPayload(t *testing.T) {
	t.Parallel()

	var out cachedSession
	if err := json.Unmarshal([]byte("{not json"), &out); err == nil {
		t.Error("expected error for corrupted payload")
	}
}
