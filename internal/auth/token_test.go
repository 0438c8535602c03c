package auth

import "testing"

func TestNewSessionToken_Format(t *testing.T) {
	t.Parallel()

	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	if !ValidTokenFormat(token) {
		t.Errorf("Generated token should match format, got: %s", token)
	}
}

func TestNewSessionToken_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("Duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestValidTokenFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"missing prefix", "4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", false},
		{"wrong prefix", "pk_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", false},
		{"too short", "dy_abc123", false},
		{"uppercase hex", "dy_4F8D2E1B9C7A5F3D2E1B9C7A5F3D2E1B4F8D2E1B9C7A5F3D2E1B9C7A5F3D2E1B", false},
		{"valid", "dy_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidTokenFormat(tt.token); got != tt.want {
				t.Errorf("ValidTokenFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
