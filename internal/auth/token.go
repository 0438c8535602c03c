package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Session token format: dy_<secret>
// Example: dy_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const (
	// TokenSecretLen is the secret length in hex characters (32 random bytes).
	TokenSecretLen = 64
)

var tokenFormatRegex = regexp.MustCompile(`^dy_[a-f0-9]{64}$`)

// NewSessionToken generates an opaque session token.
// The token is the only client-held credential; everything it identifies
// lives server-side in the session store.
func NewSessionToken() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return "dy_" + hex.EncodeToString(secret), nil
}

// ValidTokenFormat checks if a token matches the expected format.
// Used to reject garbage before hitting the session store.
func ValidTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
