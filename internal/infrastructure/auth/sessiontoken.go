package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// sessionTokenBytes is the entropy of a session token before encoding.
const sessionTokenBytes = 32

// SessionTokenService issues opaque session tokens and derives their
// storage hash. Token: base64url(32 random bytes).
// Hash: hex(HMAC-SHA256(secret, token)).
type SessionTokenService struct {
	secret []byte
}

func NewSessionTokenService(secret string) (*SessionTokenService, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	return &SessionTokenService{secret: []byte(secret)}, nil
}

// Generate returns a fresh token and the hash to store for it.
func (s *SessionTokenService) Generate() (plainToken string, tokenHash string, err error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	plainToken = base64.RawURLEncoding.EncodeToString(buf)
	return plainToken, s.HashToken(plainToken), nil
}

// HashToken is deterministic for a given secret, so a presented token can
// be looked up by its hash.
func (s *SessionTokenService) HashToken(token string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
