package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPINVerifier checks a presented PIN against the household PIN. Only
// the bcrypt hash is held in memory.
type BcryptPINVerifier struct {
	hash []byte
}

// NewBcryptPINVerifier uses pinHash when set, otherwise hashes pin at the
// given cost.
func NewBcryptPINVerifier(pin, pinHash string, cost int) (*BcryptPINVerifier, error) {
	if pinHash != "" {
		if _, err := bcrypt.Cost([]byte(pinHash)); err != nil {
			return nil, fmt.Errorf("invalid pin hash: %w", err)
		}
		return &BcryptPINVerifier{hash: []byte(pinHash)}, nil
	}
	if pin == "" {
		return nil, errors.New("a pin or pin hash is required")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}
	return &BcryptPINVerifier{hash: hash}, nil
}

// Verify reports whether candidate matches. Malformed input is a mismatch.
func (v *BcryptPINVerifier) Verify(candidate string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)) == nil
}

// HashPIN produces a value suitable for auth.pin_hash.
func HashPIN(pin string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}
