package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionTokenService(t *testing.T) {
	svc, err := NewSessionTokenService("0123456789abcdef")
	require.NoError(t, err)

	token, hash, err := svc.Generate()
	require.NoError(t, err)
	assert.Len(t, token, 43)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken(token))
	assert.NotEqual(t, token, hash)

	other, _, err := svc.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	t.Run("hash depends on secret", func(t *testing.T) {
		svc2, err := NewSessionTokenService("fedcba9876543210")
		require.NoError(t, err)
		assert.NotEqual(t, svc.HashToken(token), svc2.HashToken(token))
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, err := NewSessionTokenService("")
		assert.Error(t, err)
	})
}

func TestBcryptPINVerifier(t *testing.T) {
	t.Run("from pin", func(t *testing.T) {
		v, err := NewBcryptPINVerifier("1234", "", bcrypt.MinCost)
		require.NoError(t, err)
		assert.True(t, v.Verify("1234"))
		assert.False(t, v.Verify("4321"))
		assert.False(t, v.Verify(""))
	})

	t.Run("from hash", func(t *testing.T) {
		hash, err := HashPIN("0000", bcrypt.MinCost)
		require.NoError(t, err)
		v, err := NewBcryptPINVerifier("", hash, 0)
		require.NoError(t, err)
		assert.True(t, v.Verify("0000"))
	})

	t.Run("bad hash", func(t *testing.T) {
		_, err := NewBcryptPINVerifier("", "not-a-hash", 0)
		assert.Error(t, err)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := NewBcryptPINVerifier("", "", 0)
		assert.Error(t, err)
	})
}
