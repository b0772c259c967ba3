package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError_Wrapped(t *testing.T) {
	base := NewNotFoundError("BACKUP_NOT_FOUND", "Backup not found.")
	wrapped := fmt.Errorf("restore: %w", base)

	got := GetAppError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, "BACKUP_NOT_FOUND", got.Code)
	assert.True(t, IsNotFoundError(wrapped))
	assert.True(t, HasCode(wrapped, "BACKUP_NOT_FOUND"))
	assert.False(t, IsIntegrityError(wrapped))
}

func TestAppError_CauseIsUnwrappable(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := NewIOError("BACKUP_DELETE_FAILED", "Failed to delete backup file from disk.").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestAuthErrors(t *testing.T) {
	until := time.Date(2026, 2, 13, 3, 0, 0, 0, time.UTC)

	blocked := NewIPBlockedError(until)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Status)
	assert.Equal(t, "2026-02-13T03:00:00Z", blocked.Details["blockedUntil"])

	invalid := NewInvalidCredentialError(2)
	assert.Equal(t, http.StatusUnauthorized, invalid.Status)
	assert.Equal(t, 2, invalid.Details["remainingAttempts"])

	assert.Empty(t, NewAuthRequiredError().Details)
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(stderrors.New("UNIQUE constraint failed: sections.normalized_name")))
	assert.True(t, IsDuplicateError(stderrors.New("Error 1062: Duplicate entry 'x'")))
	assert.False(t, IsDuplicateError(stderrors.New("disk full")))
	assert.False(t, IsDuplicateError(nil))
}
