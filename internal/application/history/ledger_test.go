package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungrylist/internal/domain/history"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
)

type mockRepository struct {
	events    []*history.Event
	appendErr error
}

func (m *mockRepository) Append(ctx context.Context, event *history.Event) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockRepository) List(ctx context.Context, filter history.Filter) ([]*history.Event, error) {
	return m.events, nil
}

func TestLedger_Record(t *testing.T) {
	now := time.Date(2026, 2, 12, 21, 57, 30, 0, time.UTC)
	repo := &mockRepository{}
	ledger := NewLedger(repo, biztime.NewManualClock(now), id.Sequence("evt"), logger.NewDiscard())

	err := ledger.Record(context.Background(), history.EntityBackup, "2026-02-12_215730_000",
		history.ActionCreated, map[string]any{"reason": "manual"})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	got := repo.events[0]
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, history.EntityBackup, got.EntityType)
	assert.Equal(t, history.ActionCreated, got.Action)
	assert.Equal(t, "manual", got.Payload["reason"])
	assert.Equal(t, now, got.CreatedAt)
}

func TestLedger_RecordFailure(t *testing.T) {
	repo := &mockRepository{appendErr: errors.New("disk full")}
	ledger := NewLedger(repo, biztime.SystemClock{}, nil, logger.NewDiscard())

	err := ledger.Record(context.Background(), history.EntityItem, "i1", history.ActionDeleted, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.appendErr)
}
