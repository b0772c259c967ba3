package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfMonthUTC(t *testing.T) {
	ts := time.Date(2026, 2, 12, 21, 57, 30, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonthUTC(ts))
}

func TestIsFirstOfMonth(t *testing.T) {
	assert.True(t, IsFirstOfMonth(time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)))
	assert.False(t, IsFirstOfMonth(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestManualClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(6 * time.Hour)
	assert.Equal(t, start.Add(6*time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
