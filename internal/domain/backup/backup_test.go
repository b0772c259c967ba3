package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFor(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "utc instant",
			at:   time.Date(2026, 2, 12, 21, 57, 30, 690_000_000, time.UTC),
			want: "2026-02-12_215730_690",
		},
		{
			name: "sub-millisecond part is truncated",
			at:   time.Date(2026, 2, 12, 21, 57, 30, 690_999_999, time.UTC),
			want: "2026-02-12_215730_690",
		},
		{
			name: "zero padded millis",
			at:   time.Date(2026, 1, 1, 3, 0, 0, 7_000_000, time.UTC),
			want: "2026-01-01_030000_007",
		},
		{
			name: "non utc input is converted",
			at:   time.Date(2026, 3, 1, 5, 30, 0, 0, time.FixedZone("IST", 5*3600+1800)),
			want: "2026-03-01_000000_000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDFor(tt.at))
		})
	}
}

func TestIDFor_SameMillisecondCollapses(t *testing.T) {
	a := time.Date(2026, 2, 12, 21, 57, 30, 690_100_000, time.UTC)
	b := a.Add(500 * time.Microsecond)
	assert.Equal(t, IDFor(a), IDFor(b))
	assert.NotEqual(t, IDFor(a), IDFor(a.Add(time.Millisecond)))
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 2, 12, 21, 57, 30, 690_000_000, time.UTC)
	rec := NewRecord(ReasonManual, now)

	assert.Equal(t, "2026-02-12_215730_690", rec.ID)
	assert.Equal(t, "2026-02-12_215730_690.json", rec.Filename)
	assert.Equal(t, ReasonManual, rec.Reason)
	assert.True(t, rec.CreatedAt.Equal(now))
}
