// Package backup models point-in-time exports of the household dataset.
package backup

import (
	"context"
	"fmt"
	"time"
)

type Reason string

const (
	ReasonManual     Reason = "manual"
	ReasonScheduled  Reason = "scheduled"
	ReasonPreRestore Reason = "pre_restore"
)

// Record is the metadata row of one artifact.
type Record struct {
	ID        string
	Filename  string
	Reason    Reason
	CreatedAt time.Time
}

// IDFor derives the backup identifier from an instant, in UTC, as
// YYYY-MM-DD_HHMMSS_mmm. It truncates to the millisecond: two backups inside
// the same millisecond share an identifier and collapse to one record.
func IDFor(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s_%03d", t.Format("2006-01-02_150405"), t.Nanosecond()/int(time.Millisecond))
}

// FilenameFor is the artifact filename of a backup identifier.
func FilenameFor(id string) string {
	return fmt.Sprintf("%s.json", id)
}

// NewRecord builds the record for a backup taken at now.
func NewRecord(reason Reason, now time.Time) *Record {
	id := IDFor(now)
	return &Record{
		ID:        id,
		Filename:  FilenameFor(id),
		Reason:    reason,
		CreatedAt: now.UTC(),
	}
}

// Repository persists backup records. Finders return nil, nil on no match.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByFilename(ctx context.Context, filename string) (*Record, error)
	FindByReasonSince(ctx context.Context, reason Reason, since time.Time) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Create(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id string) error
}

// DatasetRepository reads and replaces the primary dataset wholesale.
// Replace must run inside a transaction carried by ctx.
type DatasetRepository interface {
	Export(ctx context.Context) (*Dataset, error)
	Replace(ctx context.Context, ds *Dataset) error
	CountActiveSections(ctx context.Context) (int64, error)
}
