// Package backup takes, lists, deletes and restores dataset exports.
package backup

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"hungrylist/internal/application/history"
	"hungrylist/internal/domain/backup"
	historydomain "hungrylist/internal/domain/history"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/logger"
)

// ArtifactStore holds artifact files by bare filename. Read and Remove
// report a missing file with an error matching os.ErrNotExist.
type ArtifactStore interface {
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	Exists(name string) (bool, error)
	Remove(name string) error
}

// Archiver owns backup records and their artifact files.
type Archiver struct {
	records backup.Repository
	dataset backup.DatasetRepository
	store   ArtifactStore
	ledger  history.Recorder
	tx      db.Transactor
	clock   biztime.Clock
	logger  logger.Interface
}

func NewArchiver(
	records backup.Repository,
	dataset backup.DatasetRepository,
	store ArtifactStore,
	ledger history.Recorder,
	tx db.Transactor,
	clock biztime.Clock,
	log logger.Interface,
) *Archiver {
	return &Archiver{
		records: records,
		dataset: dataset,
		store:   store,
		ledger:  ledger,
		tx:      tx,
		clock:   clock,
		logger:  log,
	}
}

// Create exports the dataset into a new artifact. A request landing in the
// same millisecond as an existing backup returns that backup unchanged.
func (a *Archiver) Create(ctx context.Context, reason backup.Reason) (*backup.Record, error) {
	now := a.clock.Now()
	record := backup.NewRecord(reason, now)

	existing, err := a.records.FindByFilename(ctx, record.Filename)
	if err != nil {
		return nil, fmt.Errorf("look up backup %s: %w", record.Filename, err)
	}
	if existing != nil {
		a.logger.Infow("backup already exists for this instant", "backup_id", existing.ID)
		return existing, nil
	}

	var ds *backup.Dataset
	err = a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		ds, err = a.dataset.Export(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export dataset: %w", err)
	}

	data, err := backup.NewArtifact(ds, now).Encode()
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	if err := a.store.Write(record.Filename, data); err != nil {
		a.logger.Errorw("failed to write backup artifact", "filename", record.Filename, "error", err)
		return nil, backup.ErrWriteFailed().WithCause(err)
	}

	err = a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := a.records.Create(ctx, record); err != nil {
			return err
		}
		return a.ledger.Record(ctx, historydomain.EntityBackup, record.ID, historydomain.ActionCreated, map[string]any{
			"filename": record.Filename,
			"reason":   string(record.Reason),
		})
	})
	if err != nil {
		// A concurrent request for the same instant may have inserted the row
		// between the lookup above and this insert. The file is then that
		// record's artifact and must stay.
		winner, lookupErr := a.records.FindByFilename(ctx, record.Filename)
		if lookupErr == nil && winner != nil {
			a.logger.Infow("backup for this instant created concurrently", "backup_id", winner.ID)
			return winner, nil
		}
		if rmErr := a.store.Remove(record.Filename); rmErr != nil {
			a.logger.Errorw("failed to remove orphaned artifact", "filename", record.Filename, "error", rmErr)
		}
		return nil, fmt.Errorf("insert backup record: %w", err)
	}

	a.logger.Infow("backup created",
		"backup_id", record.ID, "reason", record.Reason,
		"sections", len(ds.Sections), "items", len(ds.Items), "history_events", len(ds.HistoryEvents))
	return record, nil
}

// List returns every backup, newest first.
func (a *Archiver) List(ctx context.Context) ([]*backup.Record, error) {
	records, err := a.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return records, nil
}

// Get returns the record of id or BACKUP_NOT_FOUND.
func (a *Archiver) Get(ctx context.Context, id string) (*backup.Record, error) {
	record, err := a.records.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up backup %s: %w", id, err)
	}
	if record == nil {
		return nil, backup.ErrNotFound()
	}
	return record, nil
}

// Delete removes the artifact file and then the record. When the file cannot
// be removed the record stays, so a record never outlives a deletion it
// claims. A file that is already gone does not block the deletion.
func (a *Archiver) Delete(ctx context.Context, id string) error {
	record, err := a.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := a.store.Remove(record.Filename); err != nil {
		if !stderrors.Is(err, os.ErrNotExist) {
			a.logger.Errorw("failed to delete backup artifact", "backup_id", id, "error", err)
			return backup.ErrDeleteFailed().WithCause(err)
		}
		a.logger.Warnw("backup artifact already missing, deleting record", "backup_id", id, "filename", record.Filename)
	}

	err = a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := a.records.Delete(ctx, id); err != nil {
			return err
		}
		return a.ledger.Record(ctx, historydomain.EntityBackup, id, historydomain.ActionDeleted, map[string]any{
			"filename": record.Filename,
		})
	})
	if err != nil {
		return fmt.Errorf("delete backup record: %w", err)
	}

	a.logger.Infow("backup deleted", "backup_id", id)
	return nil
}

// RunScheduled takes the monthly backup.
func (a *Archiver) RunScheduled(ctx context.Context) error {
	_, err := a.Create(ctx, backup.ReasonScheduled)
	return err
}

// CatchUp takes the monthly backup at startup when today is the first of
// the month in the business timezone and none was taken yet this month.
func (a *Archiver) CatchUp(ctx context.Context) error {
	now := a.clock.Now()
	if !biztime.IsFirstOfMonth(now) {
		return nil
	}

	existing, err := a.records.FindByReasonSince(ctx, backup.ReasonScheduled, biztime.StartOfMonthUTC(now))
	if err != nil {
		return fmt.Errorf("look up scheduled backup: %w", err)
	}
	if existing != nil {
		return nil
	}

	a.logger.Infow("no scheduled backup yet this month, taking one now")
	return a.RunScheduled(ctx)
}
