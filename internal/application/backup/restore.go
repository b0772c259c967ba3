package backup

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"hungrylist/internal/application/history"
	"hungrylist/internal/domain/backup"
	historydomain "hungrylist/internal/domain/history"
	"hungrylist/internal/shared/db"
	apperrors "hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/logger"
)

// SessionRevoker ends every live session.
type SessionRevoker interface {
	RevokeAll(ctx context.Context) (int64, error)
}

type RestoreOptions struct {
	CreateCurrentBackup bool
}

type RestoreResult struct {
	RestoredBackupID      string `json:"restoredBackupId"`
	CreatedSafetyBackupID string `json:"createdSafetyBackupId,omitempty"`
}

// RestoreEngine installs an artifact in place of the current dataset.
type RestoreEngine struct {
	records  backup.Repository
	dataset  backup.DatasetRepository
	store    ArtifactStore
	archiver *Archiver
	sessions SessionRevoker
	ledger   history.Recorder
	tx       db.Transactor
	logger   logger.Interface
}

func NewRestoreEngine(
	records backup.Repository,
	dataset backup.DatasetRepository,
	store ArtifactStore,
	archiver *Archiver,
	sessions SessionRevoker,
	ledger history.Recorder,
	tx db.Transactor,
	log logger.Interface,
) *RestoreEngine {
	return &RestoreEngine{
		records:  records,
		dataset:  dataset,
		store:    store,
		archiver: archiver,
		sessions: sessions,
		ledger:   ledger,
		tx:       tx,
		logger:   log,
	}
}

// Restore replaces sections, items and history with the contents of backup
// id. Nothing is touched until the artifact has fully parsed. The replace,
// the active-section check, session revocation and the restore event commit
// as one serializable transaction.
func (e *RestoreEngine) Restore(ctx context.Context, id string, opts RestoreOptions) (*RestoreResult, error) {
	record, err := e.records.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up backup %s: %w", id, err)
	}
	if record == nil {
		return nil, backup.ErrNotFound()
	}

	data, err := e.store.Read(record.Filename)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, backup.ErrFileMissing()
		}
		return nil, fmt.Errorf("read backup artifact: %w", err)
	}

	artifact, err := backup.DecodeArtifact(data)
	if err != nil {
		e.logger.Warnw("rejected backup artifact", "backup_id", id, "error", err)
		return nil, backup.ErrInvalidFile().WithCause(err)
	}
	if err := checkReferences(&artifact.Dataset); err != nil {
		e.logger.Warnw("rejected backup artifact", "backup_id", id, "error", err)
		return nil, backup.ErrInvalidFile().WithCause(err)
	}

	result := &RestoreResult{RestoredBackupID: record.ID}
	if opts.CreateCurrentBackup {
		safety, err := e.archiver.Create(ctx, backup.ReasonPreRestore)
		if err != nil {
			return nil, fmt.Errorf("create safety backup: %w", err)
		}
		result.CreatedSafetyBackupID = safety.ID
	}

	var revoked int64
	err = e.tx.RunSerializable(ctx, func(ctx context.Context) error {
		if err := e.dataset.Replace(ctx, &artifact.Dataset); err != nil {
			return fmt.Errorf("replace dataset: %w", err)
		}

		active, err := e.dataset.CountActiveSections(ctx)
		if err != nil {
			return fmt.Errorf("count active sections: %w", err)
		}
		if active == 0 {
			return backup.ErrInvalidContent()
		}

		if revoked, err = e.sessions.RevokeAll(ctx); err != nil {
			return err
		}

		payload := map[string]any{}
		if result.CreatedSafetyBackupID != "" {
			payload["safetyBackupId"] = result.CreatedSafetyBackupID
		}
		return e.ledger.Record(ctx, historydomain.EntityBackup, record.ID, historydomain.ActionRestored, payload)
	})
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Status < 500 {
			e.logger.Warnw("backup restore rejected", "backup_id", id, "error", err)
		} else {
			e.logger.Errorw("backup restore rolled back", "backup_id", id, "error", err)
		}
		return nil, err
	}

	e.logger.Infow("backup restored",
		"backup_id", id, "safety_backup_id", result.CreatedSafetyBackupID, "sessions_revoked", revoked)
	return result, nil
}

// checkReferences rejects items pointing at sections the artifact lacks,
// before any live row is touched.
func checkReferences(ds *backup.Dataset) error {
	sections := make(map[string]struct{}, len(ds.Sections))
	for _, s := range ds.Sections {
		if _, dup := sections[s.ID]; dup {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		sections[s.ID] = struct{}{}
	}
	items := make(map[string]struct{}, len(ds.Items))
	for _, it := range ds.Items {
		if _, ok := sections[it.SectionID]; !ok {
			return fmt.Errorf("item %q references unknown section %q", it.ID, it.SectionID)
		}
		if _, dup := items[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		items[it.ID] = struct{}{}
	}
	return nil
}
