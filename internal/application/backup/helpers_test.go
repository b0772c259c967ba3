package backup

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	appauth "hungrylist/internal/application/auth"
	"hungrylist/internal/application/history"
	"hungrylist/internal/domain/backup"
	"hungrylist/internal/domain/list"
	infraauth "hungrylist/internal/infrastructure/auth"
	"hungrylist/internal/infrastructure/database/dbtest"
	"hungrylist/internal/infrastructure/repository"
	"hungrylist/internal/infrastructure/storage"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/config"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
)

var t0 = time.Date(2026, 2, 12, 21, 57, 30, 690_000_000, time.UTC)

type testEnv struct {
	clock    *biztime.ManualClock
	records  backup.Repository
	dataset  backup.DatasetRepository
	sections list.SectionRepository
	items    list.ItemRepository
	store    ArtifactStore
	fs       afero.Fs
	sessions *appauth.SessionStore
	ledger   *history.Ledger
	archiver *Archiver
	restorer *RestoreEngine
	log      logger.Interface
}

type envOption func(*testEnv)

func withStore(wrap func(ArtifactStore) ArtifactStore) envOption {
	return func(e *testEnv) { e.store = wrap(e.store) }
}

func withLogger(log logger.Interface) envOption {
	return func(e *testEnv) { e.log = log }
}

func withRecords(wrap func(backup.Repository) backup.Repository) envOption {
	return func(e *testEnv) { e.records = wrap(e.records) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	gdb := dbtest.Open(t)
	tm := db.NewTransactionManager(gdb)
	fs := afero.NewBasePathFs(afero.NewMemMapFs(), "/backups")

	e := &testEnv{
		clock:    biztime.NewManualClock(t0),
		records:  repository.NewBackupRepository(gdb),
		dataset:  repository.NewDatasetRepository(gdb),
		sections: repository.NewSectionRepository(gdb),
		items:    repository.NewItemRepository(gdb),
		store:    storage.NewArtifactStore(fs),
		fs:       fs,
		log:      logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	log := e.log

	tokens, err := infraauth.NewSessionTokenService("test-secret-0123456789")
	require.NoError(t, err)
	e.sessions = appauth.NewSessionStore(repository.NewSessionRepository(gdb), tokens, e.clock,
		config.SessionConfig{DefaultExpDays: 1, TrustedExpDays: 365}, nil, log)
	e.ledger = history.NewLedger(repository.NewHistoryRepository(gdb), e.clock, id.Sequence("evt"), log)
	e.archiver = NewArchiver(e.records, e.dataset, e.store, e.ledger, tm, e.clock, log)
	e.restorer = NewRestoreEngine(e.records, e.dataset, e.store, e.archiver, e.sessions, e.ledger, tm, log)
	return e
}

func (e *testEnv) addSection(t *testing.T, id, name string, deleted bool) {
	t.Helper()
	now := e.clock.Now()
	s := &list.Section{ID: id, Name: name, NormalizedName: list.NormalizeName(name), Icon: "🛒", Color: "#f97316", CreatedAt: now, UpdatedAt: now}
	if deleted {
		s.DeletedAt = &now
	}
	require.NoError(t, e.sections.Create(context.Background(), s))
}

func (e *testEnv) addItem(t *testing.T, id, sectionID, name string) {
	t.Helper()
	now := e.clock.Now()
	require.NoError(t, e.items.Create(context.Background(), &list.Item{
		ID: id, SectionID: sectionID, Name: name, NormalizedName: list.NormalizeName(name),
		Priority: list.PrioritySoon, CreatedAt: now, UpdatedAt: now,
	}))
}

// plantArtifact registers a record whose file holds raw.
func (e *testEnv) plantArtifact(t *testing.T, at time.Time, raw string) *backup.Record {
	t.Helper()
	rec := backup.NewRecord(backup.ReasonManual, at)
	require.NoError(t, e.store.Write(rec.Filename, []byte(raw)))
	require.NoError(t, e.records.Create(context.Background(), rec))
	return rec
}

func (e *testEnv) snapshot(t *testing.T) *backup.Dataset {
	t.Helper()
	ds, err := e.dataset.Export(context.Background())
	require.NoError(t, err)
	return ds
}

type faultyStore struct {
	ArtifactStore
	removeErr error
}

func (s *faultyStore) Remove(name string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.ArtifactStore.Remove(name)
}

type faultyRecords struct {
	backup.Repository
	createErr error
}

func (r *faultyRecords) Create(ctx context.Context, record *backup.Record) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.Repository.Create(ctx, record)
}

// blindRecords hides existing rows from the next FindByFilename call, as if a
// concurrent request inserted its row right after the lookup.
type blindRecords struct {
	backup.Repository
	blind bool
}

func (r *blindRecords) FindByFilename(ctx context.Context, filename string) (*backup.Record, error) {
	if r.blind {
		r.blind = false
		return nil, nil
	}
	return r.Repository.FindByFilename(ctx, filename)
}
