package list

import (
	"testing"
	"time"

	"hungrylist/internal/application/history"
	"hungrylist/internal/infrastructure/database/dbtest"
	"hungrylist/internal/infrastructure/repository"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/services/markdown"
)

var t0 = time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	clock    *biztime.ManualClock
	ledger   *history.Ledger
	sections *SectionService
	items    *ItemService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := dbtest.Open(t)
	tm := db.NewTransactionManager(gdb)
	log := logger.NewDiscard()
	clock := biztime.NewManualClock(t0)

	sectionRepo := repository.NewSectionRepository(gdb)
	itemRepo := repository.NewItemRepository(gdb)
	ledger := history.NewLedger(repository.NewHistoryRepository(gdb), clock, id.Sequence("evt"), log)

	return &testEnv{
		clock:    clock,
		ledger:   ledger,
		sections: NewSectionService(sectionRepo, itemRepo, ledger, tm, clock, id.Sequence("sec"), log),
		items:    NewItemService(itemRepo, sectionRepo, ledger, tm, clock, markdown.NewRenderer(), id.Sequence("item"), log),
	}
}
