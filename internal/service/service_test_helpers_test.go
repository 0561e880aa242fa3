package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/mintabi/internal/feed"
	"github.com/alexanderramin/mintabi/internal/history"
	"github.com/alexanderramin/mintabi/internal/repository"
	"github.com/alexanderramin/mintabi/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}

type planFixture struct {
	repo     *repository.SQLitePlanRepo
	hub      *feed.Hub
	ledger   *history.Ledger
	observer *recordingObserver
}

func newPlanFixture(t *testing.T) planFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return planFixture{
		repo:     repository.NewSQLitePlanRepo(database),
		hub:      feed.NewHub(),
		ledger:   history.NewLedger(filepath.Join(t.TempDir(), "history.json"), history.DefaultLimit),
		observer: &recordingObserver{},
	}
}

type brokenLedger struct {
	HistoryLedger
}

func (brokenLedger) Record(string, string) error { return errors.New("history file is read-only") }

// captureDefaultLog routes the default slog logger into a buffer for the
// duration of the test.
func captureDefaultLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}
