package feed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/mintabi/internal/db"
)

// DefaultPollInterval is how often a Poller re-reads a watched plan's version.
const DefaultPollInterval = 250 * time.Millisecond

// Poller is the Feed used when no Redis is configured. Every process opening
// the same sqlite file sees the others' writes by polling the plan row's
// updated_at; writes from this process are also delivered at once through an
// in-process Hub.
type Poller struct {
	conn     db.DBTX
	local    *Hub
	interval time.Duration
	logger   *slog.Logger
}

func NewPoller(conn db.DBTX, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{conn: conn, local: NewHub(), interval: interval, logger: logger}
}

func (p *Poller) Publish(ctx context.Context, ev Event) error {
	return p.local.Publish(ctx, ev)
}

func (p *Poller) Subscribe(ctx context.Context, planID string) (<-chan Event, func(), error) {
	local, cancelLocal, err := p.local.Subscribe(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	version, found, err := p.version(ctx, planID)
	if err != nil {
		cancelLocal()
		return nil, nil, err
	}

	out := make(chan Event, 1)
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(stop) }) }

	go func() {
		defer close(out)
		defer cancelLocal()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case ev, ok := <-local:
				if !ok {
					return
				}
				offer(out, ev)
			case <-ticker.C:
				next, exists, err := p.version(ctx, planID)
				if err != nil {
					p.logger.DebugContext(ctx, "plan poll failed", "plan_id", planID, "error", err)
					continue
				}
				if !exists {
					if found {
						offer(out, Event{PlanID: planID, Deleted: true})
					}
					found = false
					continue
				}
				if !found || next != version {
					offer(out, Event{PlanID: planID})
				}
				version, found = next, true
			}
		}
	}()
	return out, cancel, nil
}

// version reads the plan's updated_at, which every write restamps.
func (p *Poller) version(ctx context.Context, planID string) (string, bool, error) {
	var updatedAt string
	err := p.conn.QueryRowContext(ctx, `SELECT updated_at FROM plans WHERE id = ?`, planID).Scan(&updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return updatedAt, true, nil
}
