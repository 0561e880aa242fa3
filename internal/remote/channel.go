// Package remote keeps a local board in step with the shared plan document:
// live subscription, partial writes, and the saving indicator.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/feed"
	"github.com/alexanderramin/mintabi/internal/repository"
)

// Handlers receive subscription callbacks. They run on the subscription's
// goroutine, one at a time, in delivery order. Nil handlers are skipped.
type Handlers struct {
	OnSnapshot func(domain.Plan)
	// OnNotFound is terminal: no further callbacks follow.
	OnNotFound func()
	OnError    func(error)
}

// Channel is the remote sync channel for any number of plans.
type Channel struct {
	repo   repository.PlanRepo
	feed   feed.Feed
	logger *slog.Logger

	inflight atomic.Int64
	writes   sync.WaitGroup

	// swap serialises Subscribe so replacing a plan's subscription is atomic;
	// mu guards subs and is also taken by delivery goroutines.
	swap sync.Mutex
	mu   sync.Mutex
	subs map[string]*Subscription
}

// NewChannel creates a Channel. A nil logger discards write failures.
func NewChannel(repo repository.PlanRepo, f feed.Feed, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Channel{
		repo:   repo,
		feed:   f,
		logger: logger,
		subs:   make(map[string]*Subscription),
	}
}

// Subscription is one live view of a plan.
type Subscription struct {
	planID string
	cancel func()
	done   chan struct{}
	once   sync.Once
}

// Close ends the subscription and waits for the delivery goroutine to
// return. Safe to call more than once. Must not be called from a handler.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once no more callbacks will be delivered.
func (s *Subscription) Done() <-chan struct{} { return s.done }

func (s *Subscription) PlanID() string { return s.planID }

// Subscribe opens a live view of planID. The current document is delivered
// first, then again after every change, including this client's own writes.
// Subscribing again to the same plan closes the previous subscription.
func (c *Channel) Subscribe(ctx context.Context, planID string, h Handlers) (*Subscription, error) {
	c.swap.Lock()
	defer c.swap.Unlock()

	c.mu.Lock()
	prev := c.subs[planID]
	c.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	ctx, cancelCtx := context.WithCancel(ctx)
	events, cancelFeed, err := c.feed.Subscribe(ctx, planID)
	if err != nil {
		cancelCtx()
		return nil, fmt.Errorf("subscribing to plan %s: %w", planID, err)
	}
	sub := &Subscription{
		planID: planID,
		done:   make(chan struct{}),
		cancel: func() {
			cancelFeed()
			cancelCtx()
		},
	}

	c.mu.Lock()
	c.subs[planID] = sub
	c.mu.Unlock()

	go c.deliver(ctx, sub, events, h)
	return sub, nil
}

func (c *Channel) deliver(ctx context.Context, sub *Subscription, events <-chan feed.Event, h Handlers) {
	defer func() {
		c.mu.Lock()
		if c.subs[sub.planID] == sub {
			delete(c.subs, sub.planID)
		}
		c.mu.Unlock()
		close(sub.done)
	}()

	if !c.refresh(ctx, sub.planID, h) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Deleted {
				notFound(h)
				return
			}
			if !c.refresh(ctx, sub.planID, h) {
				return
			}
		}
	}
}

// refresh reads the document and hands it to the handlers. It reports
// whether delivery should continue.
func (c *Channel) refresh(ctx context.Context, planID string, h Handlers) bool {
	plan, err := c.repo.Get(ctx, planID)
	switch {
	case err == nil:
		if h.OnSnapshot != nil {
			h.OnSnapshot(*plan)
		}
		return true
	case errors.Is(err, domain.ErrNotFound):
		notFound(h)
		return false
	case ctx.Err() != nil:
		return false
	default:
		if h.OnError != nil {
			h.OnError(err)
		}
		return true
	}
}

func notFound(h Handlers) {
	if h.OnNotFound != nil {
		h.OnNotFound()
	}
}

// Persist writes patch to the plan and notifies subscribers. Failures are
// logged and returned; nothing is retried or rolled back.
func (c *Channel) Persist(ctx context.Context, planID string, patch domain.PlanPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	c.inflight.Add(1)
	defer c.inflight.Add(-1)

	start := time.Now()
	err := c.repo.Update(ctx, planID, patch)
	if err == nil {
		if pubErr := c.feed.Publish(ctx, feed.Event{PlanID: planID}); pubErr != nil {
			c.logger.WarnContext(ctx, "plan change notification failed", "plan_id", planID, "error", pubErr)
		}
	}

	attrs := []any{
		"plan_id", planID,
		"duration_ms", time.Since(start).Milliseconds(),
		"success", err == nil,
		"title", patch.Title != nil,
		"cards", patch.Cards != nil,
		"days", patch.Days != nil,
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "remote_persist", append(attrs, "error", err.Error())...)
		return fmt.Errorf("persisting plan %s: %w", planID, err)
	}
	c.logger.DebugContext(ctx, "remote_persist", attrs...)
	return nil
}

// PersistAsync runs Persist in the background. The result is discarded.
func (c *Channel) PersistAsync(planID string, patch domain.PlanPatch) {
	if patch.IsEmpty() {
		return
	}
	c.writes.Add(1)
	c.inflight.Add(1)
	go func() {
		defer c.writes.Done()
		defer c.inflight.Add(-1)
		_ = c.Persist(context.Background(), planID, patch)
	}()
}

// Saving reports whether a write is outstanding.
func (c *Channel) Saving() bool {
	return c.inflight.Load() > 0
}

// Wait blocks until every background write has completed.
func (c *Channel) Wait() {
	c.writes.Wait()
}

// Sink adapts the channel to board.Sink for one plan: every push becomes an
// asynchronous {cards, days} write.
func (c *Channel) Sink(planID string) *PlanSink {
	return &PlanSink{ch: c, planID: planID}
}

// PlanSink forwards board pushes of one plan to its Channel.
type PlanSink struct {
	ch     *Channel
	planID string
}

func (s *PlanSink) PushBoard(cards []domain.Card, days []domain.Column) {
	s.ch.PersistAsync(s.planID, domain.BoardPatch(cards, days))
}

// PushTitle writes the {title} partial.
func (s *PlanSink) PushTitle(title string) {
	s.ch.PersistAsync(s.planID, domain.TitlePatch(title))
}
