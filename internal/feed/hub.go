package feed

import (
	"context"
	"sync"
)

// Hub fans events out within one process. Poller wraps one so local writes
// arrive without waiting for the next poll.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*hubSub]struct{}
}

type hubSub struct {
	ch   chan Event
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*hubSub]struct{})}
}

func (h *Hub) Publish(_ context.Context, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[ev.PlanID] {
		offer(s.ch, ev)
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context, planID string) (<-chan Event, func(), error) {
	s := &hubSub{ch: make(chan Event, 1)}

	h.mu.Lock()
	if h.subs[planID] == nil {
		h.subs[planID] = make(map[*hubSub]struct{})
	}
	h.subs[planID][s] = struct{}{}
	h.mu.Unlock()

	stop := make(chan struct{})
	cancel := func() {
		s.once.Do(func() {
			h.mu.Lock()
			delete(h.subs[planID], s)
			if len(h.subs[planID]) == 0 {
				delete(h.subs, planID)
			}
			close(s.ch)
			h.mu.Unlock()
			close(stop)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stop:
		}
	}()
	return s.ch, cancel, nil
}

// Subscribers returns the number of live subscriptions for planID.
func (h *Hub) Subscribers(planID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[planID])
}
