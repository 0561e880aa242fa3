// Package feed carries "plan changed" notifications between writers and
// live subscribers. Notifications hold no document data; subscribers re-read
// the plan from the repository.
package feed

import "context"

// Event says that a plan document was written or deleted.
type Event struct {
	PlanID  string `json:"planId"`
	Deleted bool   `json:"deleted,omitempty"`
}

// Feed publishes and delivers plan change events.
type Feed interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe delivers events for planID until cancel is called or ctx is
	// done; the channel is closed afterwards. Events may be coalesced: a slow
	// reader sees at least one event after any burst of writes.
	Subscribe(ctx context.Context, planID string) (events <-chan Event, cancel func(), err error)
}

// offer delivers ev without blocking. A full buffer already holds a pending
// notification, so dropping keeps the at-least-once guarantee, except that a
// deletion replaces a pending write event.
func offer(ch chan Event, ev Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	if !ev.Deleted {
		return
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- ev:
	default:
	}
}
