// Package drag turns drag gestures into board mutations.
//
// A gesture is Start, any number of Over events, then End. Over applies
// cross-column moves immediately and locally so they are visible mid-drag;
// only End pushes to the remote document.
package drag

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/domain"
)

// State of the single active gesture.
type State int

const (
	Idle State = iota
	Dragging
	Committing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	default:
		return "idle"
	}
}

// Outcome describes how a gesture ended.
type Outcome int

const (
	// Cancelled: no valid drop target. Reassignments made during Over stay.
	Cancelled Outcome = iota
	// Dropped: released over itself or a column; state pushed unchanged.
	Dropped
	// Reordered: released over another card; flat-list move pushed.
	Reordered
	// Trashed: released over the trash; card removed and pushed.
	Trashed
)

func (o Outcome) String() string {
	switch o {
	case Dropped:
		return "dropped"
	case Reordered:
		return "reordered"
	case Trashed:
		return "trashed"
	default:
		return "cancelled"
	}
}

var ErrGestureActive = errors.New("a drag gesture is already in progress")

// Engine is the drag state machine over a board.Store. It is driven from the
// same event loop as the store and is not safe for concurrent use.
type Engine struct {
	store    *board.Store
	state    State
	activeID string
	overID   string
}

func NewEngine(store *board.Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) State() State { return e.state }
func (e *Engine) ActiveID() string { return e.activeID }
func (e *Engine) OverID() string { return e.overID }
func (e *Engine) Dragging() bool { return e.state == Dragging }

// Start begins a gesture on cardID. No mutation happens yet.
func (e *Engine) Start(cardID string) error {
	if e.state != Idle {
		return ErrGestureActive
	}
	if _, ok := e.store.Snapshot().Card(cardID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCard, cardID)
	}
	e.state = Dragging
	e.activeID = cardID
	e.overID = ""
	return nil
}

// Over handles the hovered element changing. When it resolves to a column
// other than the dragged card's, the card is reassigned locally at once.
func (e *Engine) Over(overID string) {
	if e.state != Dragging {
		return
	}
	e.overID = overID
	snap := e.store.Snapshot()
	active, ok := snap.Card(e.activeID)
	if !ok {
		return
	}
	target, ok := resolveColumn(snap, overID)
	if !ok || target == active.ColumnID {
		return
	}
	_, _ = e.store.Reassign(e.activeID, target)
}

// End finishes the gesture over overID; an empty overID means no drop target.
func (e *Engine) End(overID string) Outcome {
	if e.state != Dragging {
		return Cancelled
	}
	e.state = Committing
	activeID := e.activeID
	defer e.reset()

	snap := e.store.Snapshot()
	if _, ok := snap.Card(activeID); !ok {
		// removed by a remote snapshot mid-drag
		return Cancelled
	}

	switch {
	case overID == "":
		return Cancelled
	case overID == domain.TrashID:
		e.store.RemoveCard(activeID)
		return Trashed
	case overID == activeID:
		e.store.Flush()
		return Dropped
	}

	if _, ok := snap.Card(overID); ok {
		e.store.Reorder(activeID, overID)
		return Reordered
	}
	if snap.IsColumn(overID) {
		_, _ = e.store.Reassign(activeID, overID)
		e.store.Flush()
		return Dropped
	}
	return Cancelled
}

// Cancel ends the gesture without a drop target.
func (e *Engine) Cancel() Outcome {
	return e.End("")
}

// OverAt resolves the hovered element by nearest corners and calls Over.
func (e *Engine) OverAt(active Rect, layout Layout) string {
	id, _ := layout.Hit(active)
	e.Over(id)
	return id
}

// EndAt resolves the drop target by nearest corners and calls End.
func (e *Engine) EndAt(active Rect, layout Layout) Outcome {
	id, _ := layout.Hit(active)
	return e.End(id)
}

func (e *Engine) reset() {
	e.state = Idle
	e.activeID = ""
	e.overID = ""
}

func resolveColumn(snap board.Snapshot, overID string) (string, bool) {
	switch {
	case overID == "" || overID == domain.TrashID:
		return "", false
	case snap.IsColumn(overID):
		return overID, true
	}
	if c, ok := snap.Card(overID); ok {
		return c.ColumnID, true
	}
	return "", false
}
