package board

import (
	"fmt"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// Sink receives the resulting {cards, days} pair after every pushed mutation.
// The remote sync channel implements it.
type Sink interface {
	PushBoard(cards []domain.Card, days []domain.Column)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(cards []domain.Card, days []domain.Column)

func (f SinkFunc) PushBoard(cards []domain.Card, days []domain.Column) { f(cards, days) }

type discardSink struct{}

func (discardSink) PushBoard([]domain.Card, []domain.Column) {}

// Store holds the current Snapshot for one plan view.
//
// Store is not safe for concurrent use: all mutation happens on the caller's
// event loop (key handling, remote snapshot delivery, blur callbacks).
// Card and structural column mutations push to the sink; column field edits
// (title, memo, date) only change local state until Flush is called.
type Store struct {
	snap Snapshot
	sink Sink
}

// NewStore creates an empty Store pushing to sink. A nil sink discards pushes.
func NewStore(sink Sink) *Store {
	if sink == nil {
		sink = discardSink{}
	}
	return &Store{sink: sink}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot { return s.snap }

// ListCards returns the full flat ordered card list.
func (s *Store) ListCards() []domain.Card { return s.snap.ListCards() }

// CardsIn returns a column's cards in visible order.
func (s *Store) CardsIn(columnID string) []domain.Card { return s.snap.CardsIn(columnID) }

// Load replaces local state with a remote snapshot without pushing.
// It reports whether anything changed.
func (s *Store) Load(next Snapshot) bool {
	changed := !s.snap.Equal(next)
	s.snap = next
	return changed
}

// UpsertCard saves a card (form edit or add) and pushes.
func (s *Store) UpsertCard(c domain.Card) (Snapshot, error) {
	next, err := s.snap.UpsertCard(c)
	if err != nil {
		return s.snap, err
	}
	return s.commit(next), nil
}

// RemoveCard deletes a card and pushes.
func (s *Store) RemoveCard(id string) Snapshot {
	return s.commit(s.snap.RemoveCard(id))
}

// AppendColumn adds a day column and pushes.
func (s *Store) AppendColumn(col domain.Column) (Snapshot, error) {
	next, err := s.snap.AppendColumn(col)
	if err != nil {
		return s.snap, err
	}
	return s.commit(next), nil
}

// UpsertColumn edits a day column locally. It does not push.
func (s *Store) UpsertColumn(col domain.Column) (Snapshot, error) {
	next, err := s.snap.UpsertColumn(col)
	if err != nil {
		return s.snap, err
	}
	s.snap = next
	return next, nil
}

// SetColumnTitle edits a day title locally.
func (s *Store) SetColumnTitle(id, title string) (Snapshot, error) {
	return s.editColumn(id, func(c domain.Column) (domain.Column, error) {
		c.Title = title
		return c, nil
	})
}

// SetColumnMemo edits a day memo locally.
func (s *Store) SetColumnMemo(id, memo string) (Snapshot, error) {
	return s.editColumn(id, func(c domain.Column) (domain.Column, error) {
		c.Memo = memo
		return c, nil
	})
}

// SetColumnDate sets a day's date and derived label locally. Malformed dates
// leave the column unchanged and return domain.ErrMalformedInput.
func (s *Store) SetColumnDate(id, value string) (Snapshot, error) {
	return s.editColumn(id, func(c domain.Column) (domain.Column, error) {
		return c.WithDate(value)
	})
}

func (s *Store) editColumn(id string, edit func(domain.Column) (domain.Column, error)) (Snapshot, error) {
	col, ok := s.snap.Column(id)
	if !ok {
		return s.snap, fmt.Errorf("%w: %s", domain.ErrUnknownColumn, id)
	}
	col, err := edit(col)
	if err != nil {
		return s.snap, err
	}
	return s.UpsertColumn(col)
}

// MoveCard moves a card to a column position and pushes.
func (s *Store) MoveCard(cardID, targetColumnID string, targetIndex int) (Snapshot, error) {
	next, err := s.snap.MoveCard(cardID, targetColumnID, targetIndex)
	if err != nil {
		return s.snap, err
	}
	return s.commit(next), nil
}

// Reassign changes a card's column locally, leaving its flat position alone.
// Used while a drag is in flight; nothing is pushed.
func (s *Store) Reassign(cardID, columnID string) (Snapshot, error) {
	next, err := s.snap.Reassign(cardID, columnID)
	if err != nil {
		return s.snap, err
	}
	s.snap = next
	return next, nil
}

// Reorder applies the flat-list move and pushes. When either card is unknown
// the state is still pushed as-is and false is returned.
func (s *Store) Reorder(activeID, overID string) (Snapshot, bool) {
	next, ok := s.snap.Reorder(activeID, overID)
	return s.commit(next), ok
}

// Flush pushes the current state unchanged.
func (s *Store) Flush() Snapshot {
	return s.commit(s.snap)
}

func (s *Store) commit(next Snapshot) Snapshot {
	s.snap = next
	s.sink.PushBoard(next.ListCards(), next.Days())
	return next
}
