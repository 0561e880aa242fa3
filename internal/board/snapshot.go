// Package board holds the in-process card/column state of one plan.
//
// Cards live in a single flat ordered list; a column's visible order is the
// subsequence of that list whose ColumnID matches. Every operation on a
// Snapshot returns a new Snapshot and never mutates shared slices, so two
// snapshots can be compared cheaply to tell whether anything changed.
package board

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// End is the targetIndex passed to MoveCard to place a card after the last
// card of the target column.
const End = -1

// Snapshot is an immutable view of a plan's cards and day columns.
type Snapshot struct {
	cards []domain.Card
	days  []domain.Column
}

// NewSnapshot copies cards and days into a new Snapshot.
func NewSnapshot(cards []domain.Card, days []domain.Column) Snapshot {
	return Snapshot{cards: slices.Clone(cards), days: slices.Clone(days)}
}

// FromPlan builds a Snapshot from a remote document.
func FromPlan(p domain.Plan) Snapshot {
	return NewSnapshot(p.Cards, p.Days)
}

// ListCards returns the full flat ordered list.
func (s Snapshot) ListCards() []domain.Card {
	return slices.Clone(s.cards)
}

// Days returns the day columns in display order.
func (s Snapshot) Days() []domain.Column {
	return slices.Clone(s.days)
}

// Len returns the total number of cards.
func (s Snapshot) Len() int { return len(s.cards) }

// CardsIn filters the flat list by column, preserving relative order.
func (s Snapshot) CardsIn(columnID string) []domain.Card {
	return s.CardsInFiltered(columnID, domain.FilterAll)
}

// CardsInFiltered is CardsIn narrowed by a category filter. Filtering affects
// what is shown, never the underlying order.
func (s Snapshot) CardsInFiltered(columnID string, filter domain.CategoryFilter) []domain.Card {
	out := []domain.Card{}
	for _, c := range s.cards {
		if c.ColumnID == columnID && filter.Match(c.Category) {
			out = append(out, c)
		}
	}
	return out
}

// Card looks up a card by id.
func (s Snapshot) Card(id string) (domain.Card, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return domain.Card{}, false
	}
	return s.cards[i], true
}

// IndexOf returns the flat-list position of a card, or -1.
func (s Snapshot) IndexOf(id string) int {
	return slices.IndexFunc(s.cards, func(c domain.Card) bool { return c.ID == id })
}

// Column looks up a day column by id.
func (s Snapshot) Column(id string) (domain.Column, bool) {
	i := s.columnIndex(id)
	if i < 0 {
		return domain.Column{}, false
	}
	return s.days[i], true
}

// IsColumn reports whether id names the stock bucket or a day column.
func (s Snapshot) IsColumn(id string) bool {
	return id == domain.StockColumnID || s.columnIndex(id) >= 0
}

// ColumnIDs returns stock followed by every day column id.
func (s Snapshot) ColumnIDs() []string {
	ids := make([]string, 0, len(s.days)+1)
	ids = append(ids, domain.StockColumnID)
	for _, d := range s.days {
		ids = append(ids, d.ID)
	}
	return ids
}

func (s Snapshot) columnIndex(id string) int {
	return slices.IndexFunc(s.days, func(d domain.Column) bool { return d.ID == id })
}

// Equal reports whether both snapshots hold identical cards and days in the same order.
func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.cards, o.cards) && slices.Equal(s.days, o.days)
}

// Patch returns the {cards, days} partial for this snapshot.
func (s Snapshot) Patch() domain.PlanPatch {
	return domain.BoardPatch(s.cards, s.days)
}

// UpsertCard replaces the card with the same id in place, or appends it.
func (s Snapshot) UpsertCard(c domain.Card) (Snapshot, error) {
	if err := c.Validate(); err != nil {
		return s, err
	}
	cards := slices.Clone(s.cards)
	if i := s.IndexOf(c.ID); i >= 0 {
		cards[i] = c
	} else {
		cards = append(cards, c)
	}
	return Snapshot{cards: cards, days: s.days}, nil
}

// RemoveCard drops a card. Removing an unknown id returns an equal snapshot.
func (s Snapshot) RemoveCard(id string) Snapshot {
	i := s.IndexOf(id)
	if i < 0 {
		return s
	}
	return Snapshot{cards: slices.Delete(slices.Clone(s.cards), i, i+1), days: s.days}
}

// UpsertColumn replaces the day column with the same id, or appends it.
func (s Snapshot) UpsertColumn(col domain.Column) (Snapshot, error) {
	if err := col.Validate(); err != nil {
		return s, err
	}
	if col.ID == domain.StockColumnID {
		return s, fmt.Errorf("%w: %q is reserved for the stock bucket", domain.ErrInvalidColumn, col.ID)
	}
	days := slices.Clone(s.days)
	if i := s.columnIndex(col.ID); i >= 0 {
		days[i] = col
	} else {
		days = append(days, col)
	}
	return Snapshot{cards: s.cards, days: days}, nil
}

// AppendColumn adds a new day column at the end.
func (s Snapshot) AppendColumn(col domain.Column) (Snapshot, error) {
	if s.IsColumn(col.ID) {
		return s, fmt.Errorf("%w: column %q already exists", domain.ErrInvalidColumn, col.ID)
	}
	return s.UpsertColumn(col)
}

// Reassign changes a card's column without touching its flat position.
func (s Snapshot) Reassign(cardID, columnID string) (Snapshot, error) {
	i := s.IndexOf(cardID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrUnknownCard, cardID)
	}
	if !s.IsColumn(columnID) {
		return s, fmt.Errorf("%w: %s", domain.ErrUnknownColumn, columnID)
	}
	if s.cards[i].ColumnID == columnID {
		return s, nil
	}
	cards := slices.Clone(s.cards)
	cards[i].ColumnID = columnID
	return Snapshot{cards: cards, days: s.days}, nil
}

// MoveCard places a card into targetColumnID at targetIndex within that
// column's visible order. A negative or out-of-range index appends after the
// column's last card; moving into an empty column keeps the flat position.
func (s Snapshot) MoveCard(cardID, targetColumnID string, targetIndex int) (Snapshot, error) {
	from := s.IndexOf(cardID)
	if from < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrUnknownCard, cardID)
	}
	if !s.IsColumn(targetColumnID) {
		return s, fmt.Errorf("%w: %s", domain.ErrUnknownColumn, targetColumnID)
	}

	moved := s.cards[from]
	moved.ColumnID = targetColumnID
	rest := slices.Delete(slices.Clone(s.cards), from, from+1)

	var slots []int
	for i, c := range rest {
		if c.ColumnID == targetColumnID {
			slots = append(slots, i)
		}
	}

	var at int
	switch {
	case len(slots) == 0:
		at = min(from, len(rest))
	case targetIndex < 0 || targetIndex >= len(slots):
		at = slots[len(slots)-1] + 1
	default:
		at = slots[targetIndex]
	}
	return Snapshot{cards: slices.Insert(rest, at, moved), days: s.days}, nil
}

// Reorder is the flat-list move: the active card is removed from its index and
// reinserted at the index the over card occupied, taking the over card's column.
// It reports false when either card is unknown.
func (s Snapshot) Reorder(activeID, overID string) (Snapshot, bool) {
	oldIndex := s.IndexOf(activeID)
	newIndex := s.IndexOf(overID)
	if oldIndex < 0 || newIndex < 0 {
		return s, false
	}
	moved := s.cards[oldIndex]
	moved.ColumnID = s.cards[newIndex].ColumnID
	cards := slices.Delete(slices.Clone(s.cards), oldIndex, oldIndex+1)
	cards = slices.Insert(cards, newIndex, moved)
	return Snapshot{cards: cards, days: s.days}, true
}

// DanglingCards returns cards whose column is neither stock nor a known day.
// Nothing is cleaned up.
func (s Snapshot) DanglingCards() []domain.Card {
	return domain.Plan{Cards: s.cards, Days: s.days}.DanglingCards()
}
