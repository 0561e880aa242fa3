package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/drag"
)

// PlanSink receives the writes of one board session. remote.PlanSink
// implements it.
type PlanSink interface {
	board.Sink
	PushTitle(title string)
}

// BoardSession is the controller of one open plan view. It owns the board
// store and the drag engine, and decides which edits are pushed right away
// and which wait for blur.
//
// Like board.Store it is not safe for concurrent use; remote snapshots must be
// applied on the same loop that handles input.
type BoardSession struct {
	planID  string
	store   *board.Store
	drag    *drag.Engine
	sink    PlanSink
	history HistoryLedger
	now     func() time.Time

	title        string
	titleFocused bool
	daysDirty    bool
	filter       domain.CategoryFilter
	notFound     bool
}

func NewBoardSession(planID string, sink PlanSink, history HistoryLedger) *BoardSession {
	store := board.NewStore(sink)
	return &BoardSession{
		planID:  planID,
		store:   store,
		drag:    drag.NewEngine(store),
		sink:    sink,
		history: history,
		now:     time.Now,
		filter:  domain.FilterAll,
	}
}

func (s *BoardSession) PlanID() string { return s.planID }
func (s *BoardSession) Title() string { return s.title }
func (s *BoardSession) Store() *board.Store { return s.store }
func (s *BoardSession) Drag() *drag.Engine { return s.drag }
func (s *BoardSession) Snapshot() board.Snapshot { return s.store.Snapshot() }
func (s *BoardSession) Filter() domain.CategoryFilter { return s.filter }
func (s *BoardSession) NotFound() bool { return s.notFound }
func (s *BoardSession) TitleFocused() bool { return s.titleFocused }

// ApplySnapshot loads a remote document. Cards and days are always replaced;
// the title is left alone while the title field has focus. The plan is
// recorded in history with the remote title. It reports whether the board
// changed.
func (s *BoardSession) ApplySnapshot(plan domain.Plan) bool {
	changed := s.store.Load(board.FromPlan(plan))
	s.daysDirty = false
	if !s.titleFocused {
		s.title = plan.Title
	}
	recordHistory(context.Background(), s.history, s.planID, plan.Title)
	return changed
}

// MarkNotFound records that the plan is gone. The session stays readable.
func (s *BoardSession) MarkNotFound() {
	s.notFound = true
	s.drag.Cancel()
}

func (s *BoardSession) FocusTitle() { s.titleFocused = true }

// EditTitle changes the title locally.
func (s *BoardSession) EditTitle(title string) { s.title = title }

// BlurTitle ends title editing and pushes the {title} partial.
func (s *BoardSession) BlurTitle() {
	if !s.titleFocused {
		return
	}
	s.titleFocused = false
	s.sink.PushTitle(s.title)
}

// AddCard appends a blank stock card and pushes. The card is returned for
// editing.
func (s *BoardSession) AddCard() (domain.Card, error) {
	card := domain.NewStockCard()
	if _, err := s.store.UpsertCard(card); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// AddDay appends the next day column and pushes.
func (s *BoardSession) AddDay() (domain.Column, error) {
	col := domain.NewDayColumn(len(s.store.Snapshot().Days()), s.now())
	if _, err := s.store.AppendColumn(col); err != nil {
		return domain.Column{}, err
	}
	return col, nil
}

// SaveCard stores an edited card and pushes. The card's column must exist.
func (s *BoardSession) SaveCard(card domain.Card) error {
	card.ColumnID = domain.OrDefault(card.ColumnID, domain.StockColumnID)
	if !s.store.Snapshot().IsColumn(card.ColumnID) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownColumn, card.ColumnID)
	}
	_, err := s.store.UpsertCard(card)
	return err
}

// DeleteCard removes a card and pushes.
func (s *BoardSession) DeleteCard(id string) error {
	if _, ok := s.store.Snapshot().Card(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCard, id)
	}
	s.store.RemoveCard(id)
	return nil
}

// MoveCard places a card at index within a column (board.End appends) and
// pushes.
func (s *BoardSession) MoveCard(cardID, columnID string, index int) error {
	_, err := s.store.MoveCard(cardID, columnID, index)
	return err
}

// EditDayTitle, EditDayMemo and SetDayDate change a day locally. Nothing is
// pushed until BlurDay or another pushing action.

func (s *BoardSession) EditDayTitle(dayID, title string) error {
	return s.editDay(s.store.SetColumnTitle(dayID, title))
}

func (s *BoardSession) EditDayMemo(dayID, memo string) error {
	return s.editDay(s.store.SetColumnMemo(dayID, memo))
}

// SetDayDate sets the date and its derived label. A malformed date is
// dropped and reported as domain.ErrMalformedInput.
func (s *BoardSession) SetDayDate(dayID, value string) error {
	return s.editDay(s.store.SetColumnDate(dayID, value))
}

func (s *BoardSession) editDay(_ board.Snapshot, err error) error {
	if err != nil {
		return err
	}
	s.daysDirty = true
	return nil
}

// DaysDirty reports whether a day edit is waiting for BlurDay.
func (s *BoardSession) DaysDirty() bool { return s.daysDirty }

// BlurDay pushes pending day edits, if any.
func (s *BoardSession) BlurDay() {
	if !s.daysDirty {
		return
	}
	s.daysDirty = false
	s.store.Flush()
}

func (s *BoardSession) CycleFilter() domain.CategoryFilter {
	s.filter = s.filter.Next()
	return s.filter
}

func (s *BoardSession) SetFilter(f domain.CategoryFilter) { s.filter = f }

// StockCards returns the stock bucket narrowed by the current filter.
func (s *BoardSession) StockCards() []domain.Card {
	return s.store.Snapshot().CardsInFiltered(domain.StockColumnID, s.filter)
}

// Layout builds the drop-target layout for the current board and filter.
func (s *BoardSession) Layout() drag.Layout {
	return drag.NewLayout(s.store.Snapshot(), s.filter)
}

// EndDrag finishes a gesture. Pending day edits ride along with the push the
// drop makes.
func (s *BoardSession) EndDrag(overID string) drag.Outcome {
	outcome := s.drag.End(overID)
	if outcome != drag.Cancelled {
		s.daysDirty = false
	}
	return outcome
}

// IsNotFound reports whether err means the plan does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
