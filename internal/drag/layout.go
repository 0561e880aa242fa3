package drag

import (
	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/domain"
)

// Cell dimensions of the keyboard grid. Only their ratio matters.
const (
	CellWidth  = 24.0
	CellHeight = 4.0
)

// Layout places the board on a grid for keyboard gestures: one grid column per
// bucket (stock first, then days in order, then the trash), each container
// above its cards. Droppables are listed in render order so ties resolve to
// the container before its cards.
type Layout struct {
	Columns     []string
	Droppables  []Droppable
	cardsPerCol map[string]int
}

// NewLayout lays out a snapshot. The stock bucket is narrowed by filter, as it
// is on screen.
func NewLayout(snap board.Snapshot, filter domain.CategoryFilter) Layout {
	l := Layout{cardsPerCol: map[string]int{}}
	for i, colID := range snap.ColumnIDs() {
		cards := snap.CardsIn(colID)
		if colID == domain.StockColumnID {
			cards = snap.CardsInFiltered(colID, filter)
		}
		l.Columns = append(l.Columns, colID)
		l.cardsPerCol[colID] = len(cards)
		l.Droppables = append(l.Droppables, Droppable{
			ID:   colID,
			Rect: Rect{Left: float64(i) * CellWidth, Top: 0, Width: CellWidth, Height: float64(len(cards)+1) * CellHeight},
		})
		for row, c := range cards {
			l.Droppables = append(l.Droppables, Droppable{ID: c.ID, Rect: SlotRect(i, row)})
		}
	}
	trashCol := len(l.Columns)
	l.Columns = append(l.Columns, domain.TrashID)
	l.Droppables = append(l.Droppables, Droppable{
		ID:   domain.TrashID,
		Rect: Rect{Left: float64(trashCol) * CellWidth, Top: 0, Width: CellWidth, Height: CellHeight},
	})
	return l
}

// SlotRect is the rectangle of the row-th card slot in grid column col.
func SlotRect(col, row int) Rect {
	return Rect{
		Left:   float64(col) * CellWidth,
		Top:    float64(row+1) * CellHeight,
		Width:  CellWidth,
		Height: CellHeight,
	}
}

// Rows returns the number of card slots in grid column col.
func (l Layout) Rows(col int) int {
	if col < 0 || col >= len(l.Columns) {
		return 0
	}
	return l.cardsPerCol[l.Columns[col]]
}

// Hit resolves the droppable under the dragged rectangle.
func (l Layout) Hit(active Rect) (string, bool) {
	return ClosestCorners(active, l.Droppables)
}
