package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Well-known drop target ids. The stock bucket has no Column record of its own.
const (
	StockColumnID = "stock"
	TrashID       = "trash"
)

// DefaultCardTitle is the placeholder title given to freshly added cards.
const DefaultCardTitle = "新しいスポット"

// Card is a single itinerary item. Optional fields default to the empty string
// and are omitted from the persisted document when empty.
type Card struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	ImageURL string   `json:"imageUrl,omitempty"`
	URL      string   `json:"url,omitempty"`
	Memo     string   `json:"memo,omitempty"`
	ColumnID string   `json:"columnId"`
}

// Validate reports whether the card is well-formed: id and title non-empty and
// category one of spot/food.
func (c Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCard)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCard)
	}
	if !ValidCategories[string(c.Category)] {
		return fmt.Errorf("%w: category %q must be spot or food", ErrInvalidCard, c.Category)
	}
	return nil
}

// NewCardID allocates a fresh card id.
func NewCardID() string {
	return "card-" + uuid.New().String()[:8]
}

// NewStockCard returns the placeholder card created by the "add card" action.
func NewStockCard() Card {
	return Card{
		ID:       NewCardID(),
		Title:    DefaultCardTitle,
		Category: CategorySpot,
		ColumnID: StockColumnID,
	}
}
