package template

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// Seed is the initial board of a new plan.
type Seed struct {
	Cards []domain.Card
	Days  []domain.Column
}

// DefaultSeed is the built-in starting board.
func DefaultSeed() Seed {
	return Seed{Cards: domain.DefaultSeedCards(), Days: domain.DefaultSeedDays()}
}

// Execute builds a seed from a schema. Day ids follow the add-day form
// day-<n>-<millis>; card ids are freshly allocated.
func Execute(schema *TemplateSchema, now time.Time) (Seed, error) {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return Seed{}, fmt.Errorf("invalid template %q: %w", schema.ID, errors.Join(errs...))
	}

	days := make([]domain.Column, 0, len(schema.Days))
	for i, dc := range schema.Days {
		col := domain.NewDayColumn(i, now)
		col.DateLabel = domain.UndecidedDateLabel
		if dc.Title != "" {
			col.Title = dc.Title
		}
		col.Memo = dc.Memo
		if dc.DateValue != "" {
			dated, err := col.WithDate(dc.DateValue)
			if err != nil {
				return Seed{}, fmt.Errorf("day %d: %w", i, err)
			}
			col = dated
		}
		days = append(days, col)
	}

	cards := make([]domain.Card, 0, len(schema.Cards))
	for _, cc := range schema.Cards {
		category, _ := domain.ParseCategory(cc.Category)
		columnID := domain.StockColumnID
		if cc.Day != nil {
			columnID = days[*cc.Day].ID
		}
		cards = append(cards, domain.Card{
			ID:       domain.NewCardID(),
			Title:    cc.Title,
			Category: category,
			URL:      cc.URL,
			ImageURL: cc.ImageURL,
			Memo:     cc.Memo,
			ColumnID: columnID,
		})
	}
	return Seed{Cards: cards, Days: days}, nil
}
