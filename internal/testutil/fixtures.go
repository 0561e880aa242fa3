package testutil

import (
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/google/uuid"
)

// Card options
type CardOption func(*domain.Card)

func WithCardID(id string) CardOption {
	return func(c *domain.Card) {
		c.ID = id
	}
}

func WithCategory(cat domain.Category) CardOption {
	return func(c *domain.Card) {
		c.Category = cat
	}
}

func WithColumn(columnID string) CardOption {
	return func(c *domain.Card) {
		c.ColumnID = columnID
	}
}

func WithCardMemo(memo string) CardOption {
	return func(c *domain.Card) {
		c.Memo = memo
	}
}

func WithURL(url string) CardOption {
	return func(c *domain.Card) {
		c.URL = url
	}
}

func NewTestCard(title string, opts ...CardOption) domain.Card {
	c := domain.Card{
		ID:       "card-" + uuid.New().String()[:8],
		Title:    title,
		Category: domain.CategorySpot,
		ColumnID: domain.StockColumnID,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Column options
type ColumnOption func(*domain.Column)

func WithColumnID(id string) ColumnOption {
	return func(c *domain.Column) {
		c.ID = id
	}
}

func WithDateValue(value, label string) ColumnOption {
	return func(c *domain.Column) {
		c.DateValue = value
		c.DateLabel = label
	}
}

func WithColumnMemo(memo string) ColumnOption {
	return func(c *domain.Column) {
		c.Memo = memo
	}
}

func NewTestColumn(title string, opts ...ColumnOption) domain.Column {
	c := domain.Column{
		ID:        "day-" + uuid.New().String()[:8],
		Title:     title,
		DateLabel: domain.UndecidedDateLabel,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ID = id
	}
}

func WithCards(cards ...domain.Card) PlanOption {
	return func(p *domain.Plan) {
		p.Cards = cards
	}
}

func WithDays(days ...domain.Column) PlanOption {
	return func(p *domain.Plan) {
		p.Days = days
	}
}

func NewTestPlan(title string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := &domain.Plan{
		Title:     title,
		Cards:     []domain.Card{},
		Days:      []domain.Column{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// KyotoPlan is the smallest plan used throughout the board scenarios:
// one stock card c1 and one empty day column day-0.
func KyotoPlan() *domain.Plan {
	return NewTestPlan("Kyoto",
		WithCards(NewTestCard("清水寺", WithCardID("c1"))),
		WithDays(NewTestColumn("1日目", WithColumnID("day-0"))),
	)
}
