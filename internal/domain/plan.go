package domain

import "time"

// Plan is the shared remote document: plans/{id}.
type Plan struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Cards     []Card    `json:"cards"`
	Days      []Column  `json:"days"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanPatch is a partial document write. Nil fields are left untouched; a
// non-nil slice replaces the whole array, including with an empty one.
type PlanPatch struct {
	Title *string
	Cards *[]Card
	Days  *[]Column
}

// BoardPatch builds the {cards, days} partial pushed after board mutations.
func BoardPatch(cards []Card, days []Column) PlanPatch {
	c := append([]Card{}, cards...)
	d := append([]Column{}, days...)
	return PlanPatch{Cards: &c, Days: &d}
}

// TitlePatch builds the {title} partial pushed when the title field loses focus.
func TitlePatch(title string) PlanPatch {
	return PlanPatch{Title: &title}
}

// IsEmpty reports whether the patch writes nothing besides the update stamp.
func (p PlanPatch) IsEmpty() bool {
	return p.Title == nil && p.Cards == nil && p.Days == nil
}

// Apply returns a copy of plan with the patch fields replaced.
func (p PlanPatch) Apply(plan Plan) Plan {
	if p.Title != nil {
		plan.Title = *p.Title
	}
	if p.Cards != nil {
		plan.Cards = append([]Card{}, (*p.Cards)...)
	}
	if p.Days != nil {
		plan.Days = append([]Column{}, (*p.Days)...)
	}
	return plan
}

// HasColumn reports whether id is the stock bucket or one of the plan's days.
func (p Plan) HasColumn(id string) bool {
	if id == StockColumnID {
		return true
	}
	for _, d := range p.Days {
		if d.ID == id {
			return true
		}
	}
	return false
}

// DanglingCards returns cards whose columnId references neither stock nor a day.
func (p Plan) DanglingCards() []Card {
	var out []Card
	for _, c := range p.Cards {
		if !p.HasColumn(c.ColumnID) {
			out = append(out, c)
		}
	}
	return out
}
