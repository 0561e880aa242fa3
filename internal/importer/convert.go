package importer

import (
	"strings"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// Convert turns a validated bundle into plan documents ready for persistence.
// Call ValidateBundle first; Convert assumes the bundle is valid. Date labels
// are re-derived from dateValue so hand-edited files stay consistent.
func Convert(b *Bundle) []*domain.Plan {
	plans := make([]*domain.Plan, 0, len(b.Plans))
	for _, p := range b.Plans {
		days := make([]domain.Column, 0, len(p.Days))
		for _, d := range p.Days {
			if d.DateValue != "" {
				if withDate, err := d.WithDate(d.DateValue); err == nil {
					d = withDate
				}
			} else if d.DateLabel == "" {
				d.DateLabel = domain.UnsetDateLabel
			}
			days = append(days, d)
		}
		plans = append(plans, &domain.Plan{
			ID:    p.ID,
			Title: strings.TrimSpace(p.Title),
			Cards: append([]domain.Card{}, p.Cards...),
			Days:  days,
		})
	}
	return plans
}
