package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// ValidateBundle checks every plan in the bundle before anything is written.
// Returns a slice of all validation errors found.
func ValidateBundle(b *Bundle) []error {
	var errs []error
	if len(b.Plans) == 0 {
		return []error{fmt.Errorf("plans: at least one plan is required")}
	}

	planIDs := make(map[string]bool)
	for i, p := range b.Plans {
		prefix := fmt.Sprintf("plans[%d]", i)
		if p.ID != "" {
			if planIDs[p.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate plan id %q", prefix, p.ID))
			}
			planIDs[p.ID] = true
		}
		errs = append(errs, validatePlan(prefix, p)...)
	}
	return errs
}

func validatePlan(prefix string, p PlanImport) []error {
	var errs []error
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}

	columns := map[string]bool{domain.StockColumnID: true}
	for j, d := range p.Days {
		at := fmt.Sprintf("%s.days[%d]", prefix, j)
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", at, err))
		}
		if d.ID == domain.StockColumnID {
			errs = append(errs, fmt.Errorf("%s.id: %q is reserved", at, d.ID))
			continue
		}
		if d.ID != "" && columns[d.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate column id %q", at, d.ID))
		}
		columns[d.ID] = true
		if d.DateValue != "" {
			if _, err := domain.DateLabelFor(d.DateValue); err != nil {
				errs = append(errs, fmt.Errorf("%s.dateValue: %w", at, err))
			}
		}
	}

	cardIDs := make(map[string]bool)
	for j, c := range p.Cards {
		at := fmt.Sprintf("%s.cards[%d]", prefix, j)
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", at, err))
		}
		if c.ID != "" && cardIDs[c.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate card id %q", at, c.ID))
		}
		cardIDs[c.ID] = true
		if c.ColumnID == "" {
			errs = append(errs, fmt.Errorf("%s.columnId is required", at))
		} else if !columns[c.ColumnID] {
			errs = append(errs, fmt.Errorf("%s.columnId: %q references no column", at, c.ColumnID))
		}
	}
	return errs
}
