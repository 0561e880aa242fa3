package template

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// ValidateSchema checks a TemplateSchema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *TemplateSchema) []error {
	var errs []error

	if schema.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if len(schema.Days) == 0 {
		errs = append(errs, fmt.Errorf("at least one day is required"))
	}

	for i, d := range schema.Days {
		if d.DateValue == "" {
			continue
		}
		if _, err := domain.DateLabelFor(d.DateValue); err != nil {
			errs = append(errs, fmt.Errorf("day[%d]: %w", i, err))
		}
	}

	for i, c := range schema.Cards {
		if strings.TrimSpace(c.Title) == "" {
			errs = append(errs, fmt.Errorf("card[%d]: title is required", i))
		}
		if _, err := domain.ParseCategory(c.Category); err != nil {
			errs = append(errs, fmt.Errorf("card[%d]: %w", i, err))
		}
		if c.Day != nil && (*c.Day < 0 || *c.Day >= len(schema.Days)) {
			errs = append(errs, fmt.Errorf("card[%d]: day %d out of range (have %d days)", i, *c.Day, len(schema.Days)))
		}
	}

	return errs
}
