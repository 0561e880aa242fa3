package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// UnsetDateLabel is shown on day columns created by the add-day action.
	UnsetDateLabel = "日付設定"
	// UndecidedDateLabel is shown on the day columns seeded at plan creation.
	UndecidedDateLabel = "日付未定"
)

var weekdayLabels = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Column is a per-day bucket. DateLabel is derived from DateValue and kept
// alongside it so readers never need to re-derive it.
type Column struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DateLabel string `json:"dateLabel"`
	DateValue string `json:"dateValue,omitempty"`
	Memo      string `json:"memo"`
}

// Validate reports whether the column is well-formed: id and title non-empty.
func (c Column) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidColumn)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidColumn)
	}
	return nil
}

// DateLabelFor derives the display label for an ISO date, e.g. "2024-10-02" -> "10/2(水)".
func DateLabelFor(value string) (string, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", malformed("date %q must be YYYY-MM-DD", value)
	}
	return fmt.Sprintf("%d/%d(%s)", int(d.Month()), d.Day(), weekdayLabels[d.Weekday()]), nil
}

// WithDate returns a copy of c carrying the new date value and its derived label.
// An unparsable value yields ErrMalformedInput and c is returned unchanged.
func (c Column) WithDate(value string) (Column, error) {
	label, err := DateLabelFor(value)
	if err != nil {
		return c, err
	}
	c.DateValue = strings.TrimSpace(value)
	c.DateLabel = label
	return c, nil
}

// NewDayColumn builds the n-th (zero-based) day column created by the add-day action.
func NewDayColumn(n int, now time.Time) Column {
	return Column{
		ID:        fmt.Sprintf("day-%d-%d", n, now.UnixMilli()),
		Title:     fmt.Sprintf("%d日目", n+1),
		DateLabel: UnsetDateLabel,
		Memo:      "",
	}
}
