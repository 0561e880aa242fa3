package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// timeLayout keeps sub-second precision so successive writes order correctly.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// encodeCards stores a nil slice as an empty array so documents always carry
// both arrays.
func encodeCards(cards []domain.Card) (string, error) {
	if cards == nil {
		cards = []domain.Card{}
	}
	b, err := json.Marshal(cards)
	if err != nil {
		return "", fmt.Errorf("encoding cards: %w", err)
	}
	return string(b), nil
}

func encodeDays(days []domain.Column) (string, error) {
	if days == nil {
		days = []domain.Column{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("encoding days: %w", err)
	}
	return string(b), nil
}

// nowUTC is swapped in tests that need deterministic stamps.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}
