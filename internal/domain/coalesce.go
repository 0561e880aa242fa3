package domain

import "strings"

// OrDefault returns value trimmed, or fallback when value is blank.
func OrDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
