package template

import (
	"encoding/json"
	"fmt"
	"os"
)

// TemplateSchema is a JSON seed for new plans: the day columns and the
// cards a plan starts with.
type TemplateSchema struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Days        []DayConfig  `json:"days"`
	Cards       []CardConfig `json:"cards"`
}

// DayConfig seeds one day column. An empty title becomes "<n>日目".
type DayConfig struct {
	Title     string `json:"title,omitempty"`
	DateValue string `json:"date_value,omitempty"`
	Memo      string `json:"memo,omitempty"`
}

// CardConfig seeds one card. Day is the zero-based index into Days; nil
// places the card in stock.
type CardConfig struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Memo     string `json:"memo,omitempty"`
	Day      *int   `json:"day,omitempty"`
}

// LoadSchema reads and parses a template JSON file.
func LoadSchema(path string) (*TemplateSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema TemplateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}
