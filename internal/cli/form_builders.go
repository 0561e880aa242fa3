package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/charmbracelet/huh"
)

// cardDraft holds form values while a card is being edited.
type cardDraft struct {
	ID       string
	Title    string
	Category string
	URL      string
	ImageURL string
	Memo     string
	ColumnID string
}

func newCardDraft(c domain.Card) *cardDraft {
	return &cardDraft{
		ID:       c.ID,
		Title:    c.Title,
		Category: string(c.Category),
		URL:      c.URL,
		ImageURL: c.ImageURL,
		Memo:     c.Memo,
		ColumnID: c.ColumnID,
	}
}

// Card returns the edited card with surrounding whitespace trimmed.
func (d *cardDraft) Card() domain.Card {
	return domain.Card{
		ID:       d.ID,
		Title:    strings.TrimSpace(d.Title),
		Category: domain.Category(d.Category),
		URL:      strings.TrimSpace(d.URL),
		ImageURL: strings.TrimSpace(d.ImageURL),
		Memo:     d.Memo,
		ColumnID: d.ColumnID,
	}
}

// cardForm returns the edit form for one card: title, category, links, memo.
func cardForm(d *cardDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("タイトル").
				Value(&d.Title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("カテゴリ").
				Options(
					huh.NewOption("観光 (spot)", string(domain.CategorySpot)),
					huh.NewOption("グルメ (food)", string(domain.CategoryFood)),
				).
				Value(&d.Category),
			huh.NewInput().
				Title("URL").
				Placeholder("https://").
				Value(&d.URL),
			huh.NewInput().
				Title("画像URL").
				Placeholder("https://").
				Value(&d.ImageURL),
			huh.NewText().
				Title("メモ").
				Value(&d.Memo),
		),
	).WithTheme(mintabiHuhTheme()).WithShowHelp(false)
}

// planCreateForm asks for a title and a template.
func planCreateForm(title, template *string, templates []string) *huh.Form {
	options := make([]huh.Option[string], 0, len(templates))
	for _, name := range templates {
		options = append(options, huh.NewOption(name, name))
	}
	fields := []huh.Field{
		huh.NewInput().
			Title("プラン名").
			Placeholder("京都旅行").
			Value(title).
			Validate(validateRequired),
	}
	if len(options) > 1 {
		fields = append(fields, huh.NewSelect[string]().
			Title("テンプレート").
			Options(options...).
			Value(template))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(mintabiHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validateOptionalDate accepts empty or an ISO date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.DateLabelFor(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
