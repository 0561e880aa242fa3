package service

import (
	"context"
	"fmt"

	tmpl "github.com/alexanderramin/mintabi/internal/template"
)

type templateService struct {
	catalog *tmpl.Catalog
}

func NewTemplateService(catalog *tmpl.Catalog) TemplateService {
	return &templateService{catalog: catalog}
}

// List returns the built-in default first (index 0), then the directory's
// templates.
func (s *templateService) List(ctx context.Context) ([]TemplateInfo, error) {
	seed := tmpl.DefaultSeed()
	infos := []TemplateInfo{{
		Index:       0,
		ID:          tmpl.DefaultName,
		Name:        tmpl.DefaultName,
		Description: "built-in sample board",
		DayCount:    len(seed.Days),
		CardCount:   len(seed.Cards),
	}}
	if s.catalog == nil {
		return infos, nil
	}
	entries, err := s.catalog.List()
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	for _, e := range entries {
		infos = append(infos, TemplateInfo{
			Index:       e.Index,
			ID:          e.Schema.ID,
			Name:        e.Schema.Name,
			Description: e.Schema.Description,
			DayCount:    len(e.Schema.Days),
			CardCount:   len(e.Schema.Cards),
		})
	}
	return infos, nil
}
