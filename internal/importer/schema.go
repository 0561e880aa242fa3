package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// Bundle is the import file: one or more plan documents. A file holding a
// single exported plan document is accepted as a bundle of one.
type Bundle struct {
	Plans []PlanImport `json:"plans"`
}

// PlanImport is one plan document in the file. ID is optional; when empty a
// new id is allocated on import.
type PlanImport struct {
	ID    string          `json:"id,omitempty"`
	Title string          `json:"title"`
	Cards []domain.Card   `json:"cards"`
	Days  []domain.Column `json:"days"`
}

// LoadBundle reads and parses an import file.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBundle(data)
}

// ParseBundle accepts either {"plans":[...]} or a single plan document.
func ParseBundle(data []byte) (*Bundle, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if _, ok := probe["plans"]; ok {
		var b Bundle
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &b, nil
	}
	var p PlanImport
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &Bundle{Plans: []PlanImport{p}}, nil
}

// ExportDocument is the persisted document shape of one plan.
type ExportDocument struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Cards     []domain.Card   `json:"cards"`
	Days      []domain.Column `json:"days"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// Export writes plan as indented JSON. The output is accepted by ParseBundle.
func Export(w io.Writer, plan *domain.Plan) error {
	doc := ExportDocument{
		ID:        plan.ID,
		Title:     plan.Title,
		Cards:     plan.Cards,
		Days:      plan.Days,
		CreatedAt: plan.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt: plan.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if doc.Cards == nil {
		doc.Cards = []domain.Card{}
	}
	if doc.Days == nil {
		doc.Days = []domain.Column{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding plan %s: %w", plan.ID, err)
	}
	return nil
}
