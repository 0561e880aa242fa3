package service

import (
	"context"
	"io"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/importer"
	"github.com/alexanderramin/mintabi/internal/remote"
)

// HistoryLedger is the local list of visited plans.
type HistoryLedger interface {
	Record(id, title string) error
	List() ([]domain.HistoryEntry, error)
	Remove(id string) error
}

// HistoryItem is a history entry checked against the document store.
type HistoryItem struct {
	ID    string
	Title string
	// Missing is set when the plan no longer exists.
	Missing bool
	// LookupErr holds a failed lookup; Title is then the remembered one.
	LookupErr error
}

// DeleteResult reports a destroy-plan action. The history entry is removed
// even when RemoteErr is set.
type DeleteResult struct {
	RemoteErr  error
	HistoryErr error
}

// OK reports whether both the document and the history entry are gone.
func (r DeleteResult) OK() bool {
	return r.RemoteErr == nil && r.HistoryErr == nil
}

type PlanService interface {
	// Create seeds a new plan from templateName ("" or "default" for the
	// built-in board) and records it in history.
	Create(ctx context.Context, title, templateName string) (*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	// List returns every stored plan, most recently updated first.
	List(ctx context.Context) ([]*domain.Plan, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) DeleteResult
	ListHistory(ctx context.Context) ([]HistoryItem, error)
}

// TemplateInfo describes one template available to Create.
type TemplateInfo struct {
	Index       int
	ID          string
	Name        string
	Description string
	DayCount    int
	CardCount   int
}

type TemplateService interface {
	List(ctx context.Context) ([]TemplateInfo, error)
}

// ImportResult holds the outcome of a bundle import.
type ImportResult struct {
	Plans     []*domain.Plan
	CardCount int
	DayCount  int
}

type ImportService interface {
	ImportBundle(ctx context.Context, filePath string) (*ImportResult, error)
	ImportBundleFromSchema(ctx context.Context, bundle *importer.Bundle) (*ImportResult, error)
	Export(ctx context.Context, planID string, w io.Writer) error
}

// BoardService opens board sessions on existing plans.
type BoardService interface {
	Open(ctx context.Context, planID string) (*BoardSession, error)
	// Subscribe delivers live snapshots of planID to h.
	Subscribe(ctx context.Context, planID string, h remote.Handlers) (*remote.Subscription, error)
	// Saving reports whether a board write is still outstanding.
	Saving() bool
	// Wait blocks until every outstanding board write has completed.
	Wait()
}
