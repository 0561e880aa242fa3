package repository

import (
	"context"

	"github.com/alexanderramin/mintabi/internal/domain"
)

// PlanRepo is the document store for plans: create one document returning its
// id, read one by id, write partial fields to one, delete one.
type PlanRepo interface {
	// Create allocates an id when p.ID is empty and stamps both timestamps.
	Create(ctx context.Context, p *domain.Plan) error
	// Get returns domain.ErrNotFound when no document has the id.
	Get(ctx context.Context, id string) (*domain.Plan, error)
	// Update overwrites the fields present in patch and stamps updatedAt.
	// Arrays are replaced whole; there is no merging.
	Update(ctx context.Context, id string, patch domain.PlanPatch) error
	Delete(ctx context.Context, id string) error
	// List returns every plan ordered by most recent update.
	List(ctx context.Context) ([]*domain.Plan, error)
}
