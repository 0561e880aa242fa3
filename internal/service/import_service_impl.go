package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/mintabi/internal/db"
	"github.com/alexanderramin/mintabi/internal/importer"
	"github.com/alexanderramin/mintabi/internal/repository"
)

type importService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	history  HistoryLedger
	observer UseCaseObserver
}

func NewImportService(
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	history HistoryLedger,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		plans:    plans,
		uow:      uow,
		history:  history,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportBundle(ctx context.Context, filePath string) (*ImportResult, error) {
	bundle, err := importer.LoadBundle(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importBundle(ctx, bundle)
}

func (s *importService) ImportBundleFromSchema(ctx context.Context, bundle *importer.Bundle) (*ImportResult, error) {
	return s.importBundle(ctx, bundle)
}

// importBundle writes every plan in one transaction: all or nothing.
func (s *importService) importBundle(ctx context.Context, bundle *importer.Bundle) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_count": len(bundle.Plans)}
	defer func() {
		observeUseCase(ctx, s.observer, "import-plans", startedAt, fields, err)
	}()

	if errs := importer.ValidateBundle(bundle); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}
	plans := importer.Convert(bundle)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		for _, p := range plans {
			if err := txPlans.Create(ctx, p); err != nil {
				return fmt.Errorf("creating plan %q: %w", p.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{Plans: plans}
	for _, p := range plans {
		result.CardCount += len(p.Cards)
		result.DayCount += len(p.Days)
		recordHistory(ctx, s.history, p.ID, p.Title)
	}
	fields["card_count"] = result.CardCount
	fields["day_count"] = result.DayCount
	return result, nil
}

func (s *importService) Export(ctx context.Context, planID string, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "export-plan", startedAt, map[string]any{"plan_id": planID}, err)
	}()

	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return err
	}
	return importer.Export(w, plan)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
