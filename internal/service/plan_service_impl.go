package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/feed"
	"github.com/alexanderramin/mintabi/internal/repository"
	tmpl "github.com/alexanderramin/mintabi/internal/template"
)

type planService struct {
	plans     repository.PlanRepo
	feed      feed.Feed
	history   HistoryLedger
	templates *tmpl.Catalog
	observer  UseCaseObserver
	now       func() time.Time
}

func NewPlanService(
	plans repository.PlanRepo,
	f feed.Feed,
	history HistoryLedger,
	templates *tmpl.Catalog,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plans:     plans,
		feed:      f,
		history:   history,
		templates: templates,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *planService) Create(ctx context.Context, title, templateName string) (plan *domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template": templateName}
	defer func() {
		if plan != nil {
			fields["plan_id"] = plan.ID
		}
		observeUseCase(ctx, s.observer, "create-plan", startedAt, fields, err)
	}()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: plan title is required", domain.ErrMalformedInput)
	}

	seed, err := s.seedFor(templateName)
	if err != nil {
		return nil, err
	}
	fields["card_count"] = len(seed.Cards)
	fields["day_count"] = len(seed.Days)

	plan = &domain.Plan{Title: title, Cards: seed.Cards, Days: seed.Days}
	if err = s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("creating plan: %w", err)
	}
	s.remember(ctx, plan.ID, plan.Title)
	return plan, nil
}

func (s *planService) seedFor(templateName string) (tmpl.Seed, error) {
	name := strings.TrimSpace(templateName)
	if name == "" || strings.EqualFold(name, tmpl.DefaultName) {
		return tmpl.DefaultSeed(), nil
	}
	if s.templates == nil {
		return tmpl.Seed{}, fmt.Errorf("template '%s' not found: no template directory configured", name)
	}
	entry, err := s.templates.Resolve(name)
	if err != nil {
		return tmpl.Seed{}, err
	}
	seed, err := tmpl.Execute(entry.Schema, s.now())
	if err != nil {
		return tmpl.Seed{}, fmt.Errorf("executing template: %w", err)
	}
	return seed, nil
}

func (s *planService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.Get(ctx, id)
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Rename(ctx context.Context, id, title string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "rename-plan", startedAt, map[string]any{"plan_id": id}, err)
	}()

	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: plan title is required", domain.ErrMalformedInput)
	}
	if err = s.plans.Update(ctx, id, domain.TitlePatch(title)); err != nil {
		return err
	}
	s.publish(ctx, feed.Event{PlanID: id})
	s.remember(ctx, id, title)
	return nil
}

func (s *planService) Delete(ctx context.Context, id string) (res DeleteResult) {
	startedAt := time.Now().UTC()
	defer func() {
		err := res.RemoteErr
		if err == nil {
			err = res.HistoryErr
		}
		observeUseCase(ctx, s.observer, "delete-plan", startedAt, map[string]any{"plan_id": id}, err)
	}()

	res.RemoteErr = s.plans.Delete(ctx, id)
	if res.RemoteErr == nil {
		s.publish(ctx, feed.Event{PlanID: id, Deleted: true})
	}
	if s.history != nil {
		res.HistoryErr = s.history.Remove(id)
	}
	return res
}

func (s *planService) ListHistory(ctx context.Context) (items []HistoryItem, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["count"] = len(items)
		observeUseCase(ctx, s.observer, "list-history", startedAt, fields, err)
	}()

	if s.history == nil {
		return nil, nil
	}
	entries, err := s.history.List()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	missing := 0
	items = make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		item := HistoryItem{ID: e.ID, Title: e.Title}
		plan, getErr := s.plans.Get(ctx, e.ID)
		switch {
		case getErr == nil:
			if plan.Title != "" {
				item.Title = plan.Title
			}
		case errors.Is(getErr, domain.ErrNotFound):
			item.Missing = true
			missing++
		default:
			item.LookupErr = getErr
		}
		items = append(items, item)
	}
	fields["missing"] = missing
	return items, nil
}

func (s *planService) remember(ctx context.Context, id, title string) {
	recordHistory(ctx, s.history, id, title)
}

// recordHistory is best effort: a ledger failure never fails the use case.
func recordHistory(ctx context.Context, ledger HistoryLedger, id, title string) {
	if ledger == nil {
		return
	}
	if err := ledger.Record(id, title); err != nil {
		slog.WarnContext(ctx, "history not updated", "plan_id", id, "error", err)
	}
}

func (s *planService) publish(ctx context.Context, ev feed.Event) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "plan change notification failed", "plan_id", ev.PlanID, "error", err)
	}
}
