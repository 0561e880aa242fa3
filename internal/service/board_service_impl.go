package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mintabi/internal/remote"
	"github.com/alexanderramin/mintabi/internal/repository"
)

type boardService struct {
	plans    repository.PlanRepo
	channel  *remote.Channel
	history  HistoryLedger
	observer UseCaseObserver
}

func NewBoardService(
	plans repository.PlanRepo,
	channel *remote.Channel,
	history HistoryLedger,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		plans:    plans,
		channel:  channel,
		history:  history,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Open loads the plan and returns a session whose pushes go through the
// remote channel. The caller subscribes for live updates if it wants them.
func (s *boardService) Open(ctx context.Context, planID string) (session *BoardSession, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "open-board", startedAt, map[string]any{"plan_id": planID}, err)
	}()

	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	session = NewBoardSession(planID, s.channel.Sink(planID), s.history)
	session.ApplySnapshot(*plan)
	return session, nil
}

func (s *boardService) Saving() bool { return s.channel.Saving() }

func (s *boardService) Wait() { s.channel.Wait() }

// Subscribe opens live updates for a session's plan. Handlers run on the
// channel's delivery goroutine.
func (s *boardService) Subscribe(ctx context.Context, planID string, h remote.Handlers) (*remote.Subscription, error) {
	return s.channel.Subscribe(ctx, planID, h)
}
