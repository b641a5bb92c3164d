package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// CounterProgress is one counter of the pre-treatment state with its bound.
type CounterProgress struct {
	Counter domain.Counter
	Value   int
	Max     int
}

// StateSummary is the pre-treatment state laid out for display.
type StateSummary struct {
	StepsCompleted CounterProgress
	Overview       []CounterProgress
}

type planService struct {
	api      PlanAPI
	now      func() time.Time
	observer UseCaseObserver
}

func NewPlanService(api PlanAPI, observers ...UseCaseObserver) PlanService {
	return &planService{
		api:      api,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) TreatmentPlan(ctx context.Context) (domain.TreatmentPlan, error) {
	return s.api.TreatmentPlan(ctx)
}

func (s *planService) State(ctx context.Context) (*StateSummary, error) {
	state, err := s.api.PreTreatmentState(ctx)
	if err != nil {
		return nil, err
	}
	summary := &StateSummary{
		StepsCompleted: counterProgress(state, domain.CounterStepsCompleted),
		Overview:       make([]CounterProgress, 0, len(domain.OverviewCounters)),
	}
	for _, c := range domain.OverviewCounters {
		summary.Overview = append(summary.Overview, counterProgress(state, c))
	}
	return summary, nil
}

func counterProgress(state domain.PreTreatmentState, c domain.Counter) CounterProgress {
	return CounterProgress{
		Counter: c,
		Value:   domain.ClampInt(state.Counter(c), 0, c.Max()),
		Max:     c.Max(),
	}
}

func (s *planService) Goals(ctx context.Context) (*domain.Goals, error) {
	g, err := s.api.Goals(ctx)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *planService) SaveGoals(ctx context.Context, g domain.Goals) (saved *domain.Goals, err error) {
	startedAt := time.Now()
	defer func() {
		observeUseCase(ctx, s.observer, "save-goals", startedAt, map[string]any{"goals": len(g.Goals)}, err)
	}()
	if err = g.Validate(); err != nil {
		return nil, &UIError{Message: err.Error(), Err: err}
	}
	out, err := s.api.UpdateGoals(ctx, g)
	if err != nil {
		return nil, retryable("goals", err)
	}
	return &out, nil
}

func (s *planService) Strengths(ctx context.Context) (*domain.StrengthsAndResources, error) {
	sr, err := s.api.StrengthsAndResources(ctx)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (s *planService) SaveStrengths(ctx context.Context, sr domain.StrengthsAndResources) (saved *domain.StrengthsAndResources, err error) {
	startedAt := time.Now()
	defer func() {
		observeUseCase(ctx, s.observer, "save-strengths", startedAt, nil, err)
	}()
	sr.Strengths = compact(sr.Strengths)
	sr.Resources = compact(sr.Resources)
	sr.SupportPeople = compact(sr.SupportPeople)
	out, err := s.api.UpdateStrengthsAndResources(ctx, sr)
	if err != nil {
		return nil, retryable("strengths and resources", err)
	}
	return &out, nil
}

func (s *planService) Letter(ctx context.Context) (*domain.Letter, error) {
	l, err := s.api.Letter(ctx)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *planService) SaveLetter(ctx context.Context, content string) (saved *domain.Letter, err error) {
	startedAt := time.Now()
	defer func() {
		observeUseCase(ctx, s.observer, "save-letter", startedAt, map[string]any{"length": len(content)}, err)
	}()
	if strings.TrimSpace(content) == "" {
		return nil, &UIError{Message: "The letter is empty."}
	}
	out, err := s.api.UpdateLetter(ctx, domain.Letter{Content: content, UpdatedAt: s.now().Unix()})
	if err != nil {
		return nil, retryable("letter", err)
	}
	return &out, nil
}

// compact trims entries and drops blanks, keeping order.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
