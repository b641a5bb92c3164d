package service

import (
	"context"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// SudsLogResult pairs a saved check-in with the coping step for its score.
type SudsLogResult struct {
	Checkin    domain.SudsCheckin
	CopingStep *domain.CopingStep
}

type checkinService struct {
	api      CheckinAPI
	now      func() time.Time
	observer UseCaseObserver
}

// NewCheckinService wires the daily tracking flows. Reads return the API
// error unchanged; writes wrap it in *RetryableError.
func NewCheckinService(api CheckinAPI, observers ...UseCaseObserver) CheckinService {
	return &checkinService{
		api:      api,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// dateOrToday returns date, or today's local date when empty.
func (s *checkinService) dateOrToday(date string) string {
	if date == "" {
		return domain.FormatDate(s.now())
	}
	return date
}

func (s *checkinService) Suds(ctx context.Context, date string) (*domain.SudsCheckin, error) {
	c, err := s.api.SudsCheckin(ctx, s.dateOrToday(date))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LogSuds validates and saves a check-in, then looks up the matching coping
// step. A coping plan read failure does not fail the log.
func (s *checkinService) LogSuds(ctx context.Context, c domain.SudsCheckin) (result *SudsLogResult, err error) {
	startedAt := time.Now()
	c.Date = s.dateOrToday(c.Date)
	fields := map[string]any{"date": c.Date, "score": c.Score}
	defer func() {
		observeUseCase(ctx, s.observer, "log-suds", startedAt, fields, err)
	}()

	if err = c.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.api.UpdateSudsCheckin(ctx, c.Date, c)
	if err != nil {
		return nil, retryable("check-in", err)
	}

	result = &SudsLogResult{Checkin: saved}
	plan, planErr := s.api.CopingPlan(ctx)
	if planErr != nil {
		fields["coping_plan_error"] = planErr.Error()
		return result, nil
	}
	if step, ok := plan.StepFor(saved.Score); ok {
		result.CopingStep = &step
	}
	return result, nil
}

func (s *checkinService) History(ctx context.Context) (domain.SudsList, error) {
	return s.api.SudsList(ctx)
}

func (s *checkinService) Calendar(ctx context.Context, month string) (*domain.SudsCalendar, error) {
	if month == "" {
		month = domain.FormatMonth(s.now())
	}
	cal, err := s.api.SudsCalendar(ctx, month)
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (s *checkinService) CopingPlan(ctx context.Context) (*domain.CopingPlan, error) {
	p, err := s.api.CopingPlan(ctx)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *checkinService) SaveCopingPlan(ctx context.Context, p domain.CopingPlan) (saved *domain.CopingPlan, err error) {
	startedAt := time.Now()
	defer func() {
		observeUseCase(ctx, s.observer, "save-coping-plan", startedAt, map[string]any{"steps": len(p.Steps)}, err)
	}()
	for _, step := range p.Steps {
		if step.MinScore > step.MaxScore || step.MinScore < domain.MinSuds || step.MaxScore > domain.MaxSuds {
			return nil, &UIError{Message: "Each coping step needs a score range within 0-10."}
		}
	}
	out, err := s.api.UpdateCopingPlan(ctx, p)
	if err != nil {
		return nil, retryable("coping plan", err)
	}
	return &out, nil
}

func (s *checkinService) Diary(ctx context.Context, date string) (*domain.DiaryEntry, error) {
	e, err := s.api.DiaryEntry(ctx, s.dateOrToday(date))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *checkinService) SaveDiary(ctx context.Context, e domain.DiaryEntry) (saved *domain.DiaryEntry, err error) {
	startedAt := time.Now()
	e.Date = s.dateOrToday(e.Date)
	defer func() {
		observeUseCase(ctx, s.observer, "save-diary", startedAt, map[string]any{"date": e.Date}, err)
	}()
	out, err := s.api.UpdateDiaryEntry(ctx, e.Date, e)
	if err != nil {
		return nil, retryable("diary entry", err)
	}
	return &out, nil
}

func (s *checkinService) Review(ctx context.Context, weekOf string) (*domain.WeeklyReview, error) {
	r, err := s.api.WeeklyReview(ctx, s.dateOrToday(weekOf))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *checkinService) SaveReview(ctx context.Context, r domain.WeeklyReview) (saved *domain.WeeklyReview, err error) {
	startedAt := time.Now()
	r.WeekOf = s.dateOrToday(r.WeekOf)
	defer func() {
		observeUseCase(ctx, s.observer, "save-weekly-review", startedAt, map[string]any{"week_of": r.WeekOf}, err)
	}()
	out, err := s.api.UpdateWeeklyReview(ctx, r.WeekOf, r)
	if err != nil {
		return nil, retryable("weekly review", err)
	}
	return &out, nil
}

func (s *checkinService) Tracking(ctx context.Context, date string) (*domain.ProgressTracking, error) {
	p, err := s.api.ProgressTracking(ctx, s.dateOrToday(date))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *checkinService) SaveTracking(ctx context.Context, p domain.ProgressTracking) (saved *domain.ProgressTracking, err error) {
	startedAt := time.Now()
	p.Date = s.dateOrToday(p.Date)
	defer func() {
		observeUseCase(ctx, s.observer, "save-progress-tracking", startedAt, map[string]any{"date": p.Date}, err)
	}()
	for _, b := range p.Behaviors {
		if b.Count < 0 {
			return nil, &UIError{Message: "Behavior counts cannot be negative."}
		}
	}
	out, err := s.api.UpdateProgressTracking(ctx, p.Date, p)
	if err != nil {
		return nil, retryable("progress tracking", err)
	}
	return &out, nil
}
