package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultProfileName is shown when the profile cannot be read.
const DefaultProfileName = "Friend"

// ProfileOverview is the profile screen's derived view.
type ProfileOverview struct {
	Name            string
	Email           string
	MemberSince     int
	LastActive      string
	Subscribed      bool
	Stage           int
	StageName       string
	TotalStages     int
	Percentage      int
	DaysActive      int
	SkillsPracticed int
	Contacts        []domain.Contact
	// Degraded lists the reads that failed and fell back to defaults.
	Degraded []string
}

type profileService struct {
	api      ProfileAPI
	now      func() time.Time
	observer UseCaseObserver
}

func NewProfileService(api ProfileAPI, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		api:      api,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Overview fetches profile, contacts and progress concurrently. A failed
// read falls back to its typed default; only cancellation fails the call.
func (s *profileService) Overview(ctx context.Context) (overview *ProfileOverview, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "profile-overview", startedAt, fields, err)
	}()

	var (
		mu       sync.Mutex
		degraded []string
		profile  domain.Profile
		records  []domain.ContactRecord
		progress = domain.Progress{CurrentStage: 1, TotalStages: domain.DefaultTotalStages}
	)
	fallback := func(ctx context.Context, name string, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		mu.Lock()
		degraded = append(degraded, name)
		mu.Unlock()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.api.Profile(gctx)
		if err != nil {
			return fallback(gctx, "profile", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		c, err := s.api.Contacts(gctx)
		if err != nil {
			return fallback(gctx, "contacts", err)
		}
		records = c
		return nil
	})
	g.Go(func() error {
		p, err := s.api.Progress(gctx)
		if err != nil {
			return fallback(gctx, "progress", err)
		}
		progress = p
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	total := progress.TotalStages
	if total <= 0 {
		total = domain.DefaultTotalStages
	}
	overview = &ProfileOverview{
		Name:            domain.CoalesceStr(profile.Name, DefaultProfileName),
		Email:           profile.Email,
		Subscribed:      profile.Subscribed,
		Stage:           progress.CurrentStage,
		StageName:       domain.StageName(progress.CurrentStage),
		TotalStages:     total,
		Percentage:      domain.ProgressPercentage(progress.CurrentStage, total),
		DaysActive:      progress.DaysActive,
		SkillsPracticed: progress.SkillsPracticed,
		Contacts:        domain.EmergencyContacts(records),
		Degraded:        degraded,
	}
	if profile.CreatedAt > 0 {
		overview.MemberSince = domain.MemberSinceYear(profile.CreatedAt)
	}
	if profile.LastActiveAt > 0 {
		overview.LastActive = domain.FormatLastActive(profile.LastActiveAt, s.now())
	}
	if len(degraded) > 0 {
		fields["degraded"] = degraded
	}
	return overview, nil
}
