package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// fakeAPI implements every client interface the services consume. Zero
// values succeed with empty documents; set the *Err fields to fail a call.
type fakeAPI struct {
	mu sync.Mutex

	profile     domain.Profile
	contacts    []domain.ContactRecord
	progress    domain.Progress
	profileErr  error
	contactsErr error
	progressErr error

	auth      domain.AuthResponse
	authErr   error
	logoutErr error
	lastLogin domain.LoginRequest
	sub       domain.Subscription

	suds       map[string]domain.SudsCheckin
	coping     domain.CopingPlan
	copingErr  error
	writeErr   error
	state      domain.PreTreatmentState
	goals      domain.Goals
	letter     domain.Letter
	strengths  domain.StrengthsAndResources
	writeCount int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{suds: map[string]domain.SudsCheckin{}, state: domain.NewPreTreatmentState()}
}

func (f *fakeAPI) Profile(context.Context) (domain.Profile, error) { return f.profile, f.profileErr }
func (f *fakeAPI) Contacts(context.Context) ([]domain.ContactRecord, error) {
	return f.contacts, f.contactsErr
}
func (f *fakeAPI) Progress(context.Context) (domain.Progress, error) { return f.progress, f.progressErr }

func (f *fakeAPI) Login(_ context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	f.lastLogin = req
	return f.auth, f.authErr
}
func (f *fakeAPI) Signup(context.Context, domain.SignupRequest) (domain.AuthResponse, error) {
	return f.auth, f.authErr
}
func (f *fakeAPI) ForgotPassword(context.Context, domain.ForgotPasswordRequest) (domain.MessageResponse, error) {
	return domain.MessageResponse{Message: "code sent"}, f.authErr
}
func (f *fakeAPI) VerifyForgotPassword(context.Context, domain.VerifyForgotPasswordRequest) (domain.VerifyForgotPasswordResponse, error) {
	return domain.VerifyForgotPasswordResponse{ResetToken: "reset-1"}, f.authErr
}
func (f *fakeAPI) ChangeForgottenPassword(context.Context, domain.ChangeForgottenPasswordRequest) (domain.MessageResponse, error) {
	return domain.MessageResponse{Message: "password changed"}, f.authErr
}
func (f *fakeAPI) BuySubscription(_ context.Context, req domain.BuySubscriptionRequest) (domain.Subscription, error) {
	return domain.Subscription{Plan: req.Plan, Active: true}, f.authErr
}
func (f *fakeAPI) Logout(context.Context) (domain.MessageResponse, error) {
	return domain.MessageResponse{}, f.logoutErr
}

func (f *fakeAPI) write() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCount++
	return f.writeErr
}

func (f *fakeAPI) SudsCheckin(_ context.Context, date string) (domain.SudsCheckin, error) {
	return f.suds[date], nil
}
func (f *fakeAPI) UpdateSudsCheckin(_ context.Context, date string, s domain.SudsCheckin) (domain.SudsCheckin, error) {
	if err := f.write(); err != nil {
		return domain.SudsCheckin{}, err
	}
	f.suds[date] = s
	return s, nil
}
func (f *fakeAPI) SudsList(context.Context) (domain.SudsList, error) {
	var out domain.SudsList
	for _, s := range f.suds {
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeAPI) SudsCalendar(_ context.Context, month string) (domain.SudsCalendar, error) {
	return domain.SudsCalendar{Month: month}, nil
}
func (f *fakeAPI) CopingPlan(context.Context) (domain.CopingPlan, error) { return f.coping, f.copingErr }
func (f *fakeAPI) UpdateCopingPlan(_ context.Context, p domain.CopingPlan) (domain.CopingPlan, error) {
	if err := f.write(); err != nil {
		return domain.CopingPlan{}, err
	}
	f.coping = p
	return p, nil
}
func (f *fakeAPI) DiaryEntry(_ context.Context, date string) (domain.DiaryEntry, error) {
	return domain.DiaryEntry{Date: date}, nil
}
func (f *fakeAPI) UpdateDiaryEntry(_ context.Context, _ string, e domain.DiaryEntry) (domain.DiaryEntry, error) {
	return e, f.write()
}
func (f *fakeAPI) WeeklyReview(_ context.Context, date string) (domain.WeeklyReview, error) {
	return domain.WeeklyReview{WeekOf: date}, nil
}
func (f *fakeAPI) UpdateWeeklyReview(_ context.Context, _ string, r domain.WeeklyReview) (domain.WeeklyReview, error) {
	return r, f.write()
}
func (f *fakeAPI) ProgressTracking(_ context.Context, date string) (domain.ProgressTracking, error) {
	return domain.ProgressTracking{Date: date}, nil
}
func (f *fakeAPI) UpdateProgressTracking(_ context.Context, _ string, p domain.ProgressTracking) (domain.ProgressTracking, error) {
	return p, f.write()
}

func (f *fakeAPI) TreatmentPlan(context.Context) (domain.TreatmentPlan, error) {
	return domain.TreatmentPlan{{ID: "1", Title: "Commitment", Stage: 1, Completed: true}, {ID: "2", Title: "Skills", Stage: 2}}, nil
}
func (f *fakeAPI) PreTreatmentState(context.Context) (domain.PreTreatmentState, error) {
	return f.state, nil
}
func (f *fakeAPI) Goals(context.Context) (domain.Goals, error) { return f.goals, nil }
func (f *fakeAPI) UpdateGoals(_ context.Context, g domain.Goals) (domain.Goals, error) {
	if err := f.write(); err != nil {
		return domain.Goals{}, err
	}
	f.goals = g
	return g, nil
}
func (f *fakeAPI) StrengthsAndResources(context.Context) (domain.StrengthsAndResources, error) {
	return f.strengths, nil
}
func (f *fakeAPI) UpdateStrengthsAndResources(_ context.Context, s domain.StrengthsAndResources) (domain.StrengthsAndResources, error) {
	if err := f.write(); err != nil {
		return domain.StrengthsAndResources{}, err
	}
	f.strengths = s
	return s, nil
}
func (f *fakeAPI) Letter(context.Context) (domain.Letter, error) { return f.letter, nil }
func (f *fakeAPI) UpdateLetter(_ context.Context, l domain.Letter) (domain.Letter, error) {
	if err := f.write(); err != nil {
		return domain.Letter{}, err
	}
	f.letter = l
	return l, nil
}

type fakeTokens struct {
	token, email string
	saveErr      error
	cleared      bool
}

func (t *fakeTokens) Save(_ context.Context, token, email string) error {
	if t.saveErr != nil {
		return t.saveErr
	}
	t.token, t.email = token, email
	return nil
}

func (t *fakeTokens) Clear(context.Context) error {
	t.token, t.email, t.cleared = "", "", true
	return nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}
