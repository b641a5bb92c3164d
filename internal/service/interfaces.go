package service

import (
	"context"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// ProfileAPI is the subset of the resource client the profile screen reads.
type ProfileAPI interface {
	Profile(ctx context.Context) (domain.Profile, error)
	Contacts(ctx context.Context) ([]domain.ContactRecord, error)
	Progress(ctx context.Context) (domain.Progress, error)
}

type OnboardingAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
	Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResponse, error)
	ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) (domain.MessageResponse, error)
	VerifyForgotPassword(ctx context.Context, req domain.VerifyForgotPasswordRequest) (domain.VerifyForgotPasswordResponse, error)
	ChangeForgottenPassword(ctx context.Context, req domain.ChangeForgottenPasswordRequest) (domain.MessageResponse, error)
	BuySubscription(ctx context.Context, req domain.BuySubscriptionRequest) (domain.Subscription, error)
	Logout(ctx context.Context) (domain.MessageResponse, error)
}

type CheckinAPI interface {
	SudsCheckin(ctx context.Context, date string) (domain.SudsCheckin, error)
	UpdateSudsCheckin(ctx context.Context, date string, s domain.SudsCheckin) (domain.SudsCheckin, error)
	SudsList(ctx context.Context) (domain.SudsList, error)
	SudsCalendar(ctx context.Context, month string) (domain.SudsCalendar, error)
	CopingPlan(ctx context.Context) (domain.CopingPlan, error)
	UpdateCopingPlan(ctx context.Context, p domain.CopingPlan) (domain.CopingPlan, error)
	DiaryEntry(ctx context.Context, date string) (domain.DiaryEntry, error)
	UpdateDiaryEntry(ctx context.Context, date string, e domain.DiaryEntry) (domain.DiaryEntry, error)
	WeeklyReview(ctx context.Context, date string) (domain.WeeklyReview, error)
	UpdateWeeklyReview(ctx context.Context, date string, r domain.WeeklyReview) (domain.WeeklyReview, error)
	ProgressTracking(ctx context.Context, date string) (domain.ProgressTracking, error)
	UpdateProgressTracking(ctx context.Context, date string, p domain.ProgressTracking) (domain.ProgressTracking, error)
}

type PlanAPI interface {
	TreatmentPlan(ctx context.Context) (domain.TreatmentPlan, error)
	PreTreatmentState(ctx context.Context) (domain.PreTreatmentState, error)
	Goals(ctx context.Context) (domain.Goals, error)
	UpdateGoals(ctx context.Context, g domain.Goals) (domain.Goals, error)
	StrengthsAndResources(ctx context.Context) (domain.StrengthsAndResources, error)
	UpdateStrengthsAndResources(ctx context.Context, s domain.StrengthsAndResources) (domain.StrengthsAndResources, error)
	Letter(ctx context.Context) (domain.Letter, error)
	UpdateLetter(ctx context.Context, l domain.Letter) (domain.Letter, error)
}

// TokenStore persists the credential returned by login and signup.
type TokenStore interface {
	Save(ctx context.Context, token, email string) error
	Clear(ctx context.Context) error
}

type ProfileService interface {
	Overview(ctx context.Context) (*ProfileOverview, error)
}

type OnboardingService interface {
	Login(ctx context.Context, email, password string) (*domain.Profile, error)
	Signup(ctx context.Context, name, email, password string) (*domain.Profile, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, email, resetToken, newPassword string) (string, error)
	Subscribe(ctx context.Context, plan domain.SubscriptionPlan, paymentToken string) (*domain.Subscription, error)
	Logout(ctx context.Context) error
}

type CheckinService interface {
	Suds(ctx context.Context, date string) (*domain.SudsCheckin, error)
	LogSuds(ctx context.Context, c domain.SudsCheckin) (*SudsLogResult, error)
	History(ctx context.Context) (domain.SudsList, error)
	Calendar(ctx context.Context, month string) (*domain.SudsCalendar, error)
	CopingPlan(ctx context.Context) (*domain.CopingPlan, error)
	SaveCopingPlan(ctx context.Context, p domain.CopingPlan) (*domain.CopingPlan, error)
	Diary(ctx context.Context, date string) (*domain.DiaryEntry, error)
	SaveDiary(ctx context.Context, e domain.DiaryEntry) (*domain.DiaryEntry, error)
	Review(ctx context.Context, weekOf string) (*domain.WeeklyReview, error)
	SaveReview(ctx context.Context, r domain.WeeklyReview) (*domain.WeeklyReview, error)
	Tracking(ctx context.Context, date string) (*domain.ProgressTracking, error)
	SaveTracking(ctx context.Context, p domain.ProgressTracking) (*domain.ProgressTracking, error)
}

type PlanService interface {
	TreatmentPlan(ctx context.Context) (domain.TreatmentPlan, error)
	State(ctx context.Context) (*StateSummary, error)
	Goals(ctx context.Context) (*domain.Goals, error)
	SaveGoals(ctx context.Context, g domain.Goals) (*domain.Goals, error)
	Strengths(ctx context.Context) (*domain.StrengthsAndResources, error)
	SaveStrengths(ctx context.Context, s domain.StrengthsAndResources) (*domain.StrengthsAndResources, error)
	Letter(ctx context.Context) (*domain.Letter, error)
	SaveLetter(ctx context.Context, content string) (*domain.Letter, error)
}
