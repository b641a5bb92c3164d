package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
)

type onboardingService struct {
	api      OnboardingAPI
	tokens   TokenStore
	observer UseCaseObserver
}

// NewOnboardingService wires the account flows. Every error it returns is a
// *UIError.
func NewOnboardingService(api OnboardingAPI, tokens TokenStore, observers ...UseCaseObserver) OnboardingService {
	return &onboardingService{
		api:      api,
		tokens:   tokens,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *onboardingService) run(ctx context.Context, name string, fields map[string]any, fn func() error) error {
	startedAt := time.Now()
	err := fn()
	observeUseCase(ctx, s.observer, name, startedAt, fields, err)
	if err != nil {
		return NormalizeError(err)
	}
	return nil
}

func (s *onboardingService) Login(ctx context.Context, email, password string) (*domain.Profile, error) {
	email = normalizeEmail(email)
	var user domain.Profile
	err := s.run(ctx, "login", map[string]any{"email": email}, func() error {
		if email == "" || password == "" {
			return &UIError{Message: "Email and password are required."}
		}
		resp, err := s.api.Login(ctx, domain.LoginRequest{Email: email, Password: password})
		if err != nil {
			return err
		}
		user = resp.User
		return s.storeToken(ctx, resp.Token, email)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *onboardingService) Signup(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	email = normalizeEmail(email)
	var user domain.Profile
	err := s.run(ctx, "signup", map[string]any{"email": email}, func() error {
		if strings.TrimSpace(name) == "" || email == "" || password == "" {
			return &UIError{Message: "Name, email and password are required."}
		}
		resp, err := s.api.Signup(ctx, domain.SignupRequest{
			Name:     strings.TrimSpace(name),
			Email:    email,
			Password: password,
		})
		if err != nil {
			return err
		}
		user = resp.User
		return s.storeToken(ctx, resp.Token, email)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *onboardingService) storeToken(ctx context.Context, token, email string) error {
	if token == "" {
		return &UIError{Message: "The server did not return a session token."}
	}
	if err := s.tokens.Save(ctx, token, email); err != nil {
		return &UIError{Message: "Signed in, but the session could not be saved locally.", Err: err}
	}
	return nil
}

func (s *onboardingService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	var msg string
	err := s.run(ctx, "forgot-password", map[string]any{"email": email}, func() error {
		resp, err := s.api.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: email})
		msg = resp.Message
		return err
	})
	return msg, err
}

func (s *onboardingService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	var resetToken string
	err := s.run(ctx, "verify-forgot-password", map[string]any{"email": email}, func() error {
		resp, err := s.api.VerifyForgotPassword(ctx, domain.VerifyForgotPasswordRequest{
			Email: email,
			Code:  strings.TrimSpace(code),
		})
		resetToken = resp.ResetToken
		return err
	})
	return resetToken, err
}

func (s *onboardingService) ResetPassword(ctx context.Context, email, resetToken, newPassword string) (string, error) {
	email = normalizeEmail(email)
	var msg string
	err := s.run(ctx, "change-forgotten-password", map[string]any{"email": email}, func() error {
		if len(newPassword) < MinPasswordLength {
			return &UIError{Message: fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength)}
		}
		resp, err := s.api.ChangeForgottenPassword(ctx, domain.ChangeForgottenPasswordRequest{
			Email:       email,
			ResetToken:  resetToken,
			NewPassword: newPassword,
		})
		msg = resp.Message
		return err
	})
	return msg, err
}

func (s *onboardingService) Subscribe(ctx context.Context, plan domain.SubscriptionPlan, paymentToken string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.run(ctx, "buy-subscription", map[string]any{"plan": string(plan)}, func() error {
		if plan != domain.PlanMonthly && plan != domain.PlanYearly {
			return &UIError{Message: fmt.Sprintf("Unknown plan %q; choose monthly or yearly.", plan)}
		}
		var err error
		sub, err = s.api.BuySubscription(ctx, domain.BuySubscriptionRequest{Plan: plan, PaymentToken: paymentToken})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Logout revokes the session remotely and always forgets it locally. The
// remote failure, if any, is still reported.
func (s *onboardingService) Logout(ctx context.Context) error {
	return s.run(ctx, "logout", nil, func() error {
		_, remoteErr := s.api.Logout(ctx)
		clearErr := s.tokens.Clear(ctx)
		if clearErr != nil {
			clearErr = fmt.Errorf("clearing local session: %w", clearErr)
		}
		return errors.Join(remoteErr, clearErr)
	})
}

// MinPasswordLength is enforced before a reset is sent.
const MinPasswordLength = 8

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
