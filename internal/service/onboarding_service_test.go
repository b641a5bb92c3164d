package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alexanderramin/wisemind/internal/api"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboarding_LoginStoresToken(t *testing.T) {
	fake := newFakeAPI()
	fake.auth = domain.AuthResponse{Token: "jwt-1", User: domain.Profile{Name: "Robin"}}
	tokens := &fakeTokens{}
	svc := NewOnboardingService(fake, tokens)

	user, err := svc.Login(context.Background(), "  Robin@Example.TEST ", "secret")

	require.NoError(t, err)
	assert.Equal(t, "Robin", user.Name)
	assert.Equal(t, "jwt-1", tokens.token)
	assert.Equal(t, "robin@example.test", tokens.email)
	assert.Equal(t, "robin@example.test", fake.lastLogin.Email)
}

func TestOnboarding_LoginErrorIsUIError(t *testing.T) {
	fake := newFakeAPI()
	fake.authErr = &api.RequestError{StatusCode: http.StatusUnauthorized, Status: "Unauthorized", Message: "Invalid email or password"}
	tokens := &fakeTokens{}

	_, err := NewOnboardingService(fake, tokens).Login(context.Background(), "a@b.c", "wrong")

	var ui *UIError
	require.ErrorAs(t, err, &ui)
	assert.Equal(t, "Invalid email or password", ui.Message)
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))
	assert.Empty(t, tokens.token)
}

func TestOnboarding_MissingFieldsRejectedLocally(t *testing.T) {
	svc := NewOnboardingService(newFakeAPI(), &fakeTokens{})

	_, err := svc.Signup(context.Background(), " ", "a@b.c", "pw")
	var ui *UIError
	require.ErrorAs(t, err, &ui)
	assert.Contains(t, ui.Message, "required")

	_, err = svc.ResetPassword(context.Background(), "a@b.c", "rt", "short")
	require.ErrorAs(t, err, &ui)
	assert.Contains(t, ui.Message, "at least 8")
}

func TestOnboarding_EmptyTokenRejected(t *testing.T) {
	fake := newFakeAPI()
	fake.auth = domain.AuthResponse{}

	_, err := NewOnboardingService(fake, &fakeTokens{}).Signup(context.Background(), "Robin", "a@b.c", "password1")

	var ui *UIError
	require.ErrorAs(t, err, &ui)
	assert.Contains(t, ui.Message, "session token")
}

func TestOnboarding_PasswordResetFlow(t *testing.T) {
	svc := NewOnboardingService(newFakeAPI(), &fakeTokens{})
	ctx := context.Background()

	msg, err := svc.ForgotPassword(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "code sent", msg)

	rt, err := svc.VerifyCode(ctx, "a@b.c", " 123456 ")
	require.NoError(t, err)
	assert.Equal(t, "reset-1", rt)

	msg, err = svc.ResetPassword(ctx, "a@b.c", rt, "long-enough")
	require.NoError(t, err)
	assert.Equal(t, "password changed", msg)
}

func TestOnboarding_SubscribeValidatesPlan(t *testing.T) {
	svc := NewOnboardingService(newFakeAPI(), &fakeTokens{})

	_, err := svc.Subscribe(context.Background(), "weekly", "tok")
	assert.Error(t, err)

	sub, err := svc.Subscribe(context.Background(), domain.PlanYearly, "tok")
	require.NoError(t, err)
	assert.True(t, sub.Active)
}

func TestOnboarding_LogoutClearsTokenEvenOnFailure(t *testing.T) {
	fake := newFakeAPI()
	fake.logoutErr = &api.NetworkError{Method: "POST", Resource: "logout", Err: errors.New("refused")}
	tokens := &fakeTokens{token: "jwt"}
	obs := &recordingObserver{}

	err := NewOnboardingService(fake, tokens, obs).Logout(context.Background())

	var ui *UIError
	require.ErrorAs(t, err, &ui)
	assert.Contains(t, ui.Message, "Unable to reach the server")
	assert.True(t, tokens.cleared)
	assert.Empty(t, tokens.token)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}
