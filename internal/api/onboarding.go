package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/wisemind/internal/domain"
)

const (
	ResourceLogin                   = "login"
	ResourceSignup                  = "signup"
	ResourceForgotPassword          = "forgot-password"
	ResourceVerifyForgotPassword    = "verify-forgot-password"
	ResourceChangeForgottenPassword = "change-forgotten-password"
	ResourceBuySubscription         = "buy-subscription"
	ResourceLogout                  = "logout"
)

func post(resource string, auth bool) endpoint {
	return endpoint{method: http.MethodPost, resource: resource, auth: auth}
}

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	return call[domain.AuthResponse](ctx, c, post(ResourceLogin, false), req)
}

func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResponse, error) {
	return call[domain.AuthResponse](ctx, c, post(ResourceSignup, false), req)
}

func (c *Client) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) (domain.MessageResponse, error) {
	return call[domain.MessageResponse](ctx, c, post(ResourceForgotPassword, false), req)
}

func (c *Client) VerifyForgotPassword(ctx context.Context, req domain.VerifyForgotPasswordRequest) (domain.VerifyForgotPasswordResponse, error) {
	return call[domain.VerifyForgotPasswordResponse](ctx, c, post(ResourceVerifyForgotPassword, false), req)
}

func (c *Client) ChangeForgottenPassword(ctx context.Context, req domain.ChangeForgottenPasswordRequest) (domain.MessageResponse, error) {
	return call[domain.MessageResponse](ctx, c, post(ResourceChangeForgottenPassword, false), req)
}

func (c *Client) BuySubscription(ctx context.Context, req domain.BuySubscriptionRequest) (domain.Subscription, error) {
	return call[domain.Subscription](ctx, c, post(ResourceBuySubscription, true), req)
}

func (c *Client) Logout(ctx context.Context) (domain.MessageResponse, error) {
	return call[domain.MessageResponse](ctx, c, post(ResourceLogout, true), struct{}{})
}
