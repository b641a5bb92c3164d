package domain

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by /login and /signup.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyForgotPasswordRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyForgotPasswordResponse struct {
	ResetToken string `json:"resetToken"`
}

type ChangeForgottenPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanYearly  SubscriptionPlan = "yearly"
)

type BuySubscriptionRequest struct {
	Plan         SubscriptionPlan `json:"plan"`
	PaymentToken string           `json:"paymentToken"`
}

type Subscription struct {
	Plan     SubscriptionPlan `json:"plan"`
	Active   bool             `json:"active"`
	RenewsAt int64            `json:"renewsAt,omitempty"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
