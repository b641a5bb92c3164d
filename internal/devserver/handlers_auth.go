package devserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/db"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// initialState is the pre-treatment document every new account starts with.
const initialState = `{"stepsCompleted":0,"dbtOverviewPartsCompleted":{"understandYourself":0,"understandEmotions":0,"aboutDBT":0,"dbtSkills":0,"dbtJourney":0}}`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Server) profileOf(u *repository.User) domain.Profile {
	return domain.Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		LastActiveAt: u.LastActiveAt,
		Subscribed:   u.SubscriptionPlan != "" && u.SubscriptionRenewsAt > s.now().Unix(),
	}
}

func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, status int, u *repository.User) {
	token, _, err := s.issuer.Issue(u.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, status, domain.AuthResponse{Token: token, User: s.profileOf(u)})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "name and a valid email are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	now := s.now().Unix()
	user := &repository.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastActiveAt: now,
	}
	err = s.uow.WithinTx(r.Context(), func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserRepo(tx).Create(ctx, user); err != nil {
			return err
		}
		return repository.NewSQLiteDocumentRepo(tx).Put(ctx, user.ID, &repository.Document{
			Resource: "pre-treatment-state",
			Body:     []byte(initialState),
		})
	})
	if errors.Is(err, repository.ErrConflict) {
		writeError(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.logger.Info("account created", zap.String("user_id", user.ID))
	s.issueSession(w, r, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := s.users.GetByEmail(r.Context(), normalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := s.users.Touch(r.Context(), user.ID, s.now()); err != nil {
		s.internalError(w, r, err)
		return
	}
	user.LastActiveAt = s.now().Unix()
	s.issueSession(w, r, http.StatusOK, user)
}

// handleForgotPassword answers identically whether or not the account
// exists. The code is logged since the dev server sends no email.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	resp := domain.MessageResponse{Message: "If that account exists, a verification code has been sent."}

	if _, err := s.users.GetByEmail(r.Context(), email); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.internalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	code := s.resetCode()
	err := s.resets.Upsert(r.Context(), &repository.PasswordReset{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(resetCodeTTL).Unix(),
	})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.logger.Info("password reset code issued", zap.String("email", email), zap.String("code", code))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) activeReset(ctx context.Context, email string) (*repository.PasswordReset, error) {
	reset, err := s.resets.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if reset.ExpiresAt < s.now().Unix() {
		return nil, repository.ErrNotFound
	}
	return reset, nil
}

func (s *Server) handleVerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	reset, err := s.activeReset(r.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "invalid or expired code")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if subtle.ConstantTimeCompare([]byte(reset.Code), []byte(strings.TrimSpace(req.Code))) != 1 {
		writeError(w, http.StatusBadRequest, "invalid or expired code")
		return
	}
	reset.ResetToken = uuid.New().String()
	if err := s.resets.Upsert(r.Context(), reset); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.VerifyForgotPasswordResponse{ResetToken: reset.ResetToken})
}

func (s *Server) handleChangeForgottenPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangeForgottenPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	reset, err := s.activeReset(r.Context(), email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.internalError(w, r, err)
		return
	}
	if err != nil || reset.ResetToken == "" ||
		subtle.ConstantTimeCompare([]byte(reset.ResetToken), []byte(req.ResetToken)) != 1 {
		writeError(w, http.StatusBadRequest, "invalid or expired reset token")
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	err = s.uow.WithinTx(r.Context(), func(ctx context.Context, tx db.DBTX) error {
		user, err := repository.NewSQLiteUserRepo(tx).GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteUserRepo(tx).UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return err
		}
		return repository.NewSQLitePasswordResetRepo(tx).Delete(ctx, email)
	})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.MessageResponse{Message: "Password updated. You can now log in."})
}

func (s *Server) handleBuySubscription(w http.ResponseWriter, r *http.Request) {
	var req domain.BuySubscriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var period time.Duration
	switch req.Plan {
	case domain.PlanMonthly:
		period = 30 * 24 * time.Hour
	case domain.PlanYearly:
		period = 365 * 24 * time.Hour
	default:
		writeError(w, http.StatusBadRequest, "plan must be monthly or yearly")
		return
	}
	if strings.TrimSpace(req.PaymentToken) == "" {
		writeError(w, http.StatusPaymentRequired, "payment token is required")
		return
	}
	renewsAt := s.now().Add(period).Unix()
	if err := s.users.SetSubscription(r.Context(), userIDFrom(r.Context()), string(req.Plan), renewsAt); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.Subscription{Plan: req.Plan, Active: true, RenewsAt: renewsAt})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	expires := s.now().Add(s.issuer.ttl).Unix()
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Unix()
	}
	if err := s.revoked.Revoke(r.Context(), claims.ID, expires); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.MessageResponse{Message: "Logged out."})
}
