package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/repository"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*repository.User)

func WithEmail(email string) UserOption {
	return func(u *repository.User) {
		u.Email = email
	}
}

func WithPasswordHash(hash string) UserOption {
	return func(u *repository.User) {
		u.PasswordHash = hash
	}
}

func WithCreatedAt(t time.Time) UserOption {
	return func(u *repository.User) {
		u.CreatedAt = t.Unix()
	}
}

func WithSubscription(plan string, renewsAt int64) UserOption {
	return func(u *repository.User) {
		u.SubscriptionPlan = plan
		u.SubscriptionRenewsAt = renewsAt
	}
}

// NewTestUser builds a server account with a unique email.
func NewTestUser(name string, opts ...UserOption) *repository.User {
	now := time.Now().Unix()
	u := &repository.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        fmt.Sprintf("user%d@example.test", testEmailCounter.Add(1)),
		PasswordHash: "x",
		CreatedAt:    now,
		LastActiveAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NewTestDocument marshals body into a document for resource/key.
func NewTestDocument(resource, key string, body any) *repository.Document {
	data, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("marshaling test document: %v", err))
	}
	return &repository.Document{Resource: resource, Key: key, Body: data}
}

// NewTestState parses raw JSON into a PreTreatmentState.
func NewTestState(raw string) domain.PreTreatmentState {
	var s domain.PreTreatmentState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		panic(fmt.Sprintf("parsing test state: %v", err))
	}
	return s
}
