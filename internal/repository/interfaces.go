package repository

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("already exists")
)

// TokenRepo persists the client's single bearer token.
type TokenRepo interface {
	Token(ctx context.Context) (string, error)
	Email(ctx context.Context) (string, error)
	Save(ctx context.Context, token, email string) error
	Clear(ctx context.Context) error
}

// User is the development server's account row.
type User struct {
	ID                   string
	Name                 string
	Email                string
	PasswordHash         string
	CreatedAt            int64
	LastActiveAt         int64
	SubscriptionPlan     string
	SubscriptionRenewsAt int64
}

type UserRepo interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Touch(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetSubscription(ctx context.Context, id, plan string, renewsAt int64) error
}

// Document is one stored JSON resource body.
type Document struct {
	Resource  string
	Key       string
	Body      []byte
	UpdatedAt time.Time
}

type DocumentRepo interface {
	Get(ctx context.Context, userID, resource, key string) (*Document, error)
	Put(ctx context.Context, userID string, doc *Document) error
	ListByResource(ctx context.Context, userID, resource, keyPrefix string) ([]*Document, error)
}

// PasswordReset tracks an in-flight forgot-password flow.
type PasswordReset struct {
	Email      string
	Code       string
	ResetToken string
	ExpiresAt  int64
}

type PasswordResetRepo interface {
	Upsert(ctx context.Context, r *PasswordReset) error
	Get(ctx context.Context, email string) (*PasswordReset, error)
	Delete(ctx context.Context, email string) error
}

type RevokedTokenRepo interface {
	Revoke(ctx context.Context, jti string, expiresAt int64) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
