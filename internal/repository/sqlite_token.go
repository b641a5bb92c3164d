package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wisemind/internal/api"
	"github.com/alexanderramin/wisemind/internal/db"
)

// SQLiteTokenRepo stores the single client credential. It satisfies
// api.TokenSource.
type SQLiteTokenRepo struct {
	db db.DBTX
}

func NewSQLiteTokenRepo(conn db.DBTX) *SQLiteTokenRepo {
	return &SQLiteTokenRepo{db: conn}
}

var _ api.TokenSource = (*SQLiteTokenRepo)(nil)

// Token returns the stored bearer token, or api.ErrNoToken when none is saved.
func (r *SQLiteTokenRepo) Token(ctx context.Context) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx,
		`SELECT token FROM auth_tokens WHERE id = 'default'`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", api.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	if token == "" {
		return "", api.ErrNoToken
	}
	return token, nil
}

// Email returns the address the token was issued for.
func (r *SQLiteTokenRepo) Email(ctx context.Context) (string, error) {
	var email string
	err := r.db.QueryRowContext(ctx,
		`SELECT email FROM auth_tokens WHERE id = 'default'`).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("token: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading token email: %w", err)
	}
	return email, nil
}

func (r *SQLiteTokenRepo) Save(ctx context.Context, token, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO auth_tokens (id, token, email, saved_at) VALUES ('default', ?, ?, ?)`,
		token, email, nowUTC())
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens`); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}
