package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wisemind/internal/db"
)

// SQLitePasswordResetRepo implements PasswordResetRepo.
type SQLitePasswordResetRepo struct {
	db db.DBTX
}

func NewSQLitePasswordResetRepo(conn db.DBTX) *SQLitePasswordResetRepo {
	return &SQLitePasswordResetRepo{db: conn}
}

func (r *SQLitePasswordResetRepo) Upsert(ctx context.Context, p *PasswordReset) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO password_resets (email, code, reset_token, expires_at)
		VALUES (?, ?, ?, ?)`,
		p.Email, p.Code, p.ResetToken, p.ExpiresAt)
	if err != nil {
		return fmt.Errorf("storing password reset: %w", err)
	}
	return nil
}

func (r *SQLitePasswordResetRepo) Get(ctx context.Context, email string) (*PasswordReset, error) {
	var p PasswordReset
	err := r.db.QueryRowContext(ctx,
		`SELECT email, code, reset_token, expires_at FROM password_resets WHERE email = ?`,
		email).Scan(&p.Email, &p.Code, &p.ResetToken, &p.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("password reset %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning password reset: %w", err)
	}
	return &p, nil
}

func (r *SQLitePasswordResetRepo) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE email = ?`, email); err != nil {
		return fmt.Errorf("deleting password reset: %w", err)
	}
	return nil
}

// SQLiteRevokedTokenRepo implements RevokedTokenRepo. Expired rows are
// pruned on every revoke.
type SQLiteRevokedTokenRepo struct {
	db db.DBTX
}

func NewSQLiteRevokedTokenRepo(conn db.DBTX) *SQLiteRevokedTokenRepo {
	return &SQLiteRevokedTokenRepo{db: conn}
}

func (r *SQLiteRevokedTokenRepo) Revoke(ctx context.Context, jti string, expiresAt int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, time.Now().Unix()); err != nil {
		return fmt.Errorf("pruning revoked tokens: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`,
		jti, expiresAt); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (r *SQLiteRevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`, jti).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking revoked token: %w", err)
	}
	return n > 0, nil
}
