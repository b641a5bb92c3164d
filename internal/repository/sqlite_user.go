package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wisemind/internal/db"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userColumns = `id, name, email, password_hash, created_at, last_active_at,
	subscription_plan, subscription_renews_at`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.LastActiveAt,
		u.SubscriptionPlan, u.SubscriptionRenewsAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", u.Email, ErrConflict)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row, id)
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row, email)
}

func (r *SQLiteUserRepo) Touch(ctx context.Context, id string, at time.Time) error {
	return r.exec(ctx, id, `UPDATE users SET last_active_at = ? WHERE id = ?`, at.Unix(), id)
}

func (r *SQLiteUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.exec(ctx, id, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
}

func (r *SQLiteUserRepo) SetSubscription(ctx context.Context, id, plan string, renewsAt int64) error {
	return r.exec(ctx, id,
		`UPDATE users SET subscription_plan = ?, subscription_renews_at = ? WHERE id = ?`,
		plan, renewsAt, id)
}

func (r *SQLiteUserRepo) exec(ctx context.Context, id, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanUser(row *sql.Row, ref string) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
		&u.LastActiveAt, &u.SubscriptionPlan, &u.SubscriptionRenewsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}
