package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tallerify/auth-server/internal/models"
)

// UserUpdate describes a partial column update for a user row. Nil
// fields are left untouched.
type UserUpdate struct {
	LastLogin *time.Time
	PushToken *string
	Blocked   *bool
}

// PostgresUserRepository persists local user accounts.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// FindByEmail returns the user with the given email, or ErrNotFound.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		u         models.User
		lastLogin sql.NullTime
		pushToken sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT email, hashed_password, is_federated, is_blocked, registered_at, last_login, push_token, device_key
		FROM users WHERE email = $1
	`, email).Scan(&u.Email, &u.HashedPassword, &u.Federated, &u.Blocked, &u.RegisteredAt, &lastLogin, &pushToken, &u.DeviceKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.LastLogin = lastLogin.Time
	u.PushToken = pushToken.String
	return &u, nil
}

// Insert stores a new user inside a transaction. Conflicts are returned
// classified; nothing is persisted on failure.
func (r *PostgresUserRepository) Insert(ctx context.Context, u *models.User) error {
	if err := checkLength("email", u.Email, models.MaxEmailLength); err != nil {
		return err
	}
	if err := checkLength("hashed_password", u.HashedPassword, models.MaxHashLength); err != nil {
		return err
	}
	if err := checkLength("push_token", u.PushToken, models.MaxTokenLength); err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (email, hashed_password, is_federated, is_blocked, registered_at, last_login, push_token, device_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.Email, u.HashedPassword, u.Federated, u.Blocked, u.RegisteredAt, nullTime(u.LastLogin), nullString(u.PushToken), u.DeviceKey)
	if err != nil {
		return classifyPgError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UpdateFields applies the non-nil fields of upd to the user row.
// Returns the number of rows updated; zero means the email is absent.
func (r *PostgresUserRepository) UpdateFields(ctx context.Context, email string, upd UserUpdate) (int64, error) {
	sets, args := buildUserSet(upd)
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, email)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE email = $%d`, strings.Join(sets, ", "), len(args))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", classifyPgError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// ListAll returns email and blocked status for every user. Ordering is
// stable within one query.
func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]models.AccountSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT email, is_blocked FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.AccountSummary
	for rows.Next() {
		s := models.AccountSummary{Kind: "user"}
		if err := rows.Scan(&s.Email, &s.Blocked); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AggregateTimestamps returns the registration and login timestamps of
// every user for metric aggregation.
func (r *PostgresUserRepository) AggregateTimestamps(ctx context.Context) ([]models.AccountTimes, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT registered_at, last_login, is_blocked FROM users`)
	if err != nil {
		return nil, fmt.Errorf("aggregate users: %w", err)
	}
	defer rows.Close()

	var out []models.AccountTimes
	for rows.Next() {
		var (
			at        models.AccountTimes
			lastLogin sql.NullTime
		)
		if err := rows.Scan(&at.RegisteredAt, &lastLogin, &at.Blocked); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		at.LastLogin = lastLogin.Time
		out = append(out, at)
	}
	return out, rows.Err()
}

func buildUserSet(upd UserUpdate) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.LastLogin != nil {
		add("last_login", *upd.LastLogin)
	}
	if upd.PushToken != nil {
		add("push_token", nullString(*upd.PushToken))
	}
	if upd.Blocked != nil {
		add("is_blocked", *upd.Blocked)
	}
	return sets, args
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
