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

// GoogleUpdate describes a partial column update for a google account
// row. Nil fields are left untouched.
type GoogleUpdate struct {
	LastLogin *time.Time
	PushToken *string
	Blocked   *bool
}

// PostgresGoogleRepository persists federated (google) accounts.
type PostgresGoogleRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresGoogleRepository creates a new PostgresGoogleRepository with
// the given database connection.
func NewPostgresGoogleRepository(db *sql.DB) *PostgresGoogleRepository {
	return &PostgresGoogleRepository{DB: db}
}

// FindByEmail returns the google account with the given email, or
// ErrNotFound.
func (r *PostgresGoogleRepository) FindByEmail(ctx context.Context, email string) (*models.GoogleAccount, error) {
	var (
		g         models.GoogleAccount
		lastLogin sql.NullTime
		pushToken sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT email, secret, is_blocked, registered_at, last_login, push_token
		FROM google_accounts WHERE email = $1
	`, email).Scan(&g.Email, &g.Secret, &g.Blocked, &g.RegisteredAt, &lastLogin, &pushToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find google account: %w", err)
	}
	g.LastLogin = lastLogin.Time
	g.PushToken = pushToken.String
	return &g, nil
}

// Insert stores a new google account inside a transaction. Conflicts are
// returned classified; nothing is persisted on failure.
func (r *PostgresGoogleRepository) Insert(ctx context.Context, g *models.GoogleAccount) error {
	if err := checkLength("email", g.Email, models.MaxEmailLength); err != nil {
		return err
	}
	if err := checkLength("push_token", g.PushToken, models.MaxTokenLength); err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO google_accounts (email, secret, is_blocked, registered_at, last_login, push_token)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, g.Email, g.Secret, g.Blocked, g.RegisteredAt, nullTime(g.LastLogin), nullString(g.PushToken))
	if err != nil {
		return classifyPgError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UpdateFields applies the non-nil fields of upd to the google account
// row. Returns the number of rows updated; zero means the email is
// absent.
func (r *PostgresGoogleRepository) UpdateFields(ctx context.Context, email string, upd GoogleUpdate) (int64, error) {
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
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, email)
	query := fmt.Sprintf(`UPDATE google_accounts SET %s WHERE email = $%d`, strings.Join(sets, ", "), len(args))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update google account: %w", classifyPgError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// ListAll returns email and blocked status for every google account.
func (r *PostgresGoogleRepository) ListAll(ctx context.Context) ([]models.AccountSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT email, is_blocked FROM google_accounts ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list google accounts: %w", err)
	}
	defer rows.Close()

	var out []models.AccountSummary
	for rows.Next() {
		s := models.AccountSummary{Kind: "google"}
		if err := rows.Scan(&s.Email, &s.Blocked); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AggregateTimestamps returns registration and login timestamps of every
// google account for metric aggregation.
func (r *PostgresGoogleRepository) AggregateTimestamps(ctx context.Context) ([]models.AccountTimes, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT registered_at, last_login, is_blocked FROM google_accounts`)
	if err != nil {
		return nil, fmt.Errorf("aggregate google accounts: %w", err)
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
