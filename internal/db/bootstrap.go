package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tallerify/auth-server/internal/credentials"
)

// EnsureDefaultAdmin inserts the configured administrator account if it
// does not already exist. The insert is idempotent: a duplicate key is
// treated as "already bootstrapped" via ON CONFLICT DO NOTHING.
func EnsureDefaultAdmin(ctx context.Context, db *sql.DB, email, password, name string) error {
	hash, err := credentials.Hash(password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT INTO admins (email, hashed_password, name) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		email, hash, name,
	)
	if err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	return nil
}
