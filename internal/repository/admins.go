package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tallerify/auth-server/internal/models"
)

// PostgresAdminRepository persists administrator accounts.
type PostgresAdminRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository with
// the given database connection.
func NewPostgresAdminRepository(db *sql.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{DB: db}
}

// FindByEmail returns the admin with the given email, or ErrNotFound.
func (r *PostgresAdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRowContext(ctx, `
		SELECT email, hashed_password, name FROM admins WHERE email = $1
	`, email).Scan(&a.Email, &a.HashedPassword, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}

// Insert stores a new admin inside a transaction. Conflicts are returned
// classified; nothing is persisted on failure.
func (r *PostgresAdminRepository) Insert(ctx context.Context, a *models.Admin) error {
	if err := checkLength("email", a.Email, models.MaxEmailLength); err != nil {
		return err
	}
	if err := checkLength("hashed_password", a.HashedPassword, models.MaxHashLength); err != nil {
		return err
	}
	if err := checkLength("name", a.Name, models.MaxNameLength); err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO admins (email, hashed_password, name) VALUES ($1, $2, $3)
	`, a.Email, a.HashedPassword, a.Name)
	if err != nil {
		return classifyPgError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
