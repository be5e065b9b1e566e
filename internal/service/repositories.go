// Package service implements the account lifecycle: authentication,
// registration, moderation and metrics. Persistence is delegated to the
// repository interfaces declared here.
package service

import (
	"context"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/repository"
)

// UserRepository defines the persistence operations required over local
// user accounts.
type UserRepository interface {
	// FindByEmail returns the user or repository.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Insert stores a new user; conflicts come back classified.
	Insert(ctx context.Context, u *models.User) error
	// UpdateFields applies a partial update, returning rows affected.
	UpdateFields(ctx context.Context, email string, upd repository.UserUpdate) (int64, error)
	// ListAll returns email and blocked status for every user.
	ListAll(ctx context.Context) ([]models.AccountSummary, error)
	// AggregateTimestamps returns timestamps for metric aggregation.
	AggregateTimestamps(ctx context.Context) ([]models.AccountTimes, error)
}

// GoogleRepository defines the persistence operations required over
// federated accounts.
type GoogleRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.GoogleAccount, error)
	Insert(ctx context.Context, g *models.GoogleAccount) error
	UpdateFields(ctx context.Context, email string, upd repository.GoogleUpdate) (int64, error)
	ListAll(ctx context.Context) ([]models.AccountSummary, error)
	AggregateTimestamps(ctx context.Context) ([]models.AccountTimes, error)
}

// AdminRepository defines the persistence operations required over
// administrator accounts.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Insert(ctx context.Context, a *models.Admin) error
}
