package service

import (
	"context"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/repository"
)

// mockUserRepo implements UserRepository with overridable funcs. Unset
// funcs behave as an empty table.
type mockUserRepo struct {
	FindByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	InsertFunc              func(ctx context.Context, u *models.User) error
	UpdateFieldsFunc        func(ctx context.Context, email string, upd repository.UserUpdate) (int64, error)
	ListAllFunc             func(ctx context.Context) ([]models.AccountSummary, error)
	AggregateTimestampsFunc func(ctx context.Context) ([]models.AccountTimes, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Insert(ctx context.Context, u *models.User) error {
	if m.InsertFunc == nil {
		return nil
	}
	return m.InsertFunc(ctx, u)
}

func (m *mockUserRepo) UpdateFields(ctx context.Context, email string, upd repository.UserUpdate) (int64, error) {
	if m.UpdateFieldsFunc == nil {
		return 0, nil
	}
	return m.UpdateFieldsFunc(ctx, email, upd)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]models.AccountSummary, error) {
	if m.ListAllFunc == nil {
		return nil, nil
	}
	return m.ListAllFunc(ctx)
}

func (m *mockUserRepo) AggregateTimestamps(ctx context.Context) ([]models.AccountTimes, error) {
	if m.AggregateTimestampsFunc == nil {
		return nil, nil
	}
	return m.AggregateTimestampsFunc(ctx)
}

// mockGoogleRepo implements GoogleRepository with overridable funcs.
type mockGoogleRepo struct {
	FindByEmailFunc         func(ctx context.Context, email string) (*models.GoogleAccount, error)
	InsertFunc              func(ctx context.Context, g *models.GoogleAccount) error
	UpdateFieldsFunc        func(ctx context.Context, email string, upd repository.GoogleUpdate) (int64, error)
	ListAllFunc             func(ctx context.Context) ([]models.AccountSummary, error)
	AggregateTimestampsFunc func(ctx context.Context) ([]models.AccountTimes, error)
}

func (m *mockGoogleRepo) FindByEmail(ctx context.Context, email string) (*models.GoogleAccount, error) {
	if m.FindByEmailFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockGoogleRepo) Insert(ctx context.Context, g *models.GoogleAccount) error {
	if m.InsertFunc == nil {
		return nil
	}
	return m.InsertFunc(ctx, g)
}

func (m *mockGoogleRepo) UpdateFields(ctx context.Context, email string, upd repository.GoogleUpdate) (int64, error) {
	if m.UpdateFieldsFunc == nil {
		return 0, nil
	}
	return m.UpdateFieldsFunc(ctx, email, upd)
}

func (m *mockGoogleRepo) ListAll(ctx context.Context) ([]models.AccountSummary, error) {
	if m.ListAllFunc == nil {
		return nil, nil
	}
	return m.ListAllFunc(ctx)
}

func (m *mockGoogleRepo) AggregateTimestamps(ctx context.Context) ([]models.AccountTimes, error) {
	if m.AggregateTimestampsFunc == nil {
		return nil, nil
	}
	return m.AggregateTimestampsFunc(ctx)
}

// mockAdminRepo implements AdminRepository with overridable funcs.
type mockAdminRepo struct {
	FindByEmailFunc func(ctx context.Context, email string) (*models.Admin, error)
	InsertFunc      func(ctx context.Context, a *models.Admin) error
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.FindByEmailFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockAdminRepo) Insert(ctx context.Context, a *models.Admin) error {
	if m.InsertFunc == nil {
		return nil
	}
	return m.InsertFunc(ctx, a)
}
