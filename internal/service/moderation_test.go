package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/repository"
)

func TestSetBlocked_UserTableFirst(t *testing.T) {
	googleTouched := false
	users := &mockUserRepo{
		UpdateFieldsFunc: func(_ context.Context, email string, upd repository.UserUpdate) (int64, error) {
			require.NotNil(t, upd.Blocked)
			assert.True(t, *upd.Blocked)
			assert.Equal(t, "bob@example.com", email)
			return 1, nil
		},
	}
	google := &mockGoogleRepo{
		UpdateFieldsFunc: func(_ context.Context, _ string, _ repository.GoogleUpdate) (int64, error) {
			googleTouched = true
			return 0, nil
		},
	}
	svc := NewModerationService(users, google, zap.NewNop())

	result, err := svc.SetBlocked(context.Background(), "bob@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, BlockUpdated, result)
	assert.False(t, googleTouched)
}

func TestSetBlocked_FallsBackToGoogle(t *testing.T) {
	google := &mockGoogleRepo{
		UpdateFieldsFunc: func(_ context.Context, _ string, upd repository.GoogleUpdate) (int64, error) {
			require.NotNil(t, upd.Blocked)
			assert.False(t, *upd.Blocked)
			return 1, nil
		},
	}
	svc := NewModerationService(&mockUserRepo{}, google, zap.NewNop())

	result, err := svc.SetBlocked(context.Background(), "fed@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, BlockUpdated, result)
}

func TestSetBlocked_NotFoundMutatesNothing(t *testing.T) {
	svc := NewModerationService(&mockUserRepo{}, &mockGoogleRepo{}, zap.NewNop())

	result, err := svc.SetBlocked(context.Background(), "nobody@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, BlockNotFound, result)
}

func TestListAccounts(t *testing.T) {
	users := &mockUserRepo{
		ListAllFunc: func(_ context.Context) ([]models.AccountSummary, error) {
			return []models.AccountSummary{{Email: "a@example.com", Kind: "user"}}, nil
		},
	}
	google := &mockGoogleRepo{
		ListAllFunc: func(_ context.Context) ([]models.AccountSummary, error) {
			return []models.AccountSummary{{Email: "b@example.com", Blocked: true, Kind: "google"}}, nil
		},
	}
	svc := NewModerationService(users, google, zap.NewNop())

	list, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "user", list[0].Kind)
	assert.Equal(t, "google", list[1].Kind)
}

func TestMetrics_Snapshot(t *testing.T) {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	// One user registered and logged in just now, one blocked google
	// account, one google account registered now.
	users := &mockUserRepo{
		AggregateTimestampsFunc: func(_ context.Context) ([]models.AccountTimes, error) {
			return []models.AccountTimes{
				{RegisteredAt: now.Add(-time.Minute), LastLogin: now.Add(-time.Minute)},
			}, nil
		},
	}
	google := &mockGoogleRepo{
		AggregateTimestampsFunc: func(_ context.Context) ([]models.AccountTimes, error) {
			return []models.AccountTimes{
				{RegisteredAt: now.Add(-48 * time.Hour), LastLogin: now.Add(-24 * time.Hour), Blocked: true},
				{RegisteredAt: now.Add(-time.Minute), LastLogin: now.Add(-time.Minute)},
			}, nil
		},
	}
	svc := NewModerationService(users, google, zap.NewNop())

	snap, err := svc.Metrics(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.TotalAccounts)
	assert.Equal(t, 1, snap.BlockedAccounts)
	assert.Equal(t, 2, snap.NonBlockedAccounts)
	assert.Equal(t, 1, snap.UsersRegisteredLast24h)
	assert.Equal(t, 1, snap.UsersLoggedInLastHour)
	assert.Equal(t, 1, snap.GoogleRegisteredLast24h)
	assert.Equal(t, 1, snap.GoogleLoggedInLastHour)
}

func TestMetrics_WindowBoundariesAreExclusive(t *testing.T) {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	users := &mockUserRepo{
		AggregateTimestampsFunc: func(_ context.Context) ([]models.AccountTimes, error) {
			return []models.AccountTimes{
				// Exactly on both window boundaries: excluded.
				{RegisteredAt: now.Add(-24 * time.Hour), LastLogin: now.Add(-time.Hour)},
				// Never logged in.
				{RegisteredAt: now.Add(-time.Minute)},
			}, nil
		},
	}
	svc := NewModerationService(users, &mockGoogleRepo{}, zap.NewNop())

	snap, err := svc.Metrics(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.TotalAccounts)
	assert.Equal(t, 1, snap.UsersRegisteredLast24h)
	assert.Equal(t, 0, snap.UsersLoggedInLastHour)
}
