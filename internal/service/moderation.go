package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/repository"
)

// Metric windows. Both are compared with a strict less-than, so a
// timestamp exactly one window old is excluded.
const (
	registrationWindow = 24 * time.Hour
	loginWindow        = time.Hour
)

// BlockResult enumerates the outcomes of toggling the blocked flag.
type BlockResult int

const (
	BlockUpdated BlockResult = iota
	BlockNotFound
	BlockFailed
)

// ModerationService toggles blocked status and aggregates usage metrics
// over users and google accounts. Admins are excluded from both.
type ModerationService struct {
	users  UserRepository
	google GoogleRepository
	log    *zap.Logger
}

// NewModerationService constructs a ModerationService.
func NewModerationService(users UserRepository, google GoogleRepository, log *zap.Logger) *ModerationService {
	return &ModerationService{users: users, google: google, log: log}
}

// SetBlocked updates the blocked flag of the account with the given
// email, searching users first and google accounts second.
func (s *ModerationService) SetBlocked(ctx context.Context, email string, blocked bool) (BlockResult, error) {
	n, err := s.users.UpdateFields(ctx, email, repository.UserUpdate{Blocked: &blocked})
	if err != nil {
		s.log.Warn("block update failed", zap.String("email", email), zap.Error(err))
		return BlockFailed, fmt.Errorf("block user: %w", err)
	}
	if n > 0 {
		return BlockUpdated, nil
	}

	n, err = s.google.UpdateFields(ctx, email, repository.GoogleUpdate{Blocked: &blocked})
	if err != nil {
		s.log.Warn("block update failed", zap.String("email", email), zap.Error(err))
		return BlockFailed, fmt.Errorf("block google account: %w", err)
	}
	if n > 0 {
		return BlockUpdated, nil
	}

	return BlockNotFound, nil
}

// ListAccounts returns the moderation listing across users and google
// accounts.
func (s *ModerationService) ListAccounts(ctx context.Context) ([]models.AccountSummary, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	google, err := s.google.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list google accounts: %w", err)
	}
	return append(users, google...), nil
}

// Metrics computes the usage snapshot at the given instant.
func (s *ModerationService) Metrics(ctx context.Context, now time.Time) (*models.MetricsSnapshot, error) {
	users, err := s.users.AggregateTimestamps(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate users: %w", err)
	}
	google, err := s.google.AggregateTimestamps(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate google accounts: %w", err)
	}

	snap := &models.MetricsSnapshot{}
	for _, at := range users {
		countAccount(snap, at)
		if withinWindow(now, at.RegisteredAt, registrationWindow) {
			snap.UsersRegisteredLast24h++
		}
		if withinWindow(now, at.LastLogin, loginWindow) {
			snap.UsersLoggedInLastHour++
		}
	}
	for _, at := range google {
		countAccount(snap, at)
		if withinWindow(now, at.RegisteredAt, registrationWindow) {
			snap.GoogleRegisteredLast24h++
		}
		if withinWindow(now, at.LastLogin, loginWindow) {
			snap.GoogleLoggedInLastHour++
		}
	}
	return snap, nil
}

func countAccount(snap *models.MetricsSnapshot, at models.AccountTimes) {
	snap.TotalAccounts++
	if at.Blocked {
		snap.BlockedAccounts++
	} else {
		snap.NonBlockedAccounts++
	}
}

// withinWindow reports whether ts falls strictly inside the window
// ending at now. Zero timestamps (never logged in) never qualify.
func withinWindow(now, ts time.Time, window time.Duration) bool {
	if ts.IsZero() {
		return false
	}
	return now.Sub(ts) < window
}
