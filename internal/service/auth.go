package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/auth"
	"github.com/tallerify/auth-server/internal/credentials"
	"github.com/tallerify/auth-server/internal/repository"
)

// Kind identifies which account table an operation targets.
type Kind string

const (
	KindUser   Kind = "user"
	KindGoogle Kind = "google"
	KindAdmin  Kind = "admin"
)

// LoginResult enumerates the terminal outcomes of a login attempt.
// NotFound and WrongPassword are reported identically at the HTTP
// boundary; Blocked is a distinct outcome reached only after the
// credentials verified.
type LoginResult int

const (
	LoginNotFound LoginResult = iota
	LoginWrongPassword
	LoginBlocked
	LoginSuccess
)

// LogoutResult enumerates the outcomes of a logout.
type LogoutResult int

const (
	LogoutSuccess LogoutResult = iota
	LogoutNotFound
)

// AuthService validates credentials, enforces the blocked-account policy
// and maintains session metadata.
type AuthService struct {
	users  UserRepository
	google GoogleRepository
	admins AdminRepository

	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewAuthService constructs an AuthService over the three account
// repositories. secret signs session tokens valid for tokenTTL.
func NewAuthService(users UserRepository, google GoogleRepository, admins AdminRepository, secret []byte, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		google:   google,
		admins:   admins,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
		log:      log,
	}
}

// Login verifies the credentials of the account of the given kind. On
// success for user and google kinds the last-login timestamp and, when
// provided, the push token are committed before the outcome is returned.
// Admin logins leave no session metadata.
func (s *AuthService) Login(ctx context.Context, kind Kind, email, password, pushToken string) (LoginResult, string, error) {
	switch kind {
	case KindUser:
		return s.loginUser(ctx, email, password, pushToken)
	case KindGoogle:
		return s.loginGoogle(ctx, email, password, pushToken)
	case KindAdmin:
		return s.loginAdmin(ctx, email, password)
	default:
		return LoginNotFound, "", fmt.Errorf("unknown account kind %q", kind)
	}
}

func (s *AuthService) loginUser(ctx context.Context, email, password, pushToken string) (LoginResult, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginNotFound, "", nil
	}
	if err != nil {
		return LoginNotFound, "", fmt.Errorf("login lookup: %w", err)
	}

	if !credentials.Verify(password, u.HashedPassword) {
		return LoginWrongPassword, "", nil
	}
	if u.Blocked {
		return LoginBlocked, "", nil
	}

	if err := s.touchUser(ctx, email, pushToken); err != nil {
		return LoginNotFound, "", err
	}

	token, err := auth.GenerateToken(email, string(KindUser), s.secret, s.tokenTTL)
	if err != nil {
		return LoginNotFound, "", fmt.Errorf("sign session token: %w", err)
	}
	return LoginSuccess, token, nil
}

func (s *AuthService) loginGoogle(ctx context.Context, email, secret, pushToken string) (LoginResult, string, error) {
	g, err := s.google.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginNotFound, "", nil
	}
	if err != nil {
		return LoginNotFound, "", fmt.Errorf("login lookup: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(g.Secret)) != 1 {
		return LoginWrongPassword, "", nil
	}
	if g.Blocked {
		return LoginBlocked, "", nil
	}

	if err := s.touchGoogle(ctx, email, pushToken); err != nil {
		return LoginNotFound, "", err
	}

	token, err := auth.GenerateToken(email, string(KindGoogle), s.secret, s.tokenTTL)
	if err != nil {
		return LoginNotFound, "", fmt.Errorf("sign session token: %w", err)
	}
	return LoginSuccess, token, nil
}

func (s *AuthService) loginAdmin(ctx context.Context, email, password string) (LoginResult, string, error) {
	a, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginNotFound, "", nil
	}
	if err != nil {
		return LoginNotFound, "", fmt.Errorf("login lookup: %w", err)
	}

	if !credentials.Verify(password, a.HashedPassword) {
		return LoginWrongPassword, "", nil
	}

	token, err := auth.GenerateToken(email, string(KindAdmin), s.secret, s.tokenTTL)
	if err != nil {
		return LoginNotFound, "", fmt.Errorf("sign session token: %w", err)
	}
	return LoginSuccess, token, nil
}

// touchUser commits the session metadata for a successful user login.
func (s *AuthService) touchUser(ctx context.Context, email, pushToken string) error {
	now := s.now()
	upd := repository.UserUpdate{LastLogin: &now}
	if pushToken != "" {
		upd.PushToken = &pushToken
	}
	if _, err := s.users.UpdateFields(ctx, email, upd); err != nil {
		return fmt.Errorf("update session metadata: %w", err)
	}
	return nil
}

func (s *AuthService) touchGoogle(ctx context.Context, email, pushToken string) error {
	now := s.now()
	upd := repository.GoogleUpdate{LastLogin: &now}
	if pushToken != "" {
		upd.PushToken = &pushToken
	}
	if _, err := s.google.UpdateFields(ctx, email, upd); err != nil {
		return fmt.Errorf("update session metadata: %w", err)
	}
	return nil
}

// Logout clears the push token of the account with the given email,
// searching users first and google accounts second.
func (s *AuthService) Logout(ctx context.Context, email string) (LogoutResult, error) {
	empty := ""

	n, err := s.users.UpdateFields(ctx, email, repository.UserUpdate{PushToken: &empty})
	if err != nil {
		return LogoutNotFound, fmt.Errorf("logout user: %w", err)
	}
	if n > 0 {
		return LogoutSuccess, nil
	}

	n, err = s.google.UpdateFields(ctx, email, repository.GoogleUpdate{PushToken: &empty})
	if err != nil {
		return LogoutNotFound, fmt.Errorf("logout google account: %w", err)
	}
	if n > 0 {
		return LogoutSuccess, nil
	}

	return LogoutNotFound, nil
}
