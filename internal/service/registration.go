package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/credentials"
	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/repository"
)

// RegistrationResult enumerates the outcomes of creating an account.
type RegistrationResult int

const (
	RegistrationOK RegistrationResult = iota
	RegistrationEmailTakenByGoogle
	RegistrationDuplicate
	RegistrationMissingField
	RegistrationFieldTooLong
	RegistrationFailed
)

// GoogleRegistrationResult enumerates the outcomes of the federated
// sign-in path, which doubles as first-time sign-up.
type GoogleRegistrationResult int

const (
	// GoogleCreated means a fresh federated account was provisioned.
	GoogleCreated GoogleRegistrationResult = iota
	// GoogleExisting means the account already existed and its session
	// metadata was refreshed.
	GoogleExisting
	// GoogleHasLocalAccount means the email belongs to a locally
	// registered user and no federated account may shadow it.
	GoogleHasLocalAccount
	// GoogleFailed means an unclassified failure; nothing persisted.
	GoogleFailed
)

// RegistrationService creates accounts and detects cross-kind conflicts.
type RegistrationService struct {
	users  UserRepository
	google GoogleRepository
	admins AdminRepository

	now func() time.Time
	log *zap.Logger
}

// NewRegistrationService constructs a RegistrationService over the three
// account repositories.
func NewRegistrationService(users UserRepository, google GoogleRepository, admins AdminRepository, log *zap.Logger) *RegistrationService {
	return &RegistrationService{
		users:  users,
		google: google,
		admins: admins,
		now:    time.Now,
		log:    log,
	}
}

// Register creates a local user account. The google table is checked
// first so an email with a federated account is refused before any
// write; the unique constraint on insert remains the arbiter for races.
// The returned error carries conflict detail (such as the violated field
// limit) when the result is not RegistrationOK.
func (s *RegistrationService) Register(ctx context.Context, email, password, pushToken string) (RegistrationResult, *models.User, error) {
	if _, err := s.google.FindByEmail(ctx, email); err == nil {
		return RegistrationEmailTakenByGoogle, nil, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("google pre-check failed", zap.Error(err))
		return RegistrationFailed, nil, fmt.Errorf("google pre-check: %w", err)
	}

	hash, err := credentials.Hash(password)
	if err != nil {
		return RegistrationFailed, nil, err
	}
	deviceKey, err := credentials.NewSecret(credentials.SecretLength)
	if err != nil {
		return RegistrationFailed, nil, err
	}

	u := &models.User{
		Email:          email,
		HashedPassword: hash,
		RegisteredAt:   s.now(),
		PushToken:      pushToken,
		DeviceKey:      deviceKey,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return classifyRegistration(err), nil, err
	}
	return RegistrationOK, u, nil
}

// RegisterGoogle provisions or refreshes a federated account. A local
// user account with the same email always wins: the request is refused
// with GoogleHasLocalAccount even if a federated row also exists.
func (s *RegistrationService) RegisterGoogle(ctx context.Context, email, pushToken string) (GoogleRegistrationResult, *models.GoogleAccount, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return GoogleHasLocalAccount, nil, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("user pre-check failed", zap.Error(err))
		return GoogleFailed, nil, fmt.Errorf("user pre-check: %w", err)
	}

	if g, err := s.google.FindByEmail(ctx, email); err == nil {
		return s.refreshGoogle(ctx, g, pushToken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return GoogleFailed, nil, fmt.Errorf("google lookup: %w", err)
	}

	secret, err := credentials.NewSecret(credentials.SecretLength)
	if err != nil {
		return GoogleFailed, nil, err
	}

	now := s.now()
	g := &models.GoogleAccount{
		Email:        email,
		Secret:       secret,
		RegisteredAt: now,
		LastLogin:    now,
		PushToken:    pushToken,
	}

	err = s.google.Insert(ctx, g)
	if errors.Is(err, repository.ErrDuplicateKey) {
		// Lost a provisioning race; the winner's row is the account.
		existing, ferr := s.google.FindByEmail(ctx, email)
		if ferr != nil {
			return GoogleFailed, nil, fmt.Errorf("refetch after conflict: %w", ferr)
		}
		return s.refreshGoogle(ctx, existing, pushToken)
	}
	if err != nil {
		return GoogleFailed, nil, err
	}
	return GoogleCreated, g, nil
}

// refreshGoogle updates session metadata on an existing federated
// account and reports it as not new. The stored secret is untouched.
func (s *RegistrationService) refreshGoogle(ctx context.Context, g *models.GoogleAccount, pushToken string) (GoogleRegistrationResult, *models.GoogleAccount, error) {
	now := s.now()
	upd := repository.GoogleUpdate{LastLogin: &now}
	if pushToken != "" {
		upd.PushToken = &pushToken
		g.PushToken = pushToken
	}
	if _, err := s.google.UpdateFields(ctx, g.Email, upd); err != nil {
		return GoogleFailed, nil, fmt.Errorf("refresh google account: %w", err)
	}
	g.LastLogin = now
	return GoogleExisting, g, nil
}

// RegisterAdmin creates an administrator account. No cross-table check
// applies; admins live in their own namespace.
func (s *RegistrationService) RegisterAdmin(ctx context.Context, email, password, name string) (RegistrationResult, *models.Admin, error) {
	hash, err := credentials.Hash(password)
	if err != nil {
		return RegistrationFailed, nil, err
	}

	a := &models.Admin{Email: email, HashedPassword: hash, Name: name}
	if err := s.admins.Insert(ctx, a); err != nil {
		return classifyRegistration(err), nil, err
	}
	return RegistrationOK, a, nil
}

// classifyRegistration maps a repository conflict onto the registration
// outcome taxonomy. Unclassified errors mean nothing was persisted.
func classifyRegistration(err error) RegistrationResult {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return RegistrationDuplicate
	case errors.Is(err, repository.ErrMissingField):
		return RegistrationMissingField
	case errors.Is(err, repository.ErrFieldTooLong):
		return RegistrationFieldTooLong
	default:
		return RegistrationFailed
	}
}
