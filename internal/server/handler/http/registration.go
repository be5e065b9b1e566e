package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/repository"
	"github.com/tallerify/auth-server/internal/service"
)

// RegistrationService defines the account-creation operations required
// by the HTTP handlers.
type RegistrationService interface {
	Register(ctx context.Context, email, password, pushToken string) (service.RegistrationResult, *models.User, error)
	RegisterGoogle(ctx context.Context, email, pushToken string) (service.GoogleRegistrationResult, *models.GoogleAccount, error)
	RegisterAdmin(ctx context.Context, email, password, name string) (service.RegistrationResult, *models.Admin, error)
}

// RegistrationHandler handles user, google, and admin registration.
type RegistrationHandler struct {
	// RegistrationService performs the underlying account creation.
	RegistrationService RegistrationService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	PushToken string `json:"push_token"`
}

// OAuthLoginRequest represents the JSON payload for the federated
// sign-in shortcut.
type OAuthLoginRequest struct {
	Email     string `json:"email"`
	PushToken string `json:"push_token"`
}

// AdminRegisterRequest represents the JSON payload for admin
// registration.
type AdminRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles local user registration. The response carries the
// generated device key used later by the federated token exchange.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeEntry(w, NullValue)
		return
	}
	if len(req.Email) > models.MaxEmailLength {
		writeSizeError(w, "email", models.MaxEmailLength)
		return
	}

	result, user, err := h.RegistrationService.Register(r.Context(), req.Email, req.Password, req.PushToken)
	switch result {
	case service.RegistrationOK:
		writeEnvelope(w, SuccessfulRegistration, Envelope{Secret: user.DeviceKey})
	case service.RegistrationEmailTakenByGoogle:
		writeEntry(w, HasGoogleAccount)
	case service.RegistrationDuplicate:
		writeEntry(w, ExistingUser)
	case service.RegistrationMissingField:
		writeEntry(w, NullValue)
	case service.RegistrationFieldTooLong:
		writeFieldTooLong(w, err)
	default:
		writeEntry(w, UnexpectedError)
	}
}

// OAuthLogin handles the federated sign-in shortcut: first call creates
// the account, later calls refresh it. Both return the stable account
// secret for the token exchange.
func (h *RegistrationHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req OAuthLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEntry(w, NullValue)
		return
	}
	if len(req.Email) > models.MaxEmailLength {
		writeSizeError(w, "email", models.MaxEmailLength)
		return
	}

	result, acct, err := h.RegistrationService.RegisterGoogle(r.Context(), req.Email, req.PushToken)
	switch result {
	case service.GoogleCreated:
		isNew := true
		writeEnvelope(w, SuccessfulRegistration, Envelope{Secret: acct.Secret, IsNew: &isNew})
	case service.GoogleExisting:
		isNew := false
		writeEnvelope(w, GoogleExistingAccount, Envelope{Secret: acct.Secret, IsNew: &isNew})
	case service.GoogleHasLocalAccount:
		writeEntry(w, HasNormalAccount)
	default:
		writeFieldTooLong(w, err)
	}
}

// RegisterAdmin handles administrator registration.
func (h *RegistrationHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		writeEntry(w, NullValue)
		return
	}
	if len(req.Email) > models.MaxEmailLength {
		writeSizeError(w, "email", models.MaxEmailLength)
		return
	}
	if len(req.Name) > models.MaxNameLength {
		writeSizeError(w, "name", models.MaxNameLength)
		return
	}

	result, _, err := h.RegistrationService.RegisterAdmin(r.Context(), req.Email, req.Password, req.Name)
	switch result {
	case service.RegistrationOK:
		writeEntry(w, SuccessfulRegistration)
	case service.RegistrationDuplicate:
		writeEntry(w, ExistingUser)
	case service.RegistrationMissingField:
		writeEntry(w, NullValue)
	case service.RegistrationFieldTooLong:
		writeFieldTooLong(w, err)
	default:
		writeEntry(w, UnexpectedError)
	}
}

// writeFieldTooLong reports a sizing violation with its field and limit
// when err carries them, and unexpected_error otherwise.
func writeFieldTooLong(w http.ResponseWriter, err error) {
	var tooLong *repository.FieldTooLongError
	if errors.As(err, &tooLong) {
		writeSizeError(w, tooLong.Field, tooLong.Limit)
		return
	}
	writeEntry(w, UnexpectedError)
}
