package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/service"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	// Login verifies credentials for the given account kind and, on
	// success, returns a session token.
	Login(ctx context.Context, kind service.Kind, email, password, pushToken string) (service.LoginResult, string, error)
	// Logout clears the push token of the account with the given email.
	Logout(ctx context.Context, email string) (service.LogoutResult, error)
}

// AuthHandler handles login and logout requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for user and admin login.
type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	PushToken string `json:"push_token"`
}

// LogoutRequest represents the JSON payload for logout.
type LogoutRequest struct {
	Email string `json:"email"`
}

// Login handles user login. NotFound and WrongPassword are reported
// identically as failed_login; blocked accounts get their own outcome.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, service.KindUser)
}

// LoginAdmin handles admin login. Admin sessions leave no metadata.
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, service.KindAdmin)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, kind service.Kind) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeEntry(w, NullValue)
		return
	}
	if len(req.Email) > models.MaxEmailLength {
		writeSizeError(w, "email", models.MaxEmailLength)
		return
	}

	result, token, err := h.AuthService.Login(r.Context(), kind, req.Email, req.Password, req.PushToken)
	if err != nil {
		writeEntry(w, UnexpectedError)
		return
	}

	switch result {
	case service.LoginSuccess:
		writeEnvelope(w, SuccessfulLogin, Envelope{Token: token})
	case service.LoginBlocked:
		writeEntry(w, UserIsBlocked)
	default:
		// NotFound and WrongPassword are indistinguishable on purpose.
		writeEntry(w, FailedLogin)
	}
}

// Logout clears the caller's device registration.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEntry(w, NullValue)
		return
	}

	result, err := h.AuthService.Logout(r.Context(), req.Email)
	if err != nil {
		writeEntry(w, UnexpectedError)
		return
	}
	if result == service.LogoutNotFound {
		writeEntry(w, UserDoesNotExist)
		return
	}
	writeEntry(w, UserUpdated)
}
