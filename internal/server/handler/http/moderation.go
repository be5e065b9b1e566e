package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tallerify/auth-server/internal/models"
	"github.com/tallerify/auth-server/internal/service"
)

// ModerationService defines the moderation and metrics operations
// required by the HTTP handlers.
type ModerationService interface {
	SetBlocked(ctx context.Context, email string, blocked bool) (service.BlockResult, error)
	ListAccounts(ctx context.Context) ([]models.AccountSummary, error)
	Metrics(ctx context.Context, now time.Time) (*models.MetricsSnapshot, error)
}

// ModerationHandler handles account blocking, listing, and metrics.
type ModerationHandler struct {
	// ModerationService performs the underlying operations.
	ModerationService ModerationService
}

// BlockUserRequest represents the JSON payload for toggling the blocked
// flag. The caller asserts admin rights through IsAdmin; requests
// without it are refused.
type BlockUserRequest struct {
	IsAdmin      bool   `json:"is_admin"`
	ModifiedUser string `json:"modified_user"`
	IsBlocked    bool   `json:"is_blocked"`
}

// Block toggles the blocked flag of the target account, searching users
// first and google accounts second.
func (h *ModerationHandler) Block(w http.ResponseWriter, r *http.Request) {
	var req BlockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ModifiedUser == "" {
		writeEntry(w, NullValue)
		return
	}
	if !req.IsAdmin {
		writeEntry(w, NotAdmin)
		return
	}

	result, err := h.ModerationService.SetBlocked(r.Context(), req.ModifiedUser, req.IsBlocked)
	if err != nil {
		writeEntry(w, UnexpectedError)
		return
	}

	switch result {
	case service.BlockUpdated:
		writeEntry(w, UserUpdated)
	case service.BlockNotFound:
		writeEntry(w, UserDoesNotExist)
	default:
		writeEntry(w, UnexpectedError)
	}
}

// List returns every user and google account with its blocked status.
func (h *ModerationHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ModerationService.ListAccounts(r.Context())
	if err != nil {
		writeEntry(w, UnexpectedError)
		return
	}
	writeEnvelope(w, GotUsers, Envelope{Accounts: accounts})
}

// Metrics returns the usage snapshot computed at request time.
func (h *ModerationHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	snap, err := h.ModerationService.Metrics(r.Context(), time.Now())
	if err != nil {
		writeEntry(w, UnexpectedError)
		return
	}
	writeEnvelope(w, GotMetrics, Envelope{Metrics: snap})
}
