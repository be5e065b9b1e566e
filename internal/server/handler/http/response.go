// Package http provides the JSON boundary of the accounts service:
// request decoding and validation, the response envelope, and routing.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/tallerify/auth-server/internal/models"
)

// Entry pairs a canonical response message with its status and HTTP code.
type Entry struct {
	Status  string
	Message string
	Code    int
}

// Canonical message catalogue. Every handler outcome maps onto exactly
// one entry; unclassified failures get their own status code so clients
// can tell them apart from ordinary errors.
var (
	HelloUsers             = Entry{"ok", "hello_users", http.StatusOK}
	Pong                   = Entry{"ok", "pong", http.StatusOK}
	SuccessfulLogin        = Entry{"ok", "successful_login", http.StatusOK}
	FailedLogin            = Entry{"error", "failed_login", http.StatusUnauthorized}
	UserIsBlocked          = Entry{"error", "user_is_blocked", http.StatusForbidden}
	SuccessfulRegistration = Entry{"ok", "successful_registration", http.StatusOK}
	ExistingUser           = Entry{"error", "existing_user", http.StatusConflict}
	NullValue              = Entry{"error", "null_value", http.StatusBadRequest}
	WrongSizeInput         = Entry{"error", "wrong_size_input", http.StatusBadRequest}
	HasGoogleAccount       = Entry{"error", "has_google_account", http.StatusConflict}
	HasNormalAccount       = Entry{"error", "has_normal_account", http.StatusConflict}
	GoogleExistingAccount  = Entry{"ok", "google_existing_account", http.StatusOK}
	NotAdmin               = Entry{"error", "not_admin", http.StatusForbidden}
	UserUpdated            = Entry{"ok", "user_updated", http.StatusOK}
	UserDoesNotExist       = Entry{"error", "user_does_not_exist", http.StatusNotFound}
	GotUsers               = Entry{"ok", "got_users", http.StatusOK}
	GotMetrics             = Entry{"ok", "got_metrics", http.StatusOK}
	MessageSent            = Entry{"ok", "message_sent", http.StatusOK}
	UnexpectedError        = Entry{"error", "unexpected_error", http.StatusInternalServerError}
)

// Envelope is the response body. Extras beyond status and message are
// populated per outcome and omitted otherwise.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	Token  string `json:"token,omitempty"`
	Secret string `json:"secret,omitempty"`
	IsNew  *bool  `json:"is_new,omitempty"`

	// Field and Limit describe a wrong_size_input violation.
	Field string `json:"field,omitempty"`
	Limit int    `json:"limit,omitempty"`

	Accounts []models.AccountSummary `json:"accounts,omitempty"`
	Metrics  *models.MetricsSnapshot `json:"metrics,omitempty"`
}

// writeEntry writes the entry with no extra payload.
func writeEntry(w http.ResponseWriter, e Entry) {
	writeEnvelope(w, e, Envelope{})
}

// writeEnvelope writes the entry's status and message merged with the
// extra payload fields of env.
func writeEnvelope(w http.ResponseWriter, e Entry, env Envelope) {
	env.Status = e.Status
	env.Message = e.Message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	_ = json.NewEncoder(w).Encode(env)
}

// writeSizeError reports the violated field and its limit.
func writeSizeError(w http.ResponseWriter, field string, limit int) {
	writeEnvelope(w, WrongSizeInput, Envelope{Field: field, Limit: limit})
}
