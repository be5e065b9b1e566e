package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tallerify/auth-server/internal/service"
)

// NotificationService defines the push operation required by the HTTP
// handlers.
type NotificationService interface {
	Notify(ctx context.Context, senderEmail, receiverEmail, body string) (service.NotifyResult, error)
}

// NotifyHandler forwards user-to-user messages to the push gateway.
type NotifyHandler struct {
	// NotificationService performs the delivery.
	NotificationService NotificationService
}

// NotifyRequest represents the JSON payload for sending a message.
type NotifyRequest struct {
	Email             string `json:"email"`
	UserReceiverEmail string `json:"user_receiver_email"`
	MessageBody       string `json:"message_body"`
}

// Notify resolves the receiver's device token and delivers the message.
// A gateway failure surfaces as unexpected_error; there are no retries.
func (h *NotifyHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.UserReceiverEmail == "" || req.MessageBody == "" {
		writeEntry(w, NullValue)
		return
	}

	result, err := h.NotificationService.Notify(r.Context(), req.Email, req.UserReceiverEmail, req.MessageBody)
	if err != nil && result != service.NotifyNotFound {
		writeEntry(w, UnexpectedError)
		return
	}

	switch result {
	case service.NotifySent:
		writeEntry(w, MessageSent)
	case service.NotifyNotFound:
		writeEntry(w, UserDoesNotExist)
	default:
		writeEntry(w, UnexpectedError)
	}
}
