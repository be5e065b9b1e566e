package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/repository"
)

// PushGateway delivers one notification to a device token.
type PushGateway interface {
	Send(ctx context.Context, token, title, body string) error
}

// NotifyResult enumerates the outcomes of sending a message.
type NotifyResult int

const (
	NotifySent NotifyResult = iota
	// NotifyNotFound means the receiver has no account or no registered
	// device token.
	NotifyNotFound
	NotifyFailed
)

// NotificationService resolves a receiver's push token and forwards the
// message through the gateway.
type NotificationService struct {
	users   UserRepository
	google  GoogleRepository
	gateway PushGateway
	log     *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(users UserRepository, google GoogleRepository, gateway PushGateway, log *zap.Logger) *NotificationService {
	return &NotificationService{users: users, google: google, gateway: gateway, log: log}
}

// Notify sends body to the device of receiverEmail, titled with the
// sender's email. The receiver is looked up in users first, then google
// accounts.
func (s *NotificationService) Notify(ctx context.Context, senderEmail, receiverEmail, body string) (NotifyResult, error) {
	token, err := s.receiverToken(ctx, receiverEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return NotifyNotFound, nil
	}
	if err != nil {
		return NotifyFailed, err
	}
	if token == "" {
		return NotifyNotFound, nil
	}

	if err := s.gateway.Send(ctx, token, senderEmail, body); err != nil {
		s.log.Warn("push delivery failed",
			zap.String("receiver", receiverEmail),
			zap.Error(err),
		)
		return NotifyFailed, fmt.Errorf("send notification: %w", err)
	}
	return NotifySent, nil
}

func (s *NotificationService) receiverToken(ctx context.Context, email string) (string, error) {
	if u, err := s.users.FindByEmail(ctx, email); err == nil {
		return u.PushToken, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("lookup receiver: %w", err)
	}

	g, err := s.google.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("lookup receiver: %w", err)
	}
	return g.PushToken, nil
}
