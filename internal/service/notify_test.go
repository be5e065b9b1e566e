package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/models"
)

type fakeGateway struct {
	sentToken string
	sentTitle string
	sentBody  string
	err       error
}

func (f *fakeGateway) Send(_ context.Context, token, title, body string) error {
	f.sentToken = token
	f.sentTitle = title
	f.sentBody = body
	return f.err
}

func TestNotify_DeliversToUserToken(t *testing.T) {
	users := &mockUserRepo{
		FindByEmailFunc: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, PushToken: "device-token"}, nil
		},
	}
	gw := &fakeGateway{}
	svc := NewNotificationService(users, &mockGoogleRepo{}, gw, zap.NewNop())

	result, err := svc.Notify(context.Background(), "alice@example.com", "bob@example.com", "hi there")
	require.NoError(t, err)
	assert.Equal(t, NotifySent, result)
	assert.Equal(t, "device-token", gw.sentToken)
	assert.Equal(t, "alice@example.com", gw.sentTitle)
	assert.Equal(t, "hi there", gw.sentBody)
}

func TestNotify_ReceiverNotFound(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewNotificationService(&mockUserRepo{}, &mockGoogleRepo{}, gw, zap.NewNop())

	result, err := svc.Notify(context.Background(), "alice@example.com", "nobody@example.com", "hi")
	require.NoError(t, err)
	assert.Equal(t, NotifyNotFound, result)
	assert.Empty(t, gw.sentToken)
}

func TestNotify_NoRegisteredDevice(t *testing.T) {
	users := &mockUserRepo{
		FindByEmailFunc: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{Email: email}, nil
		},
	}
	svc := NewNotificationService(users, &mockGoogleRepo{}, &fakeGateway{}, zap.NewNop())

	result, err := svc.Notify(context.Background(), "alice@example.com", "bob@example.com", "hi")
	require.NoError(t, err)
	assert.Equal(t, NotifyNotFound, result)
}

func TestNotify_GatewayFailure(t *testing.T) {
	users := &mockUserRepo{
		FindByEmailFunc: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, PushToken: "device-token"}, nil
		},
	}
	gw := &fakeGateway{err: errors.New("push gateway returned status 503")}
	svc := NewNotificationService(users, &mockGoogleRepo{}, gw, zap.NewNop())

	result, err := svc.Notify(context.Background(), "alice@example.com", "bob@example.com", "hi")
	assert.Equal(t, NotifyFailed, result)
	assert.Error(t, err)
}
