package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"

	"github.com/go-class-triggers/internal/domain"
)

// messageSender is the slice of *messaging.Client the Messenger uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Messenger sends topic messages through Firebase Cloud Messaging.
type Messenger struct {
	client func(ctx context.Context) (messageSender, error)
}

// NewMessenger returns a Messenger that obtains its client lazily from app.
func NewMessenger(app *App) *Messenger {
	return &Messenger{client: func(ctx context.Context) (messageSender, error) {
		return app.Messaging(ctx)
	}}
}

func (m *Messenger) Send(ctx context.Context, msg domain.PushMessage) (string, error) {
	client, err := m.client(ctx)
	if err != nil {
		return "", fmt.Errorf("fcm: %w: %w", domain.ErrUnavailable, err)
	}
	id, err := client.Send(ctx, toMessage(msg))
	if err != nil {
		return "", fmt.Errorf("fcm send to %s: %w", msg.Topic, classify(err))
	}
	return id, nil
}

func toMessage(msg domain.PushMessage) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Topic: msg.Topic,
		Data:  msg.Data,
	}
}

// classify wraps a Firebase error with the matching domain sentinel.
func classify(err error) error {
	switch {
	case errorutils.IsNotFound(err):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errorutils.IsInvalidArgument(err), errorutils.IsFailedPrecondition(err), errorutils.IsOutOfRange(err):
		return fmt.Errorf("%w: %w", domain.ErrRejected, err)
	case errorutils.IsPermissionDenied(err), errorutils.IsUnauthenticated(err):
		return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	case errorutils.IsUnavailable(err), errorutils.IsInternal(err), errorutils.IsResourceExhausted(err),
		errorutils.IsDeadlineExceeded(err), errorutils.IsCancelled(err):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	default:
		return err
	}
}
