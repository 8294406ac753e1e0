package dispatch

import (
	"context"
	"strings"

	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/pkg/validate"
)

// Messenger delivers a topic-addressed push message and returns the
// provider's message id.
type Messenger interface {
	Send(ctx context.Context, msg domain.PushMessage) (string, error)
}

// Service turns a created notification document into one push message.
type Service interface {
	Dispatch(ctx context.Context, notificationID string, rec domain.NotificationRecord) domain.Outcome
}

type service struct {
	messenger   Messenger
	schema      domain.Schema
	clickAction string
}

func NewService(messenger Messenger, schema domain.Schema, clickAction string) Service {
	return &service{messenger: messenger, schema: schema, clickAction: clickAction}
}

// Dispatch sends at most one message. A record missing its title, body or
// class is skipped without touching the messenger; a send failure is
// reported in the outcome and never retried.
func (s *service) Dispatch(ctx context.Context, notificationID string, rec domain.NotificationRecord) domain.Outcome {
	missing := validate.MissingFields(rec)
	if !rec.HasClass() {
		missing = append(missing, "Class")
	}
	if len(missing) > 0 {
		return domain.Skipped("missing " + strings.Join(missing, ", "))
	}

	msg := BuildMessage(s.schema, s.clickAction, notificationID, rec)
	messageID, err := s.messenger.Send(ctx, msg)
	if err != nil {
		return domain.Failed(msg.Topic, err)
	}
	return domain.Succeeded(msg.Topic, messageID)
}

// BuildMessage assembles the push message for a notification record.
func BuildMessage(schema domain.Schema, clickAction, notificationID string, rec domain.NotificationRecord) domain.PushMessage {
	return domain.PushMessage{
		Title: rec.Title,
		Body:  rec.Body,
		Topic: schema.Topic(rec.Class),
		Data: map[string]string{
			domain.ClickActionKey:    clickAction,
			schema.NotificationIDKey: notificationID,
		},
	}
}
