package sns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/go-class-triggers/internal/domain"
)

// publisher is the slice of *sns.Client the TopicSender uses.
type publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// TopicSender publishes push messages to SNS topics whose names match the
// push topic ("clase_abc123" -> "<arn prefix>clase_abc123"). Mobile
// subscribers receive the platform-specific payload.
type TopicSender struct {
	client    publisher
	arnPrefix string
}

// NewTopicSender builds a sender on top of an AWS config. endpoint may be nil.
func NewTopicSender(awsCfg aws.Config, endpoint *string, arnPrefix string) *TopicSender {
	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
	return &TopicSender{client: client, arnPrefix: arnPrefix}
}

func (s *TopicSender) Send(ctx context.Context, msg domain.PushMessage) (string, error) {
	payload, err := buildPayload(msg)
	if err != nil {
		return "", fmt.Errorf("sns payload: %w: %w", domain.ErrRejected, err)
	}
	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn:         aws.String(s.arnPrefix + msg.Topic),
		Message:          aws.String(payload),
		MessageStructure: aws.String("json"),
		Subject:          aws.String(msg.Title),
	})
	if err != nil {
		return "", fmt.Errorf("sns publish to %s: %w", msg.Topic, classify(err))
	}
	return aws.ToString(out.MessageId), nil
}

type fcmBody struct {
	Notification map[string]string `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type apnsAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// buildPayload renders the MessageStructure=json document: a plain default
// plus per-platform bodies, each itself a JSON string.
func buildPayload(msg domain.PushMessage) (string, error) {
	gcm, err := json.Marshal(fcmBody{
		Notification: map[string]string{"title": msg.Title, "body": msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return "", err
	}

	apnsDoc := map[string]any{"aps": map[string]any{"alert": apnsAlert{Title: msg.Title, Body: msg.Body}}}
	for k, v := range msg.Data {
		if k != "aps" {
			apnsDoc[k] = v
		}
	}
	apns, err := json.Marshal(apnsDoc)
	if err != nil {
		return "", err
	}

	doc, err := json.Marshal(map[string]string{
		"default":      msg.Body,
		"GCM":          string(gcm),
		"APNS":         string(apns),
		"APNS_SANDBOX": string(apns),
	})
	if err != nil {
		return "", err
	}
	return string(doc), nil
}

func classify(err error) error {
	var (
		notFound     *types.NotFoundException
		invalidParam *types.InvalidParameterException
		invalidValue *types.InvalidParameterValueException
		authz        *types.AuthorizationErrorException
		throttled    *types.ThrottledException
		internal     *types.InternalErrorException
	)
	switch {
	case errors.As(err, &notFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.As(err, &invalidParam), errors.As(err, &invalidValue):
		return fmt.Errorf("%w: %w", domain.ErrRejected, err)
	case errors.As(err, &authz):
		return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	case errors.As(err, &throttled), errors.As(err, &internal):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	default:
		return err
	}
}
