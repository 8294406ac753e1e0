package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cloudevents/sdk-go/v2/event"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/cloudevents/sdk-go/v2/types"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"

	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/infrastructure/firestore"
	"github.com/go-class-triggers/internal/pkg/id"
	"github.com/go-class-triggers/internal/pkg/metrics"
)

// kindInvalidEvent labels deliveries acknowledged without reaching a service.
const kindInvalidEvent = "invalid_event"

// readEvent decodes a CloudEvent in binary or structured HTTP mode.
func readEvent(r *http.Request) (*event.Event, error) {
	ev, err := cehttp.NewEventFromHTTPRequest(r)
	if err != nil {
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}

// documentPath locates the triggering document: the "document" extension
// first, then the subject, then the resource name inside the payload.
func documentPath(ev *event.Event, doc *firestoredata.Document) (firestore.DocumentPath, error) {
	var candidates []string
	if raw, ok := ev.Extensions()["document"]; ok {
		if s, err := types.ToString(raw); err == nil {
			candidates = append(candidates, s)
		}
	}
	candidates = append(candidates, ev.Subject(), doc.GetName())

	errs := []error{errors.New("no document path in event")}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		p, err := firestore.ParsePath(c)
		if err == nil {
			return p, nil
		}
		errs = append(errs, err)
	}
	return firestore.DocumentPath{}, errors.Join(errs...)
}

// messages names the log line for each terminal outcome of a handler.
type messages struct {
	succeeded string
	skipped   string
	expected  string
	failed    string
}

// recorder turns outcomes into exactly one log line and one counter increment.
type recorder struct {
	name    string
	msgs    messages
	log     *slog.Logger
	metrics *metrics.Metrics
}

func (rc recorder) baseAttrs(ctx context.Context, ev *event.Event) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("handler", rc.name),
		slog.String("invocation_id", id.New()),
	}
	if ev != nil {
		attrs = append(attrs, slog.String("event_id", ev.ID()), slog.String("event_type", ev.Type()))
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	return attrs
}

// record logs a service outcome.
func (rc recorder) record(ctx context.Context, ev *event.Event, out domain.Outcome, extra ...slog.Attr) {
	attrs := append(rc.baseAttrs(ctx, ev), extra...)
	attrs = append(attrs, slog.String("outcome", string(out.Status)))
	if out.Target != "" {
		attrs = append(attrs, slog.String("target", out.Target))
	}

	level, msg := slog.LevelInfo, rc.msgs.succeeded
	switch {
	case out.Status == domain.StatusSkipped:
		level, msg = slog.LevelDebug, rc.msgs.skipped
		attrs = append(attrs, slog.String("reason", out.Reason))
	case out.Status == domain.StatusFailed && out.Expected:
		msg = rc.msgs.expected
		attrs = append(attrs, slog.String("kind", string(out.Kind)))
	case out.Status == domain.StatusFailed:
		level, msg = slog.LevelError, rc.msgs.failed
		attrs = append(attrs, slog.String("kind", string(out.Kind)), slog.Any("error", out.Err))
	default:
		if out.Detail != "" {
			attrs = append(attrs, slog.String("detail", out.Detail))
		}
	}
	rc.log.LogAttrs(ctx, level, msg, attrs...)
	rc.metrics.ObserveOutcome(rc.name, string(out.Status), kindLabel(out.Kind))
}

// reject logs a delivery that could not be handed to the service. It is still
// acknowledged: redelivering the same payload cannot succeed.
func (rc recorder) reject(ctx context.Context, ev *event.Event, reason string, err error) {
	attrs := append(rc.baseAttrs(ctx, ev), slog.String("reason", reason))
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	rc.log.LogAttrs(ctx, slog.LevelWarn, "event ignored", attrs...)
	rc.metrics.ObserveOutcome(rc.name, string(domain.StatusSkipped), kindInvalidEvent)
}

// note logs a non-fatal problem with a delivery at debug level.
func (rc recorder) note(ctx context.Context, ev *event.Event, msg string, err error) {
	attrs := append(rc.baseAttrs(ctx, ev), slog.Any("error", err))
	rc.log.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func kindLabel(k domain.FailureKind) string {
	if k == domain.KindNone {
		return "none"
	}
	return string(k)
}
