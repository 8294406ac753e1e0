package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-class-triggers/internal/application/dispatch"
	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/infrastructure/firestore"
	"github.com/go-class-triggers/internal/pkg/metrics"
)

// NotificationHandler receives document-created events for the notifications
// collection.
type NotificationHandler struct {
	svc    dispatch.Service
	schema domain.Schema
	rec    recorder
}

func NewNotificationHandler(svc dispatch.Service, schema domain.Schema, log *slog.Logger, m *metrics.Metrics) *NotificationHandler {
	return &NotificationHandler{
		svc:    svc,
		schema: schema,
		rec: recorder{
			name: "dispatch",
			msgs: messages{
				succeeded: "notification sent",
				skipped:   "notification skipped",
				expected:  "notification send failed",
				failed:    "notification send failed",
			},
			log:     log,
			metrics: m,
		},
	}
}

func (h *NotificationHandler) Created(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ev, err := readEvent(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "not a cloudevent: "+err.Error())
		return
	}
	defer ack(w)

	if ev.Type() != firestore.EventCreated {
		h.rec.reject(ctx, ev, "unexpected event type", nil)
		return
	}
	data, err := firestore.DecodeEventData(ev.DataContentType(), ev.Data())
	if err != nil {
		h.rec.reject(ctx, ev, "undecodable document", err)
		return
	}
	path, err := documentPath(ev, data.GetValue())
	if err != nil {
		h.rec.reject(ctx, ev, "no document path", err)
		return
	}
	if path.Collection != h.schema.NotificationsCollection {
		h.rec.reject(ctx, ev, "collection "+path.Collection+" is not "+h.schema.NotificationsCollection, nil)
		return
	}

	rec := firestore.NotificationFrom(data.GetValue(), h.schema)
	out := h.svc.Dispatch(ctx, path.ID, rec)
	h.rec.record(ctx, ev, out, slog.String("notification_id", path.ID))
}
