package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-class-triggers/internal/application/reaper"
	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/infrastructure/firestore"
	"github.com/go-class-triggers/internal/pkg/metrics"
)

// UserHandler receives document-deleted events for the users collection.
type UserHandler struct {
	svc    reaper.Service
	schema domain.Schema
	rec    recorder
}

func NewUserHandler(svc reaper.Service, schema domain.Schema, log *slog.Logger, m *metrics.Metrics) *UserHandler {
	return &UserHandler{
		svc:    svc,
		schema: schema,
		rec: recorder{
			name: "reap",
			msgs: messages{
				succeeded: "auth account deleted",
				skipped:   "auth account delete skipped",
				expected:  "auth account already gone",
				failed:    "auth account delete failed",
			},
			log:     log,
			metrics: m,
		},
	}
}

// Deleted acts on the document id alone. The payload is only read as a
// last-resort source of the document path, so a missing or unreadable
// payload does not stop the delete.
func (h *UserHandler) Deleted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ev, err := readEvent(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "not a cloudevent: "+err.Error())
		return
	}
	defer ack(w)

	if ev.Type() != firestore.EventDeleted {
		h.rec.reject(ctx, ev, "unexpected event type", nil)
		return
	}
	data, err := firestore.DecodeEventData(ev.DataContentType(), ev.Data())
	if err != nil {
		h.rec.note(ctx, ev, "deleted document unreadable", err)
	}
	path, err := documentPath(ev, data.GetOldValue())
	if err != nil {
		h.rec.reject(ctx, ev, "no document path", err)
		return
	}
	if path.Collection != h.schema.UsersCollection {
		h.rec.reject(ctx, ev, "collection "+path.Collection+" is not "+h.schema.UsersCollection, nil)
		return
	}

	out := h.svc.Reap(ctx, path.ID)
	h.rec.record(ctx, ev, out, slog.String("user_id", path.ID))
}
