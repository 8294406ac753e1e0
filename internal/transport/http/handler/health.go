package handler

import (
	"net/http"
	"time"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	started time.Time
}

func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started}
}

type healthEnvelope struct {
	Message       string `json:"message"`
	UptimeSeconds int    `json:"uptime_seconds"`
}

func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthEnvelope{
		Message:       "ok",
		UptimeSeconds: int(time.Since(h.started).Seconds()),
	})
}
