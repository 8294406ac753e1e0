package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-class-triggers/internal/transport/http/handler"
	appmiddleware "github.com/go-class-triggers/internal/transport/http/middleware"
)

// NewRouter builds and returns the trigger router. Eventarc delivers each
// trigger to its own path.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics(deps.Metrics))

	healthH := handler.NewHealthHandler(deps.Started)
	notifH := handler.NewNotificationHandler(deps.Dispatcher, deps.Schema, deps.Logger, deps.Metrics)
	userH := handler.NewUserHandler(deps.Reaper, deps.Schema, deps.Logger, deps.Metrics)

	r.Get("/healthz", healthH.Live)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/events", func(r chi.Router) {
		r.Post("/notifications", notifH.Created)
		r.Post("/users", userH.Deleted)
	})

	return r
}
