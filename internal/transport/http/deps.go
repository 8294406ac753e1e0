package http

import (
	"log/slog"
	"time"

	"github.com/go-class-triggers/internal/application/dispatch"
	"github.com/go-class-triggers/internal/application/reaper"
	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/pkg/metrics"
)

// Deps holds everything the router needs.
type Deps struct {
	Dispatcher dispatch.Service
	Reaper     reaper.Service
	Schema     domain.Schema
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Started    time.Time
}
