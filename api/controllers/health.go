package controllers

import (
	"context"
	"net/http"

	"github.com/slicehaus/slicehaus-backend/api/responses"
	"github.com/slicehaus/slicehaus-backend/pkg/config"
	pkgerrors "github.com/slicehaus/slicehaus-backend/pkg/errors"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/observe"
)

// Pinger is anything the readiness probe should verify.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SliceHaus-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores are reachable. Nil pingers
// are skipped so local setups without redis still report ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SliceHaus-Env", cfg.App.Env)

		for name, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

// HealthMetrics exposes the recorded operation timings for debugging.
// Hidden in production; the ring buffer is an operator tool, not a
// public surface.
func HealthMetrics(cfg *config.Config, monitor *observe.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.App.IsProd() {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "not found"))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"metrics":         monitor.Snapshot(),
			"slow_operations": monitor.SlowOperations(),
		})
	}
}
