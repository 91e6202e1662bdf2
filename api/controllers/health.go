package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/baxterbids/bidboard/api/responses"
	"github.com/baxterbids/bidboard/pkg/config"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
)

const (
	envHeader    = "X-Bidboard-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, Redis. A nil Redis
// pinger means Redis is disabled and is reported as skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{"database": "ok", "redis": "skipped"}
		failed := false
		if dbP == nil {
			checks["database"] = "missing"
			failed = true
		} else if err := dbP.Ping(ctx); err != nil {
			checks["database"] = "unreachable"
			failed = true
		}
		if redisP != nil {
			checks["redis"] = "ok"
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "unreachable"
				failed = true
			}
		}

		if failed {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
