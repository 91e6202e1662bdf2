package controllers

import (
	"net/http"

	"github.com/baxterbids/bidboard/api/responses"
	"github.com/baxterbids/bidboard/internal/dashboard"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
)

// DashboardStats returns the headline counters for the dashboard.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
