package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baxterbids/bidboard/api/responses"
	"github.com/baxterbids/bidboard/api/validators"
	"github.com/baxterbids/bidboard/internal/bids"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
)

const maxSourceParam = 100

type bidStatusRequest struct {
	Status string `json:"status" validate:"required,bid_status"`
}

// BidList returns the visible bids, optionally narrowed by ?source=.
func BidList(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}
		source := validators.SanitizeString(r.URL.Query().Get("source"), maxSourceParam)
		result, err := svc.List(r.Context(), source)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Items, len(result.Items), result.Source)
	}
}

func SourceList(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}
		sources, err := svc.Sources(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, sources, len(sources), "")
	}
}

// BidUpdateStatus sets the triage status for one bid.
func BidUpdateStatus(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}
		bidID := strings.TrimSpace(chi.URLParam(r, "bidId"))
		if bidID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "bid id required"))
			return
		}

		var req bidStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateStatus(r.Context(), bids.UpdateStatusInput{BidID: bidID, Status: req.Status}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": bidID, "status": req.Status})
	}
}

func BidDismiss(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}
		var req bids.DismissInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Dismiss(r.Context(), req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": strings.TrimSpace(req.BidID), "dismissed": true})
	}
}
