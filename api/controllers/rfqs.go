package controllers

import (
	"net/http"

	"github.com/baxterbids/bidboard/api/responses"
	"github.com/baxterbids/bidboard/api/validators"
	"github.com/baxterbids/bidboard/internal/rfqs"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/pagination"
)

const maxBidIDParam = 128

// RFQList pages RFQs newest first, optionally for one bid (?bid_id=).
func RFQList(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), rfqs.ListParams{
			BidID:  validators.SanitizeString(r.URL.Query().Get("bid_id"), maxBidIDParam),
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RFQSummary returns sent/received/overdue counts keyed by bid id.
func RFQSummary(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}
		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func RFQOverdue(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}
		items, err := svc.Overdue(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, items, len(items), "")
	}
}

// RFQDraft builds the email text asking a vendor to quote a bid's items.
func RFQDraft(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}
		var req rfqs.DraftInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.Draft(logg.WithBidID(r.Context(), req.BidID), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}
