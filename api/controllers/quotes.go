package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baxterbids/bidboard/api/responses"
	"github.com/baxterbids/bidboard/api/validators"
	"github.com/baxterbids/bidboard/internal/export"
	"github.com/baxterbids/bidboard/internal/quotes"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
)

type quoteStatusRequest struct {
	Status string  `json:"status" validate:"required,quote_status"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

func bidParam(r *http.Request) (string, error) {
	bidID := strings.TrimSpace(chi.URLParam(r, "bidId"))
	if bidID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "bid id required")
	}
	return bidID, nil
}

// QuoteList returns every quote on file for a bid, oldest first.
func QuoteList(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		bidID, err := bidParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithBidID(r.Context(), bidID)
		items, err := svc.ListQuotes(ctx, bidID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, items, len(items), "")
	}
}

// QuoteComparison recomputes the side-by-side comparison for a bid.
func QuoteComparison(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		bidID, err := bidParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithBidID(r.Context(), bidID)
		cmp, err := svc.Compare(ctx, bidID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cmp)
	}
}

// QuoteExport downloads the comparison as ?format=csv (default) or xlsx.
func QuoteExport(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}
		bidID, err := bidParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithBidID(r.Context(), bidID)
		file, err := svc.Export(ctx, bidID, r.URL.Query().Get("format"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteFile(w, file.Name, file.ContentType, file.Body)
	}
}

// QuoteUpdateStatus records a review decision on one quote.
func QuoteUpdateStatus(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}
		quoteID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "quoteId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id"))
			return
		}
		ctx := logg.WithQuoteID(r.Context(), quoteID.String())

		var req quoteStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.UpdateStatus(ctx, quotes.UpdateStatusInput{
			QuoteID: quoteID,
			Status:  req.Status,
			Notes:   req.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
