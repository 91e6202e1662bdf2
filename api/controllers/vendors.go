package controllers

import (
	"net/http"

	"github.com/baxterbids/bidboard/api/responses"
	"github.com/baxterbids/bidboard/api/validators"
	"github.com/baxterbids/bidboard/internal/vendors"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
)

const maxSearchParam = 100

func VendorSearch(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}
		results, err := svc.Search(r.Context(), validators.SanitizeString(r.URL.Query().Get("q"), maxSearchParam))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, results, len(results), "")
	}
}
