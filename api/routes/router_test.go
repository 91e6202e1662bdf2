package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxterbids/bidboard/internal/bids"
	"github.com/baxterbids/bidboard/internal/dashboard"
	"github.com/baxterbids/bidboard/internal/export"
	"github.com/baxterbids/bidboard/internal/quotes"
	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/internal/vendors"
	"github.com/baxterbids/bidboard/pkg/config"
	"github.com/baxterbids/bidboard/pkg/enums"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubBids struct{ dismissed string }

func (s *stubBids) List(_ context.Context, source string) (*bids.ListResult, error) {
	return &bids.ListResult{Items: []bids.BidDTO{{ID: "MBTA-2024-001"}}, Source: source}, nil
}
func (s *stubBids) Sources(context.Context) ([]bids.SourceDTO, error) { return nil, nil }
func (s *stubBids) UpdateStatus(context.Context, bids.UpdateStatusInput) error {
	return nil
}
func (s *stubBids) Dismiss(_ context.Context, in bids.DismissInput) error {
	s.dismissed = in.BidID
	return nil
}

type stubQuotes struct{}

func (stubQuotes) ListQuotes(context.Context, string) ([]quotes.QuoteDTO, error) { return nil, nil }
func (stubQuotes) Compare(_ context.Context, bidID string) (*quotes.Comparison, error) {
	if bidID == "missing" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
	}
	return &quotes.Comparison{BidID: bidID}, nil
}
func (stubQuotes) UpdateStatus(_ context.Context, in quotes.UpdateStatusInput) (*quotes.QuoteDTO, error) {
	return &quotes.QuoteDTO{ID: in.QuoteID}, nil
}

type stubExport struct{}

func (stubExport) Export(_ context.Context, bidID, format string) (*export.File, error) {
	return &export.File{Name: bidID + "-quote-comparison.csv", ContentType: "text/csv", Body: []byte("x\n")}, nil
}

type stubRFQs struct{}

func (stubRFQs) List(context.Context, rfqs.ListParams) (*rfqs.ListResult, error) {
	return &rfqs.ListResult{}, nil
}
func (stubRFQs) Summary(context.Context) (map[string]rfqs.BidSummary, error)    { return nil, nil }
func (stubRFQs) Overdue(context.Context) ([]rfqs.RFQDTO, error)                 { return nil, nil }
func (stubRFQs) CountByStatus(context.Context) (map[enums.RFQStatus]int, error) { return nil, nil }
func (stubRFQs) Draft(context.Context, rfqs.DraftInput) (*rfqs.Draft, error) {
	return &rfqs.Draft{Subject: "Request for Quote"}, nil
}

type stubVendors struct{}

func (stubVendors) Search(context.Context, string) ([]vendors.Result, error) { return nil, nil }

type stubDashboard struct{}

func (stubDashboard) Stats(context.Context) (*dashboard.Stats, error) {
	return &dashboard.Stats{TotalBids: 4}, nil
}

func newTestRouter(t *testing.T, bidSvc *stubBids, dbErr error) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Metrics.Path = "/metrics"
	reg := prometheus.NewRegistry()
	return NewRouter(
		cfg,
		logger.Nop(),
		stubPinger{err: dbErr},
		nil,
		metrics.NewHTTPMetrics(reg),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		bidSvc,
		stubQuotes{},
		stubExport{},
		stubRFQs{},
		stubVendors{},
		stubDashboard{},
	)
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRespond(t *testing.T) {
	h := newTestRouter(t, &stubBids{}, nil)
	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/api/v1/bids?source=caci", "", http.StatusOK},
		{http.MethodGet, "/api/v1/sources", "", http.StatusOK},
		{http.MethodPatch, "/api/v1/bids/MBTA-2024-001/status", `{"status":"Interested"}`, http.StatusOK},
		{http.MethodPatch, "/api/v1/bids/MBTA-2024-001/status", `{"status":"Maybe"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/bids/dismiss", `{"bid_id":"MBTA-2024-001"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/bids/BID-1/quotes", "", http.StatusOK},
		{http.MethodGet, "/api/v1/bids/BID-1/quotes/comparison", "", http.StatusOK},
		{http.MethodGet, "/api/v1/bids/missing/quotes/comparison", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/bids/BID-1/quotes/comparison/export?format=csv", "", http.StatusOK},
		{http.MethodPatch, "/api/v1/quotes/" + uuid.NewString() + "/status", `{"status":"accepted"}`, http.StatusOK},
		{http.MethodPatch, "/api/v1/quotes/not-a-uuid/status", `{"status":"accepted"}`, http.StatusBadRequest},
		{http.MethodGet, "/api/v1/rfqs?limit=10", "", http.StatusOK},
		{http.MethodGet, "/api/v1/rfqs?limit=0", "", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/rfqs/summary", "", http.StatusOK},
		{http.MethodGet, "/api/v1/rfqs/overdue", "", http.StatusOK},
		{http.MethodPost, "/api/v1/rfqs/draft", `{"bid_id":"BID-1","vendor_name":"Rotary","items":[{"part_number":"P1","qty":"2"}]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/rfqs/draft", `{"bid_id":"BID-1","vendor_name":"Rotary","items":[]}`, http.StatusBadRequest},
		{http.MethodGet, "/api/v1/vendors/search?q=ro", "", http.StatusOK},
		{http.MethodGet, "/api/v1/stats", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tc := range cases {
		rec := serve(h, tc.method, tc.path, tc.body)
		assert.Equal(t, tc.want, rec.Code, "%s %s: %s", tc.method, tc.path, rec.Body.String())
	}
}

func TestBidListEnvelope(t *testing.T) {
	h := newTestRouter(t, &stubBids{}, nil)
	rec := serve(h, http.MethodGet, "/api/v1/bids?source=caci", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data   []map[string]any `json:"data"`
		Count  int              `json:"count"`
		Source string           `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "caci", body.Source)
}

func TestDismissPassesBidID(t *testing.T) {
	svc := &stubBids{}
	h := newTestRouter(t, svc, nil)
	rec := serve(h, http.MethodPost, "/api/v1/bids/dismiss", `{"bid_id":"MBTA-2024-009"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MBTA-2024-009", svc.dismissed)
}

func TestExportSetsAttachment(t *testing.T) {
	h := newTestRouter(t, &stubBids{}, nil)
	rec := serve(h, http.MethodGet, "/api/v1/bids/BID-1/quotes/comparison/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="BID-1-quote-comparison.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
}

func TestReadyFailsWhenDatabaseDown(t *testing.T) {
	h := newTestRouter(t, &stubBids{}, context.DeadlineExceeded)
	rec := serve(h, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unreachable")
}

func TestMetricsEndpointExposesRequestCounts(t *testing.T) {
	h := newTestRouter(t, &stubBids{}, nil)
	serve(h, http.MethodGet, "/api/v1/stats", "")
	rec := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bidboard_http_requests_total{method="GET",route="/api/v1/stats",status="200"} 1`)
}
