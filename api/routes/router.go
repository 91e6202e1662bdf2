package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baxterbids/bidboard/api/controllers"
	"github.com/baxterbids/bidboard/api/middleware"
	"github.com/baxterbids/bidboard/internal/bids"
	"github.com/baxterbids/bidboard/internal/dashboard"
	"github.com/baxterbids/bidboard/internal/export"
	"github.com/baxterbids/bidboard/internal/quotes"
	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/internal/vendors"
	"github.com/baxterbids/bidboard/pkg/config"
	"github.com/baxterbids/bidboard/pkg/db"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/metrics"
	"github.com/baxterbids/bidboard/pkg/redis"
)

// NewRouter mounts every API route. redisClient may be nil when Redis is not
// configured; idempotency is then skipped and readiness reports it as such.
// metricsHandler is mounted on cfg.Metrics.Path when non-nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	bidService bids.Service,
	quoteService quotes.Service,
	exportService export.Service,
	rfqService rfqs.Service,
	vendorService vendors.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	var (
		idemStore   redis.IdempotencyStore
		redisPinger controllers.Pinger
	)
	if redisClient != nil {
		idemStore = redisClient
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/bids", func(r chi.Router) {
			r.Get("/", controllers.BidList(bidService, logg))
			r.Post("/dismiss", controllers.BidDismiss(bidService, logg))
			r.Route("/{bidId}", func(r chi.Router) {
				r.Patch("/status", controllers.BidUpdateStatus(bidService, logg))
				r.Get("/quotes", controllers.QuoteList(quoteService, logg))
				r.Get("/quotes/comparison", controllers.QuoteComparison(quoteService, logg))
				r.Get("/quotes/comparison/export", controllers.QuoteExport(exportService, logg))
			})
		})

		r.Get("/sources", controllers.SourceList(bidService, logg))

		r.With(middleware.Idempotency(idemStore, logg)).
			Patch("/quotes/{quoteId}/status", controllers.QuoteUpdateStatus(quoteService, logg))

		r.Route("/rfqs", func(r chi.Router) {
			r.Get("/", controllers.RFQList(rfqService, logg))
			r.Get("/summary", controllers.RFQSummary(rfqService, logg))
			r.Get("/overdue", controllers.RFQOverdue(rfqService, logg))
			r.Post("/draft", controllers.RFQDraft(rfqService, logg))
		})

		r.Get("/vendors/search", controllers.VendorSearch(vendorService, logg))
		r.Get("/stats", controllers.DashboardStats(dashboardService, logg))
	})

	return r
}
