package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baxterbids/bidboard/api/routes"
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
	"github.com/baxterbids/bidboard/pkg/migrate"
	"github.com/baxterbids/bidboard/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured; idempotency keys are not enforced")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)
	quoteMetrics := metrics.NewQuoteMetrics(registry)
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	tiers, err := cfg.Quotes.Tiers()
	if err != nil {
		logg.Error(context.Background(), "invalid markup tiers", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	quoteService, err := quotes.NewService(quotes.NewRepository(conn), tiers, quoteMetrics)
	requireService(logg, "quotes", err)

	exportService, err := export.NewService(quoteService, quoteMetrics)
	requireService(logg, "export", err)

	rfqService, err := rfqs.NewService(rfqs.NewRepository(conn), cfg.RFQ.OverdueAfterDays)
	requireService(logg, "rfqs", err)

	bidService, err := bids.NewService(bids.NewRepository(conn), rfqService, bids.Options{
		ClosingSoonDays:  cfg.Bids.ClosingSoonDays,
		ClosedRetainDays: cfg.Bids.ClosedRetainDays,
	}, logg)
	requireService(logg, "bids", err)

	vendorService, err := vendors.NewService(vendors.NewRepository(conn), cfg.Bids.VendorSearchLimit)
	requireService(logg, "vendors", err)

	dashboardService, err := dashboard.NewService(bidService, rfqService)
	requireService(logg, "dashboard", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"db_driver": dbClient.Driver(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			metricsHandler,
			bidService,
			quoteService,
			exportService,
			rfqService,
			vendorService,
			dashboardService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	logg.Info(ctx, "api server stopped")
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to create service", err)
	os.Exit(1)
}
