package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/voltroute/backend/internal/api"
	"github.com/voltroute/backend/internal/config"
	"github.com/voltroute/backend/internal/db"
	"github.com/voltroute/backend/internal/logger"
	"github.com/voltroute/backend/internal/metrics"
	"github.com/voltroute/backend/internal/ratelimiter"
	"github.com/voltroute/backend/internal/readiness"
)

func main() {
	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()

	// ---- metrics ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// ---- readiness ----
	var checks []readiness.Check
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		checks = append(checks, readiness.NewPingCheck("postgres", pool))
		log.Info("database readiness check enabled")
	}

	checker := readiness.NewChecker(checks, cfg.ReadinessTimeout, ratelimiter.New(cfg.ReadinessRate), m.ReadinessHooks())

	// Context for all background goroutines; cancelled on shutdown signal.
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	prober := readiness.NewProber(checker, cfg.ReadinessInterval, log)
	proberDone := make(chan struct{})
	go func() {
		defer close(proberDone)
		prober.Run(workerCtx)
	}()

	// ---- HTTP server ----
	router := api.NewRouter(api.Deps{
		Config:   cfg,
		Checker:  checker,
		Gatherer: reg,
		Observer: m,
		Logger:   log,
	})
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("health_path", cfg.HealthPath),
			zap.String("ready_path", cfg.ReadyPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Stop the prober and wait for its in-flight run.
	cancelWorkers()
	<-proberDone

	log.Info("server stopped cleanly")
}
