package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/intelligence/intelcache"
	"equity-intel/internal/intelligence/intelobs"
	"equity-intel/internal/interfaces"
	"equity-intel/internal/logger"
	"equity-intel/internal/server"
	"equity-intel/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", *configPath)
		os.Exit(1)
	}

	runner, closeRunner, err := initializeRunner(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build intelligence pipeline", err)
		os.Exit(1)
	}
	defer closeRunner()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(runner, cfg.Server.Mode).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Intelligence API listening", "addr", cfg.Server.Addr,
			"news_source", cfg.News.Source, "earnings_source", cfg.Earnings.Source)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigc:
		logger.Info(ctx, "Shutting down", "signal", sig.String())
	case err, ok := <-errc:
		if ok && err != nil {
			logger.ErrorWithErr(ctx, "Server failed", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(ctx, "Graceful shutdown failed", err)
	}
	_ = logger.Shutdown(shutdownCtx)
}

// initializeRunner builds the orchestrator with observability and, when
// enabled, the report cache. The returned func releases the cache.
func initializeRunner(ctx context.Context, cfg *store.Config) (interfaces.IntelligenceRunner, func(), error) {
	orch, err := intelligence.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Wrap with observability middleware
	runner := intelobs.Wrap(orch)

	if !cfg.Cache.Enabled {
		return runner, func() {}, nil
	}

	cached := intelcache.New(runner, cfg.CacheTTL(), 0)
	logger.Info(ctx, "Report cache enabled", "ttl", cfg.CacheTTL().String())
	return cached, cached.Close, nil
}
