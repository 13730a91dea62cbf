package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"StockGenie/internal/collector"
	"StockGenie/internal/config"
	"StockGenie/internal/logger"
	"StockGenie/internal/metrics"
	"StockGenie/internal/scheduler"
	"StockGenie/internal/store"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: cfg.Logging.FilePath,
	}); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	log.Info().Msg("StockGenie starting...")

	// Init recent-days cache
	var cache store.Store
	if cfg.Cache.SQLitePath != "" {
		sq, err := store.NewSQLiteStore(cfg.Cache.SQLitePath, cfg.Cache.RecentDays)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite cache failed, using noop")
			cache = store.NewNoopStore()
		} else {
			cache = sq
			defer sq.Close()
		}
	} else {
		cache = store.NewNoopStore()
	}

	// Init fetcher and collector
	fetcher := collector.NewPSXFetcher(
		cfg.DataSource.HistoryURL,
		time.Duration(cfg.DataSource.TimeoutSeconds)*time.Second,
	)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.New(
		fetcher,
		cfg.DataSource.Workers,
		cfg.Retry.Attempts,
		time.Duration(cfg.Retry.DelaySeconds)*time.Second,
	)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.New(col, cache, cfg.DataSource.SymbolsURL, cfg.Symbols.FilePath, cfg.Cache.RecentDays)
	if err := sched.RegisterAll(cfg.Schedule.UpdateCron, cfg.Schedule.SnapshotCron, cfg.Schedule.SymbolsCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		log.Info().Str("addr", cfg.Metrics.ListenAddr).Msg("metrics listening")
		if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing update task now")
		go sched.RunUpdateNow(ctx)
	}

	log.Info().Msg("StockGenie is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	log.Info().Msg("StockGenie stopped")
}
