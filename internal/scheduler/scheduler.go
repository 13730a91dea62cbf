// Package scheduler runs the recurring pipeline jobs on cron schedules:
// the nightly per-symbol update, the weekly movers snapshot, and the
// weekly symbols-universe refresh.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockGenie/internal/collector"
	"StockGenie/internal/metrics"
	"StockGenie/internal/movers"
	"StockGenie/internal/store"
)

// Scheduler owns the cron instance and the job dependencies.
type Scheduler struct {
	cron      *cron.Cron
	collector *collector.Collector
	store     store.Store

	symbolsURL  string
	symbolsFile string
	recentDays  int
}

// New builds a Scheduler. recentDays is the cache depth per symbol.
func New(c *collector.Collector, s store.Store, symbolsURL, symbolsFile string, recentDays int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		collector:   c,
		store:       s,
		symbolsURL:  symbolsURL,
		symbolsFile: symbolsFile,
		recentDays:  recentDays,
	}
}

// RegisterAll wires the three jobs onto their cron expressions.
func (s *Scheduler) RegisterAll(updateCron, snapshotCron, symbolsCron string) error {
	if _, err := s.cron.AddFunc(updateCron, func() { s.updateTask(context.Background()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(snapshotCron, func() { s.snapshotTask(context.Background()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(symbolsCron, func() { s.symbolsTask(context.Background()) }); err != nil {
		return err
	}
	return nil
}

// Start begins running registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("scheduler stopped")
}

// RunUpdateNow triggers the update job outside its schedule.
func (s *Scheduler) RunUpdateNow(ctx context.Context) {
	s.updateTask(ctx)
}

// updateTask appends each symbol's latest trading day to the cache.
func (s *Scheduler) updateTask(ctx context.Context) {
	started := time.Now()
	symbols, err := collector.LoadSymbolsFile(s.symbolsFile)
	if err != nil {
		log.Error().Err(err).Str("path", s.symbolsFile).Msg("update: load symbols file")
		return
	}

	var appended atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(collector.DefaultWorkers)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			row, ok, err := s.collector.LatestDay(gctx, symbol)
			if err != nil {
				log.Warn().Str("symbol", symbol).Err(err).Msg("update: latest day fetch failed")
				return nil
			}
			if !ok {
				return nil
			}
			added, err := s.store.Append(symbol, row)
			if err != nil {
				log.Error().Str("symbol", symbol).Err(err).Msg("update: cache append failed")
				return nil
			}
			if added {
				appended.Add(1)
				metrics.SymbolUpdates.Inc()
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Info().
		Int("symbols", len(symbols)).
		Int64("appended", appended.Load()).
		Dur("took", time.Since(started)).
		Msg("update run finished")
}

// snapshotTask rebuilds the recent-days cache and logs the gainers/losers
// report.
func (s *Scheduler) snapshotTask(ctx context.Context) {
	started := time.Now()
	symbols, err := collector.LoadSymbolsFile(s.symbolsFile)
	if err != nil {
		log.Error().Err(err).Str("path", s.symbolsFile).Msg("snapshot: load symbols file")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(collector.DefaultWorkers)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			series, err := s.collector.RecentDays(gctx, symbol, s.recentDays)
			if err != nil {
				log.Warn().Str("symbol", symbol).Err(err).Msg("snapshot: recent days fetch failed")
				return nil
			}
			if series.Empty() {
				return nil
			}
			if err := s.store.ReplaceRecent(symbol, series.Rows); err != nil {
				log.Error().Str("symbol", symbol).Err(err).Msg("snapshot: cache replace failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	cached, err := s.store.All()
	if err != nil {
		log.Error().Err(err).Msg("snapshot: read cache")
		return
	}
	gainers, losers := movers.Compute(cached)
	log.Info().Msg("\n" + movers.FormatReport(gainers, losers, 10))
	metrics.SnapshotRuns.Inc()

	log.Info().
		Int("symbols", len(symbols)).
		Int("gainers", len(gainers)).
		Int("losers", len(losers)).
		Dur("took", time.Since(started)).
		Msg("snapshot run finished")
}

// symbolsTask refreshes the equity symbols file from the exchange.
func (s *Scheduler) symbolsTask(ctx context.Context) {
	infos, err := collector.FetchSymbols(ctx, s.symbolsURL)
	if err != nil {
		log.Error().Err(err).Msg("symbols refresh failed")
		return
	}
	symbols := collector.EquitySymbols(infos)
	if err := collector.SaveSymbolsFile(s.symbolsFile, symbols); err != nil {
		log.Error().Err(err).Str("path", s.symbolsFile).Msg("symbols file write failed")
		return
	}
	log.Info().Int("count", len(symbols)).Str("path", s.symbolsFile).Msg("symbols file refreshed")
}
