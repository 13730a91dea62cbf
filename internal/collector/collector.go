// Package collector drives the PSX historical-data pipeline: it windows a
// calendar range into fetch units, fans them out over a bounded worker
// pool, and turns the surviving frames into an indicator-enriched,
// signal-labelled series per symbol.
package collector

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockGenie/internal/assembler"
	"StockGenie/internal/calculator"
	"StockGenie/internal/model"
	"StockGenie/internal/strategy"
)

// Collector orchestrates fetching and derivation for one or more symbols.
type Collector struct {
	agg        *Aggregator
	retries    int
	retryDelay time.Duration
}

// New creates a Collector over the given fetcher. retries and retryDelay
// control the whole-symbol retry wrapper only; the aggregator underneath
// never retries individual units.
func New(fetcher Fetcher, workers, retries int, retryDelay time.Duration) *Collector {
	if retries <= 0 {
		retries = 3
	}
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	return &Collector{
		agg:        NewAggregator(fetcher, workers),
		retries:    retries,
		retryDelay: retryDelay,
	}
}

// OnProgress installs a unit-completion callback for CLI reporting.
func (c *Collector) OnProgress(fn func(done, total int)) { c.agg.Progress = fn }

// Stock fetches and derives the series for one symbol over [start, end]
// using monthly fetch units. An empty series is data absence, not an error;
// a non-nil error means every unit failed on transport and the window is
// worth retrying.
func (c *Collector) Stock(ctx context.Context, symbol string, start, end time.Time) (model.Series, error) {
	return c.fromUnits(ctx, symbol, MonthlyUnits(start, end), start, end)
}

// StockDaily is the incremental-update variant: day-granularity units, for
// small windows where a whole month per unit would be wasteful to reason
// about. Units sharing a month fetch the same page; the assembler's
// keep-first dedup collapses them.
func (c *Collector) StockDaily(ctx context.Context, symbol string, start, end time.Time) (model.Series, error) {
	return c.fromUnits(ctx, symbol, DailyUnits(start, end), start, end)
}

func (c *Collector) fromUnits(ctx context.Context, symbol string, units []time.Time, start, end time.Time) (model.Series, error) {
	frames, stats := c.agg.Aggregate(ctx, symbol, units)

	if stats.Succeeded == 0 && stats.FirstErr != nil {
		var fe *FetchError
		if errors.As(stats.FirstErr, &fe) {
			// Every unit failed on transport: surface it so the
			// retry wrapper can distinguish this from "no data".
			return model.Series{Symbol: symbol}, stats.FirstErr
		}
	}

	series := assembler.Assemble(symbol, frames)
	if series.Empty() {
		log.Info().Str("symbol", symbol).Msg("no data for window")
		return series, nil
	}
	if !series.HasClose() {
		log.Warn().Str("symbol", symbol).Msg("close column missing, skipping indicators")
		return series, nil
	}

	calculator.Enrich(&series)
	strategy.Apply(&series)
	series = series.DropIncomplete()
	return series.Slice(start, end), nil
}

// SafeStock wraps Stock with a bounded retry: up to retries attempts with a
// fixed delay, on transport errors only. Empty results are returned as-is —
// no amount of retrying conjures data for a delisted month.
func (c *Collector) SafeStock(ctx context.Context, symbol string, start, end time.Time) (model.Series, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		series, err := c.Stock(ctx, symbol, start, end)
		if err == nil {
			return series, nil
		}
		lastErr = err
		log.Warn().
			Str("symbol", symbol).
			Int("attempt", attempt).
			Int("max", c.retries).
			Err(err).
			Msg("symbol fetch failed, retrying")

		select {
		case <-ctx.Done():
			return model.Series{Symbol: symbol}, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
	return model.Series{Symbol: symbol}, lastErr
}

// Stocks fetches several tickers concurrently and returns their series in
// input order. Symbols own their series exclusively; nothing mutable is
// shared between them. A symbol whose window failed entirely comes back as
// an empty series.
func (c *Collector) Stocks(ctx context.Context, tickers []string, start, end time.Time) []model.Series {
	out := make([]model.Series, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			series, err := c.SafeStock(gctx, ticker, start, end)
			if err != nil {
				log.Error().Str("symbol", ticker).Err(err).Msg("symbol fetch exhausted retries")
			}
			out[i] = series
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures degrade to empty series

	return out
}

// RecentDays returns the last n trading days for a symbol, fetching a
// trailing two-month window so the rolling indicators are warm.
func (c *Collector) RecentDays(ctx context.Context, symbol string, n int) (model.Series, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, -2, 0)
	series, err := c.SafeStock(ctx, symbol, start, end)
	if err != nil {
		return series, err
	}
	return series.Tail(n), nil
}

// LatestDay returns the most recent trading day. The window reaches two
// months back: anything shorter is eaten whole by the 30-row indicator
// warm-up and would never produce a complete row.
func (c *Collector) LatestDay(ctx context.Context, symbol string) (model.Row, bool, error) {
	series, err := c.RecentDays(ctx, symbol, 1)
	if err != nil {
		return model.Row{}, false, err
	}
	row, ok := series.Latest()
	return row, ok, nil
}
