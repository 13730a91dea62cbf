package collector

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"StockGenie/internal/metrics"
	"StockGenie/internal/model"
)

// DefaultWorkers bounds the fetch pool. Six concurrent workers is what the
// PSX portal tolerates without throttling.
const DefaultWorkers = 6

// Result is the outcome of one fetch+parse unit.
type Result struct {
	Frame model.MonthFrame
	Err   error
}

// Stats summarizes an aggregation run so callers can see how many units
// failed out of how many were requested.
type Stats struct {
	Requested int
	Succeeded int
	Failed    int
	FirstErr  error // first failure, for the whole-symbol retry decision
}

// Aggregator fans fetch+parse tasks out over a fixed worker pool and
// collects frames in completion order. Failed units are dropped and
// counted, never retried here: resilience belongs one layer up, at the
// whole-symbol wrapper.
type Aggregator struct {
	Fetcher  Fetcher
	Workers  int
	Progress func(done, total int) // optional, called after each unit
}

// NewAggregator creates an aggregator over the given fetcher.
func NewAggregator(f Fetcher, workers int) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Aggregator{Fetcher: f, Workers: workers}
}

// Aggregate fetches and parses every unit, returning the frames that
// succeeded. It always awaits all dispatched units, so total latency is the
// slowest unit plus pool contention, not the sum. Zero successes yield an
// empty frame list, not an error.
func (a *Aggregator) Aggregate(ctx context.Context, symbol string, units []time.Time) ([]model.MonthFrame, Stats) {
	stats := Stats{Requested: len(units)}
	if len(units) == 0 {
		return nil, stats
	}

	jobs := make(chan time.Time)
	results := make(chan Result, len(units))

	workers := a.Workers
	if workers > len(units) {
		workers = len(units)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// One session per worker: connection reuse within the
			// worker, no client shared across goroutines.
			sess := a.Fetcher.NewSession()
			for unit := range jobs {
				results <- a.runUnit(ctx, sess, symbol, unit)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, u := range units {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var frames []model.MonthFrame
	done := 0
	for res := range results {
		done++
		if res.Err != nil {
			stats.Failed++
			if stats.FirstErr == nil {
				stats.FirstErr = res.Err
			}
			metrics.FetchUnits.WithLabelValues("failed").Inc()
		} else {
			stats.Succeeded++
			frames = append(frames, res.Frame)
			metrics.FetchUnits.WithLabelValues("ok").Inc()
		}
		if a.Progress != nil {
			a.Progress(done, len(units))
		}
	}

	if stats.Failed > 0 {
		log.Warn().
			Str("symbol", symbol).
			Int("requested", stats.Requested).
			Int("failed", stats.Failed).
			Msg("dropped failed fetch units")
	}

	return frames, stats
}

func (a *Aggregator) runUnit(ctx context.Context, sess Session, symbol string, unit time.Time) Result {
	markup, err := sess.Fetch(ctx, symbol, unit)
	if err != nil {
		return Result{Err: err}
	}
	frame, err := ParseMonth(symbol, unit, markup)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Frame: frame}
}
