// Package metrics exposes Prometheus counters for the fetch pipeline so the
// dashboard can see how many units failed out of how many were requested.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchUnits counts fetch+parse units by outcome ("ok" or "failed").
	FetchUnits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genie_fetch_units_total",
		Help: "Fetch units dispatched to the worker pool, by outcome.",
	}, []string{"result"})

	// SymbolUpdates counts recent-days cache appends from the nightly job.
	SymbolUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genie_symbol_updates_total",
		Help: "Symbols whose recent-days cache gained a new trading day.",
	})

	// SnapshotRuns counts full snapshot rebuilds.
	SnapshotRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genie_snapshot_runs_total",
		Help: "Completed full recent-days snapshot rebuilds.",
	})
)

// Handler returns the scrape endpoint handler.
func Handler() http.Handler { return promhttp.Handler() }
