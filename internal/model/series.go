package model

import (
	"math"
	"time"
)

// Row is one trading day after numeric coercion. Indicator columns are NaN
// until the rolling windows behind them are warm.
type Row struct {
	Date           time.Time
	Open           float64
	High           float64
	Low            float64
	Close          float64
	Volume         float64
	SMA30          float64
	RSI            float64
	PriceChangePct float64
	Signal         Signal
}

// Complete reports whether every numeric column of the row is defined and
// finite. Rows failing this are removed in the finalization step.
func (r Row) Complete() bool {
	for _, v := range []float64{
		r.Open, r.High, r.Low, r.Close, r.Volume,
		r.SMA30, r.RSI, r.PriceChangePct,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Series is the assembled date-ascending table for one symbol.
// Invariant after assembly: Dates are strictly increasing and unique.
type Series struct {
	Symbol string
	Rows   []Row
}

// Empty reports whether the series has no rows.
func (s Series) Empty() bool { return len(s.Rows) == 0 }

// Closes returns the close column in row order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Close
	}
	return out
}

// HasClose reports whether at least one close value coerced successfully.
// When false the indicator and signal stages are skipped.
func (s Series) HasClose() bool {
	for _, r := range s.Rows {
		if !math.IsNaN(r.Close) {
			return true
		}
	}
	return false
}

// Latest returns the most recent row, if any.
func (s Series) Latest() (Row, bool) {
	if len(s.Rows) == 0 {
		return Row{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}

// Tail returns the last n rows (all rows when fewer exist).
func (s Series) Tail(n int) Series {
	if n >= len(s.Rows) {
		return s
	}
	return Series{Symbol: s.Symbol, Rows: s.Rows[len(s.Rows)-n:]}
}

// Slice keeps rows with start <= Date <= end.
func (s Series) Slice(start, end time.Time) Series {
	out := Series{Symbol: s.Symbol}
	for _, r := range s.Rows {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// DropIncomplete removes rows with undefined or non-finite numeric columns.
// This is where the indicator warm-up rows (first 29-30 of a cold window)
// disappear; that is expected, not data loss.
func (s Series) DropIncomplete() Series {
	out := Series{Symbol: s.Symbol}
	for _, r := range s.Rows {
		if r.Complete() {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
