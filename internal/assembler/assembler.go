// Package assembler turns the unordered bag of per-month frames produced by
// the aggregator into one numeric, date-ascending, duplicate-free series.
package assembler

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"StockGenie/internal/model"
)

// Assemble concatenates the frames, sorts by date (stable, ties keep append
// order), coerces the text cells to float64 and drops duplicate dates,
// keeping the first occurrence. Overlapping fetch units therefore collapse
// to a single row per day. An empty frame list yields an empty series.
func Assemble(symbol string, frames []model.MonthFrame) model.Series {
	series := model.Series{Symbol: symbol}
	if len(frames) == 0 {
		return series
	}

	var raw []model.RawRow
	for _, f := range frames {
		raw = append(raw, f.Rows...)
	}
	if len(raw) == 0 {
		return series
	}

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].Date.Before(raw[j].Date) })

	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		key := r.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		series.Rows = append(series.Rows, coerce(r))
	}

	log.Debug().
		Str("symbol", symbol).
		Int("frames", len(frames)).
		Int("raw_rows", len(raw)).
		Int("rows", len(series.Rows)).
		Msg("assembled series")

	return series
}

// coerce converts one raw row, stripping thousands separators. A cell that
// still fails to parse becomes NaN rather than an error; the finalization
// step removes rows carrying NaN.
func coerce(r model.RawRow) model.Row {
	return model.Row{
		Date:           r.Date,
		Open:           parseCell(r.Open),
		High:           parseCell(r.High),
		Low:            parseCell(r.Low),
		Close:          parseCell(r.Close),
		Volume:         parseCell(r.Volume),
		SMA30:          math.NaN(),
		RSI:            math.NaN(),
		PriceChangePct: math.NaN(),
	}
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
