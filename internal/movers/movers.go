// Package movers derives the gainers/losers snapshot from the recent-days
// cache.
package movers

import (
	"sort"

	"StockGenie/internal/model"
)

// Mover is one symbol's day-over-day move.
type Mover struct {
	Symbol    string
	LastClose float64
	ChangePct float64
}

// Compute partitions symbols into gainers and losers by the change between
// their two most recent cached closes. Symbols with fewer than two cached
// days are skipped; a zero previous close counts as no move. Gainers come
// back sorted best first, losers worst first.
func Compute(stocks map[string][]model.Row) (gainers, losers []Mover) {
	for symbol, days := range stocks {
		if len(days) < 2 {
			continue
		}
		prev := days[len(days)-2].Close
		last := days[len(days)-1].Close

		var changePct float64
		if prev != 0 {
			changePct = (last - prev) / prev * 100
		}

		m := Mover{Symbol: symbol, LastClose: last, ChangePct: changePct}
		switch {
		case changePct > 0:
			gainers = append(gainers, m)
		case changePct < 0:
			losers = append(losers, m)
		}
	}

	sort.Slice(gainers, func(i, j int) bool { return gainers[i].ChangePct > gainers[j].ChangePct })
	sort.Slice(losers, func(i, j int) bool { return losers[i].ChangePct < losers[j].ChangePct })
	return gainers, losers
}

// Top returns at most n movers from an already-sorted list.
func Top(movers []Mover, n int) []Mover {
	if len(movers) <= n {
		return movers
	}
	return movers[:n]
}
