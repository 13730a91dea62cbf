// Package strategy labels each trading day Buy, Sell or Neutral from its
// indicator values. The rule set is deterministic and per-row: no state is
// carried between rows beyond what the indicators already encode.
package strategy

import "StockGenie/internal/model"

// PctThreshold is the daily move that forces a signal regardless of the
// RSI/SMA condition: below -0.5% forces Buy, above +0.5% forces Sell.
const PctThreshold = 0.005

// Classify returns the signal for one row. Buy is evaluated before Sell;
// under the current thresholds no row satisfies both, but if the rules ever
// drift the first match wins.
func Classify(close, sma30, rsi, pct float64) model.Signal {
	switch {
	case (rsi <= 50 && close < sma30) || pct < -PctThreshold:
		return model.SignalBuy
	case (rsi > 50 && close > sma30) || pct > PctThreshold:
		return model.SignalSell
	default:
		return model.SignalNeutral
	}
}

// Apply labels every row of a series. Rows with undefined indicators fall
// through to Neutral (NaN comparisons are all false) and are dropped by the
// finalization step anyway.
func Apply(s *model.Series) {
	for i, r := range s.Rows {
		s.Rows[i].Signal = Classify(r.Close, r.SMA30, r.RSI, r.PriceChangePct)
	}
}
