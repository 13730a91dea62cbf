package calculator

import "StockGenie/internal/model"

// Rolling window lengths shared with the downstream feature contract.
// Changing either silently breaks the pre-trained classifiers.
const (
	SMAWindow = 30
	RSIWindow = 14
)

// Enrich fills the SMA_30, RSI and Price_Change_Pct columns of a series
// in place. Warm-up rows keep NaN and are removed later by DropIncomplete.
func Enrich(s *model.Series) {
	closes := s.Closes()
	sma := RollingSMA(closes, SMAWindow)
	rsi := RollingRSI(closes, RSIWindow)
	pct := PctChange(closes)
	for i := range s.Rows {
		s.Rows[i].SMA30 = sma[i]
		s.Rows[i].RSI = rsi[i]
		s.Rows[i].PriceChangePct = pct[i]
	}
}
