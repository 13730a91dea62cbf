package movers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockGenie/internal/model"
)

func days(closes ...float64) []model.Row {
	rows := make([]model.Row, len(closes))
	for i, c := range closes {
		rows[i] = model.Row{
			Date:  time.Date(2024, 3, 10+i, 0, 0, 0, 0, time.UTC),
			Close: c,
		}
	}
	return rows
}

func TestCompute(t *testing.T) {
	stocks := map[string][]model.Row{
		"UP":     days(10, 11), // +10%
		"BIGUP":  days(10, 12), // +20%
		"DOWN":   days(10, 9),  // -10%
		"FLAT":   days(10, 10), // no move
		"SINGLE": days(10),     // too little history
		"ZERO":   days(0, 5),   // zero prior close
	}

	gainers, losers := Compute(stocks)

	require.Len(t, gainers, 2)
	assert.Equal(t, "BIGUP", gainers[0].Symbol, "best gainer first")
	assert.InDelta(t, 20.0, gainers[0].ChangePct, 1e-9)
	assert.Equal(t, "UP", gainers[1].Symbol)

	require.Len(t, losers, 1)
	assert.Equal(t, "DOWN", losers[0].Symbol)
	assert.InDelta(t, -10.0, losers[0].ChangePct, 1e-9)
	assert.InDelta(t, 9.0, losers[0].LastClose, 1e-9)
}

func TestTop(t *testing.T) {
	movers := []Mover{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "C"}}
	assert.Len(t, Top(movers, 2), 2)
	assert.Len(t, Top(movers, 5), 3)
	assert.Empty(t, Top(nil, 5))
}

func TestFormatReport(t *testing.T) {
	gainers := []Mover{{Symbol: "HBL", LastClose: 121.5, ChangePct: 2.3}}
	report := FormatReport(gainers, nil, 10)
	assert.Contains(t, report, "HBL")
	assert.Contains(t, report, "Top gainers:")
	assert.Contains(t, report, "(none)", "empty losers side is explicit")
}
