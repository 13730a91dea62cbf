package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"StockGenie/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		close float64
		sma30 float64
		rsi   float64
		pct   float64
		want  model.Signal
	}{
		{"weak rsi below sma", 90, 100, 40, 0, model.SignalBuy},
		{"strong rsi above sma", 110, 100, 60, 0, model.SignalSell},
		{"sharp drop forces buy", 110, 100, 60, -0.01, model.SignalBuy},
		{"sharp rise forces sell", 90, 100, 60, 0.01, model.SignalSell},
		{"mixed indicators", 110, 100, 40, 0, model.SignalNeutral},
		{"drop exactly at threshold", 110, 100, 60, -0.005, model.SignalSell},
		{"rsi exactly 50 below sma", 90, 100, 50, 0, model.SignalBuy},
		{"rsi exactly 50 above sma", 110, 100, 50, 0, model.SignalNeutral},
		{"undefined indicators", 100, math.NaN(), math.NaN(), math.NaN(), model.SignalNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.close, tt.sma30, tt.rsi, tt.pct))
		})
	}
}

func TestClassify_BuyWinsWhenBothMatch(t *testing.T) {
	// sell condition holds via rsi/sma, buy via the pct override
	got := Classify(110, 100, 60, -0.02)
	assert.Equal(t, model.SignalBuy, got)
}

func TestApply(t *testing.T) {
	s := model.Series{Rows: []model.Row{
		{Close: 90, SMA30: 100, RSI: 40, PriceChangePct: 0},
		{Close: 110, SMA30: 100, RSI: 60, PriceChangePct: 0},
		{Close: 110, SMA30: 100, RSI: 40, PriceChangePct: 0},
	}}
	Apply(&s)
	assert.Equal(t, model.SignalBuy, s.Rows[0].Signal)
	assert.Equal(t, model.SignalSell, s.Rows[1].Signal)
	assert.Equal(t, model.SignalNeutral, s.Rows[2].Signal)

	// labeling again must not change anything
	before := append([]model.Row(nil), s.Rows...)
	Apply(&s)
	assert.Equal(t, before, s.Rows)
}
