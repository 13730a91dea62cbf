package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockGenie/internal/model"
)

func TestVector_PinnedOrder(t *testing.T) {
	row := model.Row{Close: 10.5, SMA30: 10.1, RSI: 48, PriceChangePct: -0.002}
	got := Vector(row)

	assert.Equal(t, [Size]float64{10.5, 10.1, 48, -0.002}, got)
	assert.Equal(t, [Size]string{"Close", "SMA_30", "RSI", "Price_Change_Pct"}, ColumnNames)
}

func TestLatest(t *testing.T) {
	_, ok := Latest(model.Series{})
	assert.False(t, ok)

	s := model.Series{Rows: []model.Row{
		{Close: 1},
		{Close: 2, SMA30: 1.5, RSI: 60, PriceChangePct: 0.01},
	}}
	vec, ok := Latest(s)
	require.True(t, ok)
	assert.Equal(t, [Size]float64{2, 1.5, 60, 0.01}, vec)
}
