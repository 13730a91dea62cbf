package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRow(d time.Time) Row {
	return Row{Date: d, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100,
		SMA30: 1.4, RSI: 50, PriceChangePct: 0.001}
}

func TestRowComplete(t *testing.T) {
	d := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.True(t, completeRow(d).Complete())

	nanClose := completeRow(d)
	nanClose.Close = math.NaN()
	assert.False(t, nanClose.Complete())

	nanIndicator := completeRow(d)
	nanIndicator.SMA30 = math.NaN()
	assert.False(t, nanIndicator.Complete())

	infPct := completeRow(d)
	infPct.PriceChangePct = math.Inf(1)
	assert.False(t, infPct.Complete())
}

func TestSeriesTailAndSlice(t *testing.T) {
	var s Series
	for d := 1; d <= 10; d++ {
		s.Rows = append(s.Rows, completeRow(time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)))
	}

	tail := s.Tail(3)
	require.Len(t, tail.Rows, 3)
	assert.Equal(t, 8, tail.Rows[0].Date.Day())

	assert.Len(t, s.Tail(20).Rows, 10)

	sliced := s.Slice(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, sliced.Rows, 3, "slice bounds are inclusive")
	assert.Equal(t, 4, sliced.Rows[0].Date.Day())
	assert.Equal(t, 6, sliced.Rows[2].Date.Day())
}

func TestSeriesDropIncomplete(t *testing.T) {
	d := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	warm := completeRow(d)
	cold := completeRow(d.AddDate(0, 0, -1))
	cold.RSI = math.NaN()

	s := Series{Symbol: "BOP", Rows: []Row{cold, warm}}
	out := s.DropIncomplete()
	require.Len(t, out.Rows, 1)
	assert.Equal(t, d, out.Rows[0].Date)
	assert.Equal(t, "BOP", out.Symbol)
}

func TestSeriesLatestAndHasClose(t *testing.T) {
	var empty Series
	_, ok := empty.Latest()
	assert.False(t, ok)
	assert.True(t, empty.Empty())
	assert.False(t, empty.HasClose())

	nanOnly := Series{Rows: []Row{{Close: math.NaN()}}}
	assert.False(t, nanOnly.HasClose())

	d := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	s := Series{Rows: []Row{completeRow(d.AddDate(0, 0, -1)), completeRow(d)}}
	row, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, d, row.Date)
	assert.True(t, s.HasClose())
}
