package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned markup per unit and counts sessions handed out.
type fakeFetcher struct {
	pages    map[time.Time]string
	failWith error // returned for units missing from pages
	sessions atomic.Int32
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) NewSession() Session {
	f.sessions.Add(1)
	return &fakeSession{fetcher: f}
}

type fakeSession struct{ fetcher *fakeFetcher }

func (s *fakeSession) Fetch(_ context.Context, symbol string, unit time.Time) (string, error) {
	page, ok := s.fetcher.pages[unit]
	if !ok {
		if s.fetcher.failWith != nil {
			return "", s.fetcher.failWith
		}
		return "", &FetchError{Symbol: symbol, Unit: unit, Err: errors.New("no route")}
	}
	return page, nil
}

func pageWithRow(d time.Time) string {
	return fmt.Sprintf(`<table>
<tr><td>%s</td><td>10</td><td>11</td><td>9</td><td>10.5</td><td>1000</td></tr>
</table>`, d.Format("Jan 02, 2006"))
}

func TestAggregate_CollectsAllUnits(t *testing.T) {
	units := []time.Time{
		date(2024, 1, 1), date(2024, 2, 1), date(2024, 3, 1),
	}
	fetcher := &fakeFetcher{pages: map[time.Time]string{}}
	for _, u := range units {
		fetcher.pages[u] = pageWithRow(u.AddDate(0, 0, 14))
	}

	agg := NewAggregator(fetcher, 2)
	var mu sync.Mutex
	var progress []int
	agg.Progress = func(done, total int) {
		mu.Lock()
		progress = append(progress, done)
		mu.Unlock()
		assert.Equal(t, len(units), total)
	}

	frames, stats := agg.Aggregate(context.Background(), "BOP", units)
	require.Len(t, frames, 3)
	assert.Equal(t, Stats{Requested: 3, Succeeded: 3}, stats)
	assert.Len(t, progress, 3)
	assert.EqualValues(t, 2, fetcher.sessions.Load(), "one session per worker")
}

func TestAggregate_DropsFailedUnits(t *testing.T) {
	units := []time.Time{date(2024, 1, 1), date(2024, 2, 1)}
	fetcher := &fakeFetcher{pages: map[time.Time]string{
		date(2024, 2, 1): pageWithRow(date(2024, 2, 14)),
	}}

	frames, stats := NewAggregator(fetcher, 1).Aggregate(context.Background(), "BOP", units)
	require.Len(t, frames, 1)
	assert.Equal(t, 2, stats.Requested)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)

	var fe *FetchError
	assert.ErrorAs(t, stats.FirstErr, &fe)
}

func TestAggregate_ZeroSuccess(t *testing.T) {
	units := []time.Time{date(2024, 1, 1), date(2024, 2, 1)}
	fetcher := &fakeFetcher{}

	frames, stats := NewAggregator(fetcher, 2).Aggregate(context.Background(), "BOP", units)
	assert.Empty(t, frames)
	assert.Equal(t, 0, stats.Succeeded)
	assert.Equal(t, 2, stats.Failed)
	assert.Error(t, stats.FirstErr)
}

func TestAggregate_NoUnits(t *testing.T) {
	frames, stats := NewAggregator(&fakeFetcher{}, 2).Aggregate(context.Background(), "BOP", nil)
	assert.Empty(t, frames)
	assert.Equal(t, Stats{}, stats)
}
