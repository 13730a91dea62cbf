package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockGenie/internal/collector"
	"StockGenie/internal/store"
)

// syntheticHistory answers any {month, year} request with 28 daily rows
// whose closes rise monotonically across months, so the trailing window
// always warms the indicators.
func syntheticHistory(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		month, _ := strconv.Atoi(r.FormValue("month"))
		year, _ := strconv.Atoi(r.FormValue("year"))

		fmt.Fprint(w, "<table><tr><th>TIME</th><th>OPEN</th><th>HIGH</th><th>LOW</th><th>CLOSE</th><th>VOLUME</th></tr>")
		for day := 1; day <= 28; day++ {
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			close := float64((year-2020)*12+month)*28 + float64(day)
			fmt.Fprintf(w, "<tr><td>%s</td><td>%.2f</td><td>%.2f</td><td>%.2f</td><td>%.2f</td><td>500</td></tr>",
				d.Format("Jan 02, 2006"), close-0.5, close+0.5, close-1, close)
		}
		fmt.Fprint(w, "</table>")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpdateTask_AppendsLatestDayPerSymbol(t *testing.T) {
	srv := syntheticHistory(t)

	dir := t.TempDir()
	symbolsFile := filepath.Join(dir, "symbols.txt")
	require.NoError(t, collector.SaveSymbolsFile(symbolsFile, []string{"BOP", "HBL"}))

	cache, err := store.NewSQLiteStore(filepath.Join(dir, "cache.db"), 5)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	col := collector.New(collector.NewPSXFetcher(srv.URL, 5*time.Second), 3, 1, 10*time.Millisecond)
	sched := New(col, cache, srv.URL, symbolsFile, 5)

	sched.RunUpdateNow(context.Background())

	all, err := cache.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, symbol := range []string{"BOP", "HBL"} {
		require.Len(t, all[symbol], 1, "%s should cache exactly the latest day", symbol)
		assert.NotEmpty(t, all[symbol][0].Signal)
	}

	// a second run on the same day adds nothing
	sched.RunUpdateNow(context.Background())
	all, err = cache.All()
	require.NoError(t, err)
	assert.Len(t, all["BOP"], 1)
}

func TestRegisterAll_BadExpression(t *testing.T) {
	sched := New(nil, store.NewNoopStore(), "", "", 5)
	err := sched.RegisterAll("not a cron expr", "0 0 7 * * 6", "0 0 6 * * 1")
	assert.Error(t, err)
}
