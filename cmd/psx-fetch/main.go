// psx-fetch downloads historical EOD data for one or more PSX tickers,
// derives indicators and signals, and writes one CSV per symbol.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"StockGenie/internal/collector"
	"StockGenie/internal/logger"
	"StockGenie/internal/model"
)

const dateFlagLayout = "2006-01-02"

func main() {
	var (
		symbolsFlag = flag.String("symbols", "", "comma-separated tickers (e.g. BOP,HBL)")
		symbolsFile = flag.String("symbols-file", "", "one-ticker-per-line file, alternative to -symbols")
		startFlag   = flag.String("start", "", "window start, YYYY-MM-DD (default: 1 year ago)")
		endFlag     = flag.String("end", "", "window end, YYYY-MM-DD (default: today)")
		outDir      = flag.String("out", "data", "output directory for CSV files")
		historyURL  = flag.String("url", "https://dps.psx.com.pk/historical", "historical data endpoint")
		workers     = flag.Int("workers", collector.DefaultWorkers, "concurrent fetch workers")
		logLevel    = flag.String("log-level", "info", "debug, info, warn, error")
	)
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: "pretty"}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	symbols, err := resolveSymbols(*symbolsFlag, *symbolsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve symbols")
	}

	end := time.Now().UTC()
	start := end.AddDate(-1, 0, 0)
	if *startFlag != "" {
		if start, err = time.Parse(dateFlagLayout, *startFlag); err != nil {
			log.Fatal().Err(err).Msg("parse -start")
		}
	}
	if *endFlag != "" {
		if end, err = time.Parse(dateFlagLayout, *endFlag); err != nil {
			log.Fatal().Err(err).Msg("parse -end")
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output directory")
	}

	fetcher := collector.NewPSXFetcher(*historyURL, 30*time.Second)
	col := collector.New(fetcher, *workers, 3, 2*time.Second)
	col.OnProgress(func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r  %d/%d units", done, total)
	})

	ctx := context.Background()
	for _, symbol := range symbols {
		log.Info().Str("symbol", symbol).
			Str("start", start.Format(dateFlagLayout)).
			Str("end", end.Format(dateFlagLayout)).
			Msg("fetching")

		series, err := col.SafeStock(ctx, symbol, start, end)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Error().Str("symbol", symbol).Err(err).Msg("fetch failed")
			continue
		}
		if series.Empty() {
			log.Warn().Str("symbol", symbol).Msg("no data in window")
			continue
		}

		path := filepath.Join(*outDir, symbol+".csv")
		if err := writeCSV(path, series); err != nil {
			log.Error().Str("symbol", symbol).Err(err).Msg("write csv")
			continue
		}

		buy, sell, neutral := signalCounts(series)
		log.Info().
			Str("symbol", symbol).
			Int("rows", len(series.Rows)).
			Int("buy", buy).
			Int("sell", sell).
			Int("neutral", neutral).
			Str("path", path).
			Msg("saved")
	}
}

func resolveSymbols(list, file string) ([]string, error) {
	if list != "" {
		var out []string
		for _, s := range strings.Split(list, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, strings.ToUpper(s))
			}
		}
		return out, nil
	}
	if file != "" {
		return collector.LoadSymbolsFile(file)
	}
	return nil, fmt.Errorf("one of -symbols or -symbols-file is required")
}

func writeCSV(path string, s model.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume",
		"SMA_30", "RSI", "Price_Change_Pct", "Signal"}); err != nil {
		return err
	}
	for _, row := range s.Rows {
		rec := []string{
			row.Date.Format(dateFlagLayout),
			formatFloat(row.Open),
			formatFloat(row.High),
			formatFloat(row.Low),
			formatFloat(row.Close),
			formatFloat(row.Volume),
			formatFloat(row.SMA30),
			formatFloat(row.RSI),
			formatFloat(row.PriceChangePct),
			string(row.Signal),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func signalCounts(s model.Series) (buy, sell, neutral int) {
	for _, row := range s.Rows {
		switch row.Signal {
		case model.SignalBuy:
			buy++
		case model.SignalSell:
			sell++
		default:
			neutral++
		}
	}
	return buy, sell, neutral
}
