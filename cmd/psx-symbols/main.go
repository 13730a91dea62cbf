// psx-symbols refreshes the equity tickers file from the exchange's
// symbols endpoint, dropping debt and ETF instruments.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"StockGenie/internal/collector"
	"StockGenie/internal/logger"
)

func main() {
	var (
		symbolsURL = flag.String("url", "https://dps.psx.com.pk/symbols", "symbols endpoint")
		outFile    = flag.String("out", "data/psx_symbols.txt", "output file, one ticker per line")
		logLevel   = flag.String("log-level", "info", "debug, info, warn, error")
	)
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: "pretty"}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	infos, err := collector.FetchSymbols(ctx, *symbolsURL)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch symbols")
	}

	symbols := collector.EquitySymbols(infos)
	if err := collector.SaveSymbolsFile(*outFile, symbols); err != nil {
		log.Fatal().Err(err).Msg("write symbols file")
	}

	log.Info().
		Int("total", len(infos)).
		Int("equities", len(symbols)).
		Str("path", *outFile).
		Msg("symbols file refreshed")
}
