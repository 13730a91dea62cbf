package collector

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// SymbolInfo is one entry of the exchange's symbols endpoint.
type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	IsDebt bool   `json:"isDebt"`
	IsETF  bool   `json:"isETF"`
}

// FetchSymbols retrieves the full instrument list from the symbols endpoint.
func FetchSymbols(ctx context.Context, symbolsURL string) ([]SymbolInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, symbolsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch symbols: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("symbols endpoint: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read symbols body: %w", err)
	}

	var infos []SymbolInfo
	if err := json.Unmarshal(body, &infos); err != nil {
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	return infos, nil
}

// EquitySymbols filters out debt and ETF instruments, keeping plain equity
// tickers only.
func EquitySymbols(infos []SymbolInfo) []string {
	var out []string
	for _, s := range infos {
		if s.IsDebt || s.IsETF || s.Symbol == "" {
			continue
		}
		out = append(out, s.Symbol)
	}
	return out
}

// SaveSymbolsFile writes one ticker per line.
func SaveSymbolsFile(path string, symbols []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create symbols file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, s := range symbols {
		if _, err := w.WriteString(s + "\n"); err != nil {
			return fmt.Errorf("write symbols file: %w", err)
		}
	}
	return w.Flush()
}

// LoadSymbolsFile reads a one-ticker-per-line file, skipping blanks.
func LoadSymbolsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols file: %w", err)
	}
	defer f.Close()

	var symbols []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			symbols = append(symbols, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbols file: %w", err)
	}
	return symbols, nil
}
