package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// FetchError is a transport-level failure for one fetch unit: network error,
// timeout, or a non-200 response. The aggregator drops the affected unit;
// only the whole-symbol retry wrapper treats these as worth retrying.
type FetchError struct {
	Symbol string
	Unit   time.Time
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Symbol, e.Unit.Format("2006-01"), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher hands out sessions for the worker pool. Each worker owns exactly
// one Session for its lifetime, so connection state is never shared across
// goroutines and reuse stays within a worker.
type Fetcher interface {
	NewSession() Session
	Name() string
}

// Session retrieves the raw markup for one (symbol, unit) page.
type Session interface {
	Fetch(ctx context.Context, symbol string, unit time.Time) (string, error)
}

// PSXFetcher fetches historical pages from the PSX data portal. The
// endpoint takes a form POST of {month, year, symbol} and answers with an
// HTML table of daily rows for that month.
type PSXFetcher struct {
	HistoryURL string
	Timeout    time.Duration
	UserAgent  string
}

// NewPSXFetcher creates a fetcher against the given historical endpoint.
func NewPSXFetcher(historyURL string, timeout time.Duration) *PSXFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PSXFetcher{
		HistoryURL: historyURL,
		Timeout:    timeout,
		UserAgent:  defaultUserAgent,
	}
}

func (f *PSXFetcher) Name() string { return "psx" }

// NewSession returns a session backed by its own http.Client.
func (f *PSXFetcher) NewSession() Session {
	return &psxSession{
		fetcher: f,
		client:  &http.Client{Timeout: f.Timeout},
	}
}

type psxSession struct {
	fetcher *PSXFetcher
	client  *http.Client
}

func (s *psxSession) Fetch(ctx context.Context, symbol string, unit time.Time) (string, error) {
	form := url.Values{
		"month":  {strconv.Itoa(int(unit.Month()))},
		"year":   {strconv.Itoa(unit.Year())},
		"symbol": {symbol},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.fetcher.HistoryURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", &FetchError{Symbol: symbol, Unit: unit, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.fetcher.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &FetchError{Symbol: symbol, Unit: unit, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Symbol: symbol, Unit: unit, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Symbol: symbol, Unit: unit,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return string(body), nil
}
