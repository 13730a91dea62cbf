// Package store persists the trailing-days cache that feeds the dashboard
// and the gainers/losers snapshot: only the most recent few trading days
// per symbol, never the full history.
package store

import "StockGenie/internal/model"

// Store is the recent-days cache. Append is idempotent by date: a row whose
// date string is already cached is ignored, and the cache is trimmed to the
// configured number of most recent days.
type Store interface {
	Append(symbol string, row model.Row) (added bool, err error)
	ReplaceRecent(symbol string, rows []model.Row) error
	RecentDays(symbol string) ([]model.Row, error)
	All() (map[string][]model.Row, error)
	Close() error
}
