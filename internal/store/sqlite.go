package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"StockGenie/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore keeps the recent-days cache in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	keep int
}

// NewSQLiteStore opens (or creates) the database, runs migrations, and
// keeps the last `keep` trading days per symbol.
func NewSQLiteStore(dbPath string, keep int) (*SQLiteStore, error) {
	if keep <= 0 {
		keep = 5
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads do not block the nightly writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, keep: keep}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Int("keep", keep).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS recent_days (
			symbol           TEXT NOT NULL,
			date             TEXT NOT NULL,
			open             REAL,
			high             REAL,
			low              REAL,
			close            REAL,
			volume           REAL,
			sma_30           REAL,
			rsi              REAL,
			price_change_pct REAL,
			signal           TEXT,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recent_symbol ON recent_days(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Append inserts the row unless its date is already cached, then trims the
// symbol's cache to the most recent keep days. Returns whether a row was
// actually added.
func (s *SQLiteStore) Append(symbol string, row model.Row) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`INSERT OR IGNORE INTO recent_days
		(symbol, date, open, high, low, close, volume, sma_30, rsi, price_change_pct, signal)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		symbol, row.Date.Format(dateLayout),
		row.Open, row.High, row.Low, row.Close, row.Volume,
		row.SMA30, row.RSI, row.PriceChangePct, string(row.Signal),
	)
	if err != nil {
		return false, fmt.Errorf("append %s: %w", symbol, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return true, s.trim(symbol)
}

func (s *SQLiteStore) trim(symbol string) error {
	_, err := s.db.Exec(`DELETE FROM recent_days WHERE symbol = ? AND date NOT IN (
		SELECT date FROM recent_days WHERE symbol = ? ORDER BY date DESC LIMIT ?)`,
		symbol, symbol, s.keep)
	if err != nil {
		return fmt.Errorf("trim %s: %w", symbol, err)
	}
	return nil
}

// ReplaceRecent swaps a symbol's cached window wholesale (snapshot rebuild).
func (s *SQLiteStore) ReplaceRecent(symbol string, rows []model.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM recent_days WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("clear %s: %w", symbol, err)
	}
	for _, row := range rows {
		if _, err := tx.Exec(`INSERT INTO recent_days
			(symbol, date, open, high, low, close, volume, sma_30, rsi, price_change_pct, signal)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			symbol, row.Date.Format(dateLayout),
			row.Open, row.High, row.Low, row.Close, row.Volume,
			row.SMA30, row.RSI, row.PriceChangePct, string(row.Signal),
		); err != nil {
			return fmt.Errorf("insert %s %s: %w", symbol, row.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// RecentDays returns a symbol's cached rows, oldest first.
func (s *SQLiteStore) RecentDays(symbol string) ([]model.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume,
		sma_30, rsi, price_change_pct, signal
		FROM recent_days WHERE symbol = ? ORDER BY date ASC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", symbol, err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// All returns every symbol's cached rows, oldest first per symbol.
func (s *SQLiteStore) All() (map[string][]model.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, date, open, high, low, close, volume,
		sma_30, rsi, price_change_pct, signal
		FROM recent_days ORDER BY symbol, date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.Row)
	for rows.Next() {
		var symbol string
		var dateStr, signal string
		var r model.Row
		if err := rows.Scan(&symbol, &dateStr, &r.Open, &r.High, &r.Low, &r.Close,
			&r.Volume, &r.SMA30, &r.RSI, &r.PriceChangePct, &signal); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		r.Date, _ = time.Parse(dateLayout, dateStr)
		r.Signal = model.Signal(signal)
		out[symbol] = append(out[symbol], r)
	}
	return out, rows.Err()
}

func scanRow(rows *sql.Rows) (model.Row, error) {
	var dateStr, signal string
	var r model.Row
	if err := rows.Scan(&dateStr, &r.Open, &r.High, &r.Low, &r.Close,
		&r.Volume, &r.SMA30, &r.RSI, &r.PriceChangePct, &signal); err != nil {
		return model.Row{}, fmt.Errorf("scan: %w", err)
	}
	r.Date, _ = time.Parse(dateLayout, dateStr)
	r.Signal = model.Signal(signal)
	return r, nil
}

func (s *SQLiteStore) Close() error {
	log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
