package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		HistoryURL     string `yaml:"history_url"`
		SymbolsURL     string `yaml:"symbols_url"`
		Workers        int    `yaml:"workers"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"data_source"`
	Retry struct {
		Attempts     int `yaml:"attempts"`
		DelaySeconds int `yaml:"delay_seconds"`
	} `yaml:"retry"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
		RecentDays int    `yaml:"recent_days"`
	} `yaml:"cache"`
	Symbols struct {
		FilePath string `yaml:"file_path"`
	} `yaml:"symbols"`
	Schedule struct {
		UpdateCron   string `yaml:"update_cron"`
		SnapshotCron string `yaml:"snapshot_cron"`
		SymbolsCron  string `yaml:"symbols_cron"`
	} `yaml:"schedule"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	Logging struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		FilePath string `yaml:"file_path"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PSX_HISTORY_URL"); v != "" {
		cfg.DataSource.HistoryURL = v
	}
	if v := os.Getenv("PSX_SYMBOLS_URL"); v != "" {
		cfg.DataSource.SymbolsURL = v
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.Workers = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("SYMBOLS_FILE"); v != "" {
		cfg.Symbols.FilePath = v
	}
	if v := os.Getenv("CRON_UPDATE"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.DataSource.HistoryURL == "" {
		cfg.DataSource.HistoryURL = "https://dps.psx.com.pk/historical"
	}
	if cfg.DataSource.SymbolsURL == "" {
		cfg.DataSource.SymbolsURL = "https://dps.psx.com.pk/symbols"
	}
	if cfg.DataSource.Workers == 0 {
		cfg.DataSource.Workers = 6
	}
	if cfg.DataSource.TimeoutSeconds == 0 {
		cfg.DataSource.TimeoutSeconds = 30
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry.Attempts = 3
	}
	if cfg.Retry.DelaySeconds == 0 {
		cfg.Retry.DelaySeconds = 2
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/stock_genie.db"
	}
	if cfg.Cache.RecentDays == 0 {
		cfg.Cache.RecentDays = 5
	}
	if cfg.Symbols.FilePath == "" {
		cfg.Symbols.FilePath = "data/psx_symbols.txt"
	}
	if cfg.Schedule.UpdateCron == "" {
		// after market close, Monday-Friday (PKT)
		cfg.Schedule.UpdateCron = "0 30 17 * * 1-5"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 0 7 * * 6"
	}
	if cfg.Schedule.SymbolsCron == "" {
		cfg.Schedule.SymbolsCron = "0 0 6 * * 1"
	}
	if cfg.Metrics.ListenAddr == "" {
		cfg.Metrics.ListenAddr = ":9185"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "pretty"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.DataSource.HistoryURL == "" {
		return fmt.Errorf("data_source.history_url is required")
	}
	if c.DataSource.SymbolsURL == "" {
		return fmt.Errorf("data_source.symbols_url is required")
	}
	if c.DataSource.Workers <= 0 {
		return fmt.Errorf("data_source.workers must be positive")
	}
	if c.Retry.Attempts <= 0 {
		return fmt.Errorf("retry.attempts must be positive")
	}
	if c.Cache.RecentDays <= 0 {
		return fmt.Errorf("cache.recent_days must be positive")
	}
	return nil
}
