// Package config defines the top-level configuration for the arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by ARBSCAN_* environment
// variables.
type Config struct {
	Scan       ScanConfig       `toml:"scan"`
	Arbitrage  ArbitrageConfig  `toml:"arbitrage"`
	Polymarket PolymarketConfig `toml:"polymarket"`
	Opinion    OpinionConfig    `toml:"opinion"`
	Kalshi     KalshiConfig     `toml:"kalshi"`
	Postgres   PostgresConfig   `toml:"postgres"`
	Redis      RedisConfig      `toml:"redis"`
	Archive    ArchiveConfig    `toml:"archive"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Notify     NotifyConfig     `toml:"notify"`
	Mode       string           `toml:"mode"`
	LogLevel   string           `toml:"log_level"`
}

// ScanConfig controls the scan loop.
type ScanConfig struct {
	// Interval between scan starts.
	Interval duration `toml:"interval"`
	// Cooldown slept after a failed iteration before the next scan.
	Cooldown duration `toml:"cooldown"`
	// CollectorTimeout bounds each venue fetch within one scan.
	CollectorTimeout duration `toml:"collector_timeout"`
	// Venues selects which collectors run; must match registered names.
	Venues []string `toml:"venues"`
}

// ArbitrageConfig holds the engine tunables.
type ArbitrageConfig struct {
	// MinSpreadPct is the minimum fee-adjusted spread in percent.
	MinSpreadPct float64 `toml:"min_spread_pct"`
	// FeePct is the per-leg fee in percent, charged on both legs.
	FeePct float64 `toml:"fee_pct"`
}

// PolymarketConfig holds Polymarket API endpoints and fetch bounds.
type PolymarketConfig struct {
	ClobHost   string   `toml:"clob_host"`
	MaxMarkets int      `toml:"max_markets"`
	Timeout    duration `toml:"timeout"`
	// BookTimeout bounds each per-market orderbook request.
	BookTimeout duration `toml:"book_timeout"`
}

// OpinionConfig holds parameters for the browser-scraped venue.
type OpinionConfig struct {
	BaseURL  string   `toml:"base_url"`
	PagePath string   `toml:"page_path"`
	MaxRows  int      `toml:"max_rows"`
	PageWait duration `toml:"page_wait"`
}

// KalshiConfig holds Kalshi exchange API parameters. Market data endpoints
// are public; no credentials are needed for scanning.
type KalshiConfig struct {
	BaseURL    string   `toml:"base_url"`
	MaxMarkets int      `toml:"max_markets"`
	Timeout    duration `toml:"timeout"`
}

// PostgresConfig holds PostgreSQL connection parameters for the opportunity
// history store.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters for the price cache and
// alert rate limiter.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ArchiveConfig holds S3-compatible object storage parameters for raw scan
// batch archival.
type ArchiveConfig struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
	Prefix         string `toml:"prefix"`
}

// MetricsConfig holds the Prometheus endpoint parameters.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// NotifyConfig holds notification channel credentials and alert throttling.
type NotifyConfig struct {
	TelegramToken     string `toml:"telegram_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
	// AlertLimit and AlertWindow throttle repeat alerts per event key.
	AlertLimit  int      `toml:"alert_limit"`
	AlertWindow duration `toml:"alert_window"`
	// MaxPerScan caps how many opportunities one scan may alert on.
	MaxPerScan int `toml:"max_per_scan"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "10s", "5m").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Scan: ScanConfig{
			Interval:         duration{10 * time.Second},
			Cooldown:         duration{10 * time.Second},
			CollectorTimeout: duration{30 * time.Second},
			Venues:           []string{"polymarket", "opinion"},
		},
		Arbitrage: ArbitrageConfig{
			MinSpreadPct: 2.5,
			FeePct:       1.0,
		},
		Polymarket: PolymarketConfig{
			ClobHost:    "https://clob.polymarket.com",
			MaxMarkets:  50,
			Timeout:     duration{10 * time.Second},
			BookTimeout: duration{5 * time.Second},
		},
		Opinion: OpinionConfig{
			BaseURL:  "https://app.opinion.trade",
			PagePath: "/macro",
			MaxRows:  50,
			PageWait: duration{15 * time.Second},
		},
		Kalshi: KalshiConfig{
			BaseURL:    "https://api.elections.kalshi.com/trade-api/v2",
			MaxMarkets: 50,
			Timeout:    duration{10 * time.Second},
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          5432,
			Database:      "arbscan",
			User:          "arbscan",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
		},
		Archive: ArchiveConfig{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "arbscan-data",
			ForcePathStyle: true,
			Prefix:         "scans",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
		Notify: NotifyConfig{
			AlertLimit:  1,
			AlertWindow: duration{5 * time.Minute},
			MaxPerScan:  5,
		},
		Mode:     "scan",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"scan":   true, // continuous scan loop
	"once":   true, // single scan, then exit
	"report": true, // print recent stored opportunities, then exit
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, once, report)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Scan loop
	if c.Scan.Interval.Duration <= 0 {
		errs = append(errs, "scan: interval must be positive")
	}
	if c.Scan.Cooldown.Duration <= 0 {
		errs = append(errs, "scan: cooldown must be positive")
	}
	if c.Scan.CollectorTimeout.Duration <= 0 {
		errs = append(errs, "scan: collector_timeout must be positive")
	}
	if len(c.Scan.Venues) == 0 {
		errs = append(errs, "scan: at least one venue must be configured")
	}

	// Engine tunables are programmer-error territory: fail fast, do not
	// silently clamp.
	if c.Arbitrage.MinSpreadPct < 0 {
		errs = append(errs, fmt.Sprintf("arbitrage: min_spread_pct must be >= 0, got %g", c.Arbitrage.MinSpreadPct))
	}
	if c.Arbitrage.FeePct < 0 {
		errs = append(errs, fmt.Sprintf("arbitrage: fee_pct must be >= 0, got %g", c.Arbitrage.FeePct))
	}

	// Polymarket
	if c.Polymarket.ClobHost == "" {
		errs = append(errs, "polymarket: clob_host must not be empty")
	}
	if c.Polymarket.MaxMarkets <= 0 {
		errs = append(errs, "polymarket: max_markets must be positive")
	}

	// Opinion
	if c.Opinion.BaseURL == "" {
		errs = append(errs, "opinion: base_url must not be empty")
	}
	if c.Opinion.MaxRows <= 0 {
		errs = append(errs, "opinion: max_rows must be positive")
	}

	// Kalshi
	if c.Kalshi.BaseURL == "" {
		errs = append(errs, "kalshi: base_url must not be empty")
	}
	if c.Kalshi.MaxMarkets <= 0 {
		errs = append(errs, "kalshi: max_markets must be positive")
	}

	// Postgres
	if c.Postgres.Enabled || c.Mode == "report" {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 || c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must be between 0 and pool_max_conns")
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	// Archive
	if c.Archive.Enabled {
		if c.Archive.Bucket == "" {
			errs = append(errs, "archive: bucket must not be empty")
		}
		if c.Archive.Region == "" {
			errs = append(errs, "archive: region must not be empty")
		}
	}

	// Metrics
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			errs = append(errs, fmt.Sprintf("metrics: port must be 1-65535, got %d", c.Metrics.Port))
		}
	}

	// Notify — telegram credentials must be set together.
	tg := c.Notify.TelegramToken != ""
	tc := c.Notify.TelegramChatID != ""
	if tg != tc {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}
	if c.Notify.AlertLimit < 0 {
		errs = append(errs, "notify: alert_limit must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
