package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies ARBSCAN_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known ARBSCAN_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Scan ──
	setDuration(&cfg.Scan.Interval, "ARBSCAN_SCAN_INTERVAL")
	setDuration(&cfg.Scan.Cooldown, "ARBSCAN_SCAN_COOLDOWN")
	setDuration(&cfg.Scan.CollectorTimeout, "ARBSCAN_SCAN_COLLECTOR_TIMEOUT")
	setStringSlice(&cfg.Scan.Venues, "ARBSCAN_SCAN_VENUES")

	// ── Arbitrage ──
	setFloat64(&cfg.Arbitrage.MinSpreadPct, "ARBSCAN_ARBITRAGE_MIN_SPREAD_PCT")
	setFloat64(&cfg.Arbitrage.FeePct, "ARBSCAN_ARBITRAGE_FEE_PCT")

	// ── Polymarket ──
	setStr(&cfg.Polymarket.ClobHost, "ARBSCAN_POLYMARKET_CLOB_HOST")
	setInt(&cfg.Polymarket.MaxMarkets, "ARBSCAN_POLYMARKET_MAX_MARKETS")
	setDuration(&cfg.Polymarket.Timeout, "ARBSCAN_POLYMARKET_TIMEOUT")
	setDuration(&cfg.Polymarket.BookTimeout, "ARBSCAN_POLYMARKET_BOOK_TIMEOUT")

	// ── Opinion ──
	setStr(&cfg.Opinion.BaseURL, "ARBSCAN_OPINION_BASE_URL")
	setStr(&cfg.Opinion.PagePath, "ARBSCAN_OPINION_PAGE_PATH")
	setInt(&cfg.Opinion.MaxRows, "ARBSCAN_OPINION_MAX_ROWS")
	setDuration(&cfg.Opinion.PageWait, "ARBSCAN_OPINION_PAGE_WAIT")

	// ── Kalshi ──
	setStr(&cfg.Kalshi.BaseURL, "ARBSCAN_KALSHI_BASE_URL")
	setInt(&cfg.Kalshi.MaxMarkets, "ARBSCAN_KALSHI_MAX_MARKETS")
	setDuration(&cfg.Kalshi.Timeout, "ARBSCAN_KALSHI_TIMEOUT")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "ARBSCAN_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "ARBSCAN_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "ARBSCAN_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "ARBSCAN_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "ARBSCAN_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "ARBSCAN_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "ARBSCAN_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "ARBSCAN_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "ARBSCAN_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "ARBSCAN_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "ARBSCAN_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "ARBSCAN_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "ARBSCAN_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ARBSCAN_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ARBSCAN_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "ARBSCAN_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "ARBSCAN_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "ARBSCAN_REDIS_TLS_ENABLED")

	// ── Archive ──
	setBool(&cfg.Archive.Enabled, "ARBSCAN_ARCHIVE_ENABLED")
	setStr(&cfg.Archive.Endpoint, "ARBSCAN_ARCHIVE_ENDPOINT")
	setStr(&cfg.Archive.Region, "ARBSCAN_ARCHIVE_REGION")
	setStr(&cfg.Archive.Bucket, "ARBSCAN_ARCHIVE_BUCKET")
	setStr(&cfg.Archive.AccessKey, "ARBSCAN_ARCHIVE_ACCESS_KEY")
	setStr(&cfg.Archive.SecretKey, "ARBSCAN_ARCHIVE_SECRET_KEY")
	setBool(&cfg.Archive.UseSSL, "ARBSCAN_ARCHIVE_USE_SSL")
	setBool(&cfg.Archive.ForcePathStyle, "ARBSCAN_ARCHIVE_FORCE_PATH_STYLE")
	setStr(&cfg.Archive.Prefix, "ARBSCAN_ARCHIVE_PREFIX")

	// ── Metrics ──
	setBool(&cfg.Metrics.Enabled, "ARBSCAN_METRICS_ENABLED")
	setInt(&cfg.Metrics.Port, "ARBSCAN_METRICS_PORT")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "ARBSCAN_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "ARBSCAN_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "ARBSCAN_NOTIFY_DISCORD_WEBHOOK_URL")
	setInt(&cfg.Notify.AlertLimit, "ARBSCAN_NOTIFY_ALERT_LIMIT")
	setDuration(&cfg.Notify.AlertWindow, "ARBSCAN_NOTIFY_ALERT_WINDOW")
	setInt(&cfg.Notify.MaxPerScan, "ARBSCAN_NOTIFY_MAX_PER_SCAN")

	// ── Top-level ──
	setStr(&cfg.Mode, "ARBSCAN_MODE")
	setStr(&cfg.LogLevel, "ARBSCAN_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
