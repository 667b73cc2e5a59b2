package config

import (
	"strings"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Arbitrage.MinSpreadPct != 2.5 {
		t.Errorf("default min_spread_pct = %g, want 2.5", cfg.Arbitrage.MinSpreadPct)
	}
	if cfg.Arbitrage.FeePct != 1.0 {
		t.Errorf("default fee_pct = %g, want 1.0", cfg.Arbitrage.FeePct)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative min spread fails fast",
			mutate:  func(c *Config) { c.Arbitrage.MinSpreadPct = -2.5 },
			wantErr: "min_spread_pct",
		},
		{
			name:    "negative fee fails fast",
			mutate:  func(c *Config) { c.Arbitrage.FeePct = -1 },
			wantErr: "fee_pct",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "turbo" },
			wantErr: "unknown mode",
		},
		{
			name:    "no venues",
			mutate:  func(c *Config) { c.Scan.Venues = nil },
			wantErr: "at least one venue",
		},
		{
			name:    "telegram credentials must pair",
			mutate:  func(c *Config) { c.Notify.TelegramToken = "t0k3n" },
			wantErr: "telegram",
		},
		{
			name:    "report mode requires postgres settings",
			mutate:  func(c *Config) { c.Mode = "report"; c.Postgres.Host = "" },
			wantErr: "postgres",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARBSCAN_ARBITRAGE_MIN_SPREAD_PCT", "4.2")
	t.Setenv("ARBSCAN_SCAN_INTERVAL", "30s")
	t.Setenv("ARBSCAN_SCAN_VENUES", "polymarket, opinion ,")
	t.Setenv("ARBSCAN_LOG_LEVEL", "debug")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.Arbitrage.MinSpreadPct != 4.2 {
		t.Errorf("min_spread_pct = %g, want 4.2", cfg.Arbitrage.MinSpreadPct)
	}
	if cfg.Scan.Interval.Seconds() != 30 {
		t.Errorf("interval = %s, want 30s", cfg.Scan.Interval)
	}
	if len(cfg.Scan.Venues) != 2 || cfg.Scan.Venues[1] != "opinion" {
		t.Errorf("venues = %v, want [polymarket opinion]", cfg.Scan.Venues)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
}

func TestRedactedConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.Password = "hunter2"
	cfg.Notify.TelegramToken = "123:abc"

	red := RedactedConfig(&cfg)
	if red.Postgres.Password != "***" {
		t.Errorf("password not redacted: %q", red.Postgres.Password)
	}
	if red.Notify.TelegramToken != "***" {
		t.Errorf("telegram token not redacted: %q", red.Notify.TelegramToken)
	}
	// The original must be untouched.
	if cfg.Postgres.Password != "hunter2" {
		t.Error("redaction mutated the source config")
	}

	red.Scan.Venues[0] = "mutated"
	if cfg.Scan.Venues[0] == "mutated" {
		t.Error("redacted copy shares the venues slice with the source")
	}
}
