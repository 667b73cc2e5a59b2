package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quantfold/arbscan/internal/arbitrage"
	s3blob "github.com/quantfold/arbscan/internal/blob/s3"
	"github.com/quantfold/arbscan/internal/cache/redis"
	"github.com/quantfold/arbscan/internal/collector"
	"github.com/quantfold/arbscan/internal/collector/kalshi"
	"github.com/quantfold/arbscan/internal/collector/opinion"
	"github.com/quantfold/arbscan/internal/collector/polymarket"
	"github.com/quantfold/arbscan/internal/config"
	"github.com/quantfold/arbscan/internal/domain"
	"github.com/quantfold/arbscan/internal/metrics"
	"github.com/quantfold/arbscan/internal/notify"
	"github.com/quantfold/arbscan/internal/store/postgres"
)

// Dependencies bundles everything the operating modes need. It is built by
// Wire and torn down by the returned cleanup function. Optional backends
// stay nil when disabled in the configuration.
type Dependencies struct {
	Collectors *collector.Registry
	Engine     *arbitrage.Engine

	Store       domain.OpportunityStore // nil unless postgres is enabled
	PriceCache  domain.PriceCache       // nil unless redis is enabled
	RateLimiter domain.RateLimiter      // nil unless redis is enabled
	BlobWriter  domain.BlobWriter       // nil unless archival is enabled

	Alerter       *notify.Alerter
	AlertsEnabled bool

	Metrics *metrics.Metrics

	// Health checks the wired backends, exposed on /healthz.
	Health metrics.HealthFunc
}

// Wire constructs all concrete dependencies from the configuration and
// returns them with a cleanup function to call on shutdown.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		Metrics: metrics.New(),
	}

	engine, err := arbitrage.NewEngine(arbitrage.Config{
		MinSpreadPct: cfg.Arbitrage.MinSpreadPct,
		FeePct:       cfg.Arbitrage.FeePct,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("wire: engine: %w", err)
	}
	deps.Engine = engine

	// --- Collectors ---
	registry := collector.NewRegistry()
	registry.Register(polymarket.NewCollector(
		polymarket.NewClient(cfg.Polymarket.ClobHost, cfg.Polymarket.Timeout.Duration),
		polymarket.CollectorConfig{
			MaxMarkets:  cfg.Polymarket.MaxMarkets,
			BookTimeout: cfg.Polymarket.BookTimeout.Duration,
		},
		logger,
	))
	registry.Register(kalshi.NewCollector(
		kalshi.NewClient(cfg.Kalshi.BaseURL, cfg.Kalshi.Timeout.Duration),
		kalshi.CollectorConfig{MaxMarkets: cfg.Kalshi.MaxMarkets},
		logger,
	))
	registry.Register(opinion.NewCollector(opinion.Config{
		BaseURL:  cfg.Opinion.BaseURL,
		PagePath: cfg.Opinion.PagePath,
		MaxRows:  cfg.Opinion.MaxRows,
		PageWait: cfg.Opinion.PageWait.Duration,
	}, logger))
	closers = append(closers, registry.Close)
	deps.Collectors = registry

	var healthFns []metrics.HealthFunc

	// --- PostgreSQL (opportunity history) ---
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		deps.Store = postgres.NewOpportunityStore(pgClient.Pool())
		healthFns = append(healthFns, func(ctx context.Context) error {
			return pgClient.Pool().Ping(ctx)
		})
	}

	// --- Redis (price cache, alert throttle) ---
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.PriceCache = redis.NewPriceCache(redisClient)
		deps.RateLimiter = redis.NewRateLimiter(redisClient)
		healthFns = append(healthFns, redisClient.Ping)
	}

	// --- S3 scan archive ---
	if cfg.Archive.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.Archive.Endpoint,
			Region:         cfg.Archive.Region,
			Bucket:         cfg.Archive.Bucket,
			AccessKey:      cfg.Archive.AccessKey,
			SecretKey:      cfg.Archive.SecretKey,
			UseSSL:         cfg.Archive.UseSSL,
			ForcePathStyle: cfg.Archive.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		deps.BlobWriter = s3blob.NewWriter(s3Client)
	}

	// --- Alert channels ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Alerter = notify.NewAlerter(senders, logger)
	deps.AlertsEnabled = len(senders) > 0

	deps.Health = func(ctx context.Context) error {
		for _, fn := range healthFns {
			if err := fn(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	return deps, cleanup, nil
}
