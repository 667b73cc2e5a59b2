package domain

import (
	"context"
	"time"
)

// PriceCache stores the latest observed mid price per venue and group key.
// Writes are best-effort: a cache failure must never fail a scan.
type PriceCache interface {
	SetMid(ctx context.Context, platform, key string, mid float64, ts time.Time) error
	GetMid(ctx context.Context, platform, key string) (float64, time.Time, error)
}

// RateLimiter bounds how often a keyed action may run. Used to keep repeated
// opportunities across scans from flooding alert channels.
type RateLimiter interface {
	// Allow reports whether one more action for key is permitted within the
	// sliding window, counting the action when it is.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
