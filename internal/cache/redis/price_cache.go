package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quantfold/arbscan/internal/domain"
)

// midTTL bounds how long a published mid stays readable. Scans refresh live
// keys well inside this window, so anything older is a stale venue.
const midTTL = time.Hour

// PriceCache implements domain.PriceCache using Redis hashes. The latest
// mid per venue and group key lives at "mid:{platform}:{key}" with fields
// "mid" and "ts" (Unix nanoseconds).
type PriceCache struct {
	rdb *redis.Client
}

// NewPriceCache creates a PriceCache backed by the given Client.
func NewPriceCache(c *Client) *PriceCache {
	return &PriceCache{rdb: c.Underlying()}
}

func midKey(platform, key string) string {
	return "mid:" + platform + ":" + key
}

// SetMid stores the latest mid and observation time for one venue and
// group key.
func (pc *PriceCache) SetMid(ctx context.Context, platform, key string, mid float64, ts time.Time) error {
	k := midKey(platform, key)
	fields := map[string]any{
		"mid": strconv.FormatFloat(mid, 'f', -1, 64),
		"ts":  strconv.FormatInt(ts.UnixNano(), 10),
	}

	pipe := pc.rdb.Pipeline()
	pipe.HSet(ctx, k, fields)
	pipe.Expire(ctx, k, midTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set mid %s: %w", k, err)
	}
	return nil
}

// GetMid retrieves the latest mid and observation time for one venue and
// group key. It returns domain.ErrNotFound when no value is cached.
func (pc *PriceCache) GetMid(ctx context.Context, platform, key string) (float64, time.Time, error) {
	k := midKey(platform, key)
	vals, err := pc.rdb.HGetAll(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis: get mid %s: %w", k, err)
	}
	if len(vals) == 0 {
		return 0, time.Time{}, domain.ErrNotFound
	}

	mid, err := strconv.ParseFloat(vals["mid"], 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis: parse mid %s: %w", k, err)
	}
	tsNano, err := strconv.ParseInt(vals["ts"], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis: parse ts %s: %w", k, err)
	}
	return mid, time.Unix(0, tsNano), nil
}

var _ domain.PriceCache = (*PriceCache)(nil)
