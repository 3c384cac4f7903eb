package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	catalogVersionKey = "catalog:version"
	catalogCacheTTL   = 30 * time.Second
)

// The catalog cache is version-stamped: every admin mutation bumps
// catalog:version, which orphans all keys built against the old version.
// Orphaned entries expire via TTL, so no explicit deletion is needed.

func (app *Application) catalogCacheKey(ctx context.Context, date string) (string, error) {
	version, err := app.redis.Get(ctx, catalogVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	return fmt.Sprintf("catalog:moviesdate:%s:v%d", date, version), nil
}

// catalogCacheGet returns the cached movies-by-date payload, or false when
// the cache is disabled, stale, or unreachable.
func (app *Application) catalogCacheGet(ctx context.Context, logger *slog.Logger, date string) ([]byte, bool) {
	if app.redis == nil {
		return nil, false
	}

	key, err := app.catalogCacheKey(ctx, date)
	if err != nil {
		logger.Warn("catalog cache unavailable", "error", err)
		return nil, false
	}

	payload, err := app.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("catalog cache read failed", "error", err)
		}
		return nil, false
	}

	return payload, true
}

func (app *Application) catalogCacheSet(ctx context.Context, logger *slog.Logger, date string, payload []byte) {
	if app.redis == nil {
		return
	}

	key, err := app.catalogCacheKey(ctx, date)
	if err != nil {
		return
	}

	err = app.redis.Set(ctx, key, payload, catalogCacheTTL).Err()
	if err != nil {
		logger.Warn("catalog cache write failed", "error", err)
	}
}

// invalidateCatalogCache bumps the catalog version after an admin mutation.
func (app *Application) invalidateCatalogCache(ctx context.Context, logger *slog.Logger) {
	if app.redis == nil {
		return
	}

	err := app.redis.Incr(ctx, catalogVersionKey).Err()
	if err != nil {
		logger.Warn("catalog cache invalidation failed", "error", err)
	}
}
