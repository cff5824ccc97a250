package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kobex777/AnyMaps/config"
	httpapi "github.com/kobex777/AnyMaps/internal/api/http"
	"github.com/kobex777/AnyMaps/internal/cache"
)

// CacheHandle bundles the configured completion cache with its health probe
// and cleanup. Store and Pinger are nil when caching is off.
type CacheHandle struct {
	Store  cache.Store
	Pinger httpapi.Pinger
	Close  func() error
}

// OpenCache builds the completion cache selected by CACHE_BACKEND.
func OpenCache(ctx context.Context, cfg config.CacheConfig) (*CacheHandle, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "none":
		return &CacheHandle{Close: noop}, nil

	case "memory":
		slog.Info("completion cache enabled", "backend", "memory", "size", cfg.Size, "ttl", cfg.TTL)
		return &CacheHandle{Store: cache.NewMemoryStore(cfg.Size, cfg.TTL), Close: noop}, nil

	case "redis":
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		store, err := cache.NewRedisStoreFromURL(cctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		slog.Info("completion cache enabled", "backend", "redis", "ttl", cfg.TTL)
		return &CacheHandle{Store: store, Pinger: store, Close: store.Close}, nil
	}

	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
