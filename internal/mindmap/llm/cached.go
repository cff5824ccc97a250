package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/kobex777/AnyMaps/internal/cache"
	"github.com/kobex777/AnyMaps/internal/logging"
)

// CachedGateway answers repeated identical completions from a cache.
// Only successful completions are stored.
type CachedGateway struct {
	next  Gateway
	store cache.Store
}

// WithCache wraps next. A nil store returns next unchanged.
func WithCache(next Gateway, store cache.Store) Gateway {
	if store == nil {
		return next
	}
	return &CachedGateway{next: next, store: store}
}

func (g *CachedGateway) Complete(ctx context.Context, c Completion) (string, error) {
	logger := logging.NewLogger(ctx)
	key, err := CacheKey(c)
	if err != nil {
		return g.next.Complete(ctx, c)
	}

	if v, err := g.store.Get(ctx, key); err == nil {
		recordCacheHit()
		logger.LogInfof("cache", "hit backend=%s task=%s", g.store.Name(), c.Task)
		return v, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.LogWarnf("cache", "get failed backend=%s: %v", g.store.Name(), err)
	}
	recordCacheMiss()

	text, err := g.next.Complete(ctx, c)
	if err != nil {
		return "", err
	}
	if err := g.store.Set(ctx, key, text); err != nil {
		logger.LogWarnf("cache", "set failed backend=%s: %v", g.store.Name(), err)
	}
	return text, nil
}

// CacheKey hashes every field of c, so any change in model, prompt,
// image or sampling parameters yields a new key.
func CacheKey(c Completion) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
