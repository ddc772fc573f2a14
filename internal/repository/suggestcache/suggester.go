// Package suggestcache caches oracle recommendation suggestions in a key-value store.
package suggestcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/db"
	"github.com/nexa-app/nexa/internal/domain/recommend"
)

const cacheKeyPrefix = "suggest:"

// Suggester is the decorated oracle.
type Suggester interface {
	Suggest(ctx context.Context, prompt recommend.Prompt) ([]recommend.Suggestion, error)
}

// store is the consumer interface for the suggestion cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSuggester answers repeated prompts from the cache.
type CachedSuggester struct {
	inner      Suggester
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Suggester,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSuggester {
	return &CachedSuggester{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Suggest returns cached suggestions or calls the inner oracle. Only non-empty
// successful answers are cached, so fallbacks are never pinned.
func (c *CachedSuggester) Suggest(ctx context.Context, prompt recommend.Prompt) ([]recommend.Suggestion, error) {
	key := c.cacheKey(prompt)

	if cached, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return cached, nil
	}

	c.incCache("miss")

	suggestions, err := c.inner.Suggest(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	if len(suggestions) > 0 {
		c.putToCache(ctx, key, suggestions)
	}
	return suggestions, nil
}

func (c *CachedSuggester) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSuggester) cacheKey(p recommend.Prompt) string {
	h := sha256.Sum256([]byte(p.Key()))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSuggester) getFromCache(ctx context.Context, key string) ([]recommend.Suggestion, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached suggestions", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var out []recommend.Suggestion
	if err := json.Unmarshal(data, &out); err != nil {
		c.logger.Warn("Failed to parse cached suggestions", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func (c *CachedSuggester) putToCache(ctx context.Context, key string, s []recommend.Suggestion) {
	data, err := json.Marshal(s)
	if err != nil {
		c.logger.Warn("Failed to encode suggestions", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache suggestions", zap.String("key", key), zap.Error(err))
	}
}
