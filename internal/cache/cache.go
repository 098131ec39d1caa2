package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"staffdir/internal/entity"
)

const searchKeyPrefix = "profiles:search:"

// SearchCache caches profile search results in redis for a short window.
// It is a pure accelerator: a nil client or any redis failure degrades to a
// cache miss, never to a request failure.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache wraps the provided redis client. The client may be nil, in
// which case every lookup misses and every store is a no-op.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &SearchCache{client: client, ttl: ttl}
}

// SearchKey normalises a search term to its cache key. Terms differing only
// in case share one entry.
func SearchKey(term string) string {
	return searchKeyPrefix + strings.ToLower(strings.TrimSpace(term))
}

// GetSearch returns the cached result set for the term, with ok reporting a
// hit. Errors are logged and reported as misses.
func (c *SearchCache) GetSearch(ctx context.Context, term string) ([]entity.ProfileSearchItem, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, SearchKey(term)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("term", term).Warn("search cache read failed")
		}
		return nil, false
	}

	var items []entity.ProfileSearchItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logrus.WithError(err).WithField("term", term).Warn("search cache entry malformed")
		return nil, false
	}
	return items, true
}

// SetSearch stores the result set for the term. Entries expire on their own;
// there is no invalidation on profile mutation, staleness is bounded by the
// TTL.
func (c *SearchCache) SetSearch(ctx context.Context, term string, items []entity.ProfileSearchItem) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		logrus.WithError(err).WithField("term", term).Warn("search cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, SearchKey(term), raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("term", term).Warn("search cache write failed")
	}
}
