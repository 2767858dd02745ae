// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedFetcher serves repeated requests from memory. The key is
// Request.Encode, so logically identical queries share an entry. Concurrent
// misses for the same key are collapsed into one upstream call. Failures are
// never cached.
type CachedFetcher struct {
	next   Fetcher
	cache  *cache.Cache
	group  singleflight.Group
	logger *zap.Logger
}

// NewCachedFetcher wraps next with a cache whose entries expire after ttl.
// A ttl of zero or less returns next unchanged.
func NewCachedFetcher(next Fetcher, ttl time.Duration, logger *zap.Logger) Fetcher {
	if ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger.Named("cache"),
	}
}

// Fetch returns a cached response for req or fetches and stores it.
func (c *CachedFetcher) Fetch(ctx context.Context, req Request) (Response, error) {
	key := req.Encode()
	if v, ok := c.cache.Get(key); ok {
		c.logger.Debug("cache hit", zap.String("key", key))
		return v.(Response), nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		resp, err := c.next.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, resp)
		return resp, nil
	})
	if err != nil {
		return Response{}, err
	}
	if shared {
		c.logger.Debug("joined in-flight request", zap.String("key", key))
	}
	return v.(Response), nil
}

// Len reports the number of cached entries, including expired ones not yet purged.
func (c *CachedFetcher) Len() int { return c.cache.ItemCount() }
