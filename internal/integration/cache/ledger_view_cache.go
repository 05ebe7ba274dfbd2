// Package cache implements the ledger view cache adapters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
)

const (
	ledgerViewsKey = "ledger:views"
	ledgerViewsTTL = 10 * time.Minute
)

// RedisLedgerViewCache caches the reconciled ledger views in Redis under a
// single key. Writes to the ledger invalidate the key.
type RedisLedgerViewCache struct {
	client *redis.Client
}

// NewRedisLedgerViewCache creates a new RedisLedgerViewCache.
func NewRedisLedgerViewCache(client *redis.Client) *RedisLedgerViewCache {
	return &RedisLedgerViewCache{client: client}
}

// Get returns the cached views, or nil on a cache miss.
func (c *RedisLedgerViewCache) Get(ctx context.Context) ([]*entity.LedgerView, error) {
	payload, err := c.client.Get(ctx, ledgerViewsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var views []*entity.LedgerView
	if err := json.Unmarshal(payload, &views); err != nil {
		// A corrupt payload is treated as a miss; the caller recomputes.
		return nil, nil
	}
	return views, nil
}

// Set stores the views, replacing any previous snapshot.
func (c *RedisLedgerViewCache) Set(ctx context.Context, views []*entity.LedgerView) error {
	payload, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ledgerViewsKey, payload, ledgerViewsTTL).Err()
}

// Invalidate drops the cached snapshot.
func (c *RedisLedgerViewCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, ledgerViewsKey).Err()
}

var _ adapter.LedgerViewCache = (*RedisLedgerViewCache)(nil)

// InMemoryLedgerViewCache is a process-local cache used when Redis is
// disabled in the configuration.
type InMemoryLedgerViewCache struct {
	mu    sync.RWMutex
	views []*entity.LedgerView
}

// NewInMemoryLedgerViewCache creates a new InMemoryLedgerViewCache.
func NewInMemoryLedgerViewCache() *InMemoryLedgerViewCache {
	return &InMemoryLedgerViewCache{}
}

// Get returns the cached views, or nil on a cache miss.
func (c *InMemoryLedgerViewCache) Get(_ context.Context) ([]*entity.LedgerView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.views, nil
}

// Set stores the views, replacing any previous snapshot.
func (c *InMemoryLedgerViewCache) Set(_ context.Context, views []*entity.LedgerView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = views
	return nil
}

// Invalidate drops the cached snapshot.
func (c *InMemoryLedgerViewCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = nil
	return nil
}

var _ adapter.LedgerViewCache = (*InMemoryLedgerViewCache)(nil)
