package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	data     []byte
	expireAt time.Time
}

func (m memoryItem) expired(now time.Time) bool {
	return !m.expireAt.IsZero() && now.After(m.expireAt)
}

// MemoryCache implements Service with an in-process TTL map. Entries are
// invalidated by age on read and removed by a periodic sweeper; writes
// replace the whole entry under the lock, so readers never observe a
// partially updated value.
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]memoryItem
	ticker *time.Ticker
	done   chan struct{}
}

// NewMemoryCache creates an in-memory cache and starts its sweeper.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		SweepInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		items:  make(map[string]memoryItem),
		ticker: time.NewTicker(cfg.SweepInterval),
		done:   make(chan struct{}),
	}
	go mc.sweepLoop()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var expireAt time.Time
	if ttl > 0 {
		expireAt = time.Now().Add(ttl)
	}

	mc.mu.Lock()
	mc.items[key] = memoryItem{data: data, expireAt: expireAt}
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok || item.expired(time.Now()) {
		return ErrCacheMiss
	}
	return json.Unmarshal(item.data, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	for _, key := range keys {
		delete(mc.items, key)
	}
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()
	return ok && !item.expired(time.Now()), nil
}

// Sweep removes all expired entries. It is also invoked periodically by
// the background sweeper.
func (mc *MemoryCache) Sweep() int {
	now := time.Now()
	removed := 0

	mc.mu.Lock()
	for key, item := range mc.items {
		if item.expired(now) {
			delete(mc.items, key)
			removed++
		}
	}
	mc.mu.Unlock()
	return removed
}

// Len reports the number of entries, expired ones included.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}

func (mc *MemoryCache) sweepLoop() {
	for {
		select {
		case <-mc.done:
			return
		case <-mc.ticker.C:
			mc.Sweep()
		}
	}
}

// Close stops the sweeper.
func (mc *MemoryCache) Close() error {
	mc.ticker.Stop()
	close(mc.done)
	return nil
}
