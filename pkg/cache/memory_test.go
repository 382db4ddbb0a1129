package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	require.NoError(t, mc.Set(ctx, "k", payload{Name: "xyz", Score: 0.75}, time.Minute))

	var got payload
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "xyz", Score: 0.75}, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	err := mc.Get(context.Background(), "absent", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiredEntryNeverReturned(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))

	var got string
	require.NoError(t, mc.Get(ctx, "k", &got))

	time.Sleep(15 * time.Millisecond)

	err := mc.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)

	exists, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 0))
	time.Sleep(10 * time.Millisecond)

	var got string
	assert.NoError(t, mc.Get(ctx, "k", &got))
}

func TestMemoryCacheSweepRemovesExpired(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "stale", "v", 5*time.Millisecond))
	require.NoError(t, mc.Set(ctx, "fresh", "v", time.Minute))
	time.Sleep(10 * time.Millisecond)

	removed := mc.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, mc.Len())
}

func TestMemoryCacheOverwriteIsAtomic(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
	require.NoError(t, mc.Set(ctx, "k", map[string]int{"b": 2}, time.Minute))

	var got map[string]int
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, map[string]int{"b": 2}, got)
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	mc := NewMemoryCache(WithSweepInterval(time.Millisecond))
	defer mc.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%10)
				switch i % 3 {
				case 0:
					_ = mc.Set(ctx, key, i, time.Duration(i%5)*time.Millisecond)
				case 1:
					var v int
					_ = mc.Get(ctx, key, &v)
				default:
					_, _ = mc.Exists(ctx, key)
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, mc.Delete(ctx, "a", "b"))

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "a", &v), ErrCacheMiss)
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
}
