package chain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/influscan/influscan/internal/models"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute)

	_, ok := cache.Get("0xabc")
	assert.False(t, ok)

	activity := &models.BlockchainActivity{Address: "0xabc", RugPullCount: 2, DumpingBehavior: models.DumpingMedium}
	cache.Put("0xabc", activity)

	got, ok := cache.Get("0xabc")
	require.True(t, ok)
	assert.Equal(t, *activity, *got)

	// Last write wins.
	cache.Put("0xabc", &models.BlockchainActivity{Address: "0xabc", RugPullCount: 5, DumpingBehavior: models.DumpingHigh})
	got, ok = cache.Get("0xabc")
	require.True(t, ok)
	assert.Equal(t, 5, got.RugPullCount)
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(20 * time.Millisecond)

	cache.Put("0xabc", &models.BlockchainActivity{Address: "0xabc", DumpingBehavior: models.DumpingLow})
	_, ok := cache.Get("0xabc")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = cache.Get("0xabc")
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestMemoryCache_DefaultTTL(t *testing.T) {
	cache := NewMemoryCache(0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cache.Put("0xabc", &models.BlockchainActivity{Address: "0xabc", RugPullCount: n, DumpingBehavior: models.DumpingLow})
			cache.Get("0xabc")
		}(i)
	}
	wg.Wait()

	_, ok := cache.Get("0xabc")
	assert.True(t, ok)
}
