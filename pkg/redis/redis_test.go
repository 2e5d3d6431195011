package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")
	cfg := ClientRateLimit("10.0.0.7", 5, time.Second)

	// When Redis is disabled, all requests should be allowed
	allowed, remaining, err := limiter.Allow(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, cfg.Limit, remaining)
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	require.NoError(t, cache.Set(ctx, "key", "value", TTLPanel))

	// When Redis is disabled, cache operations should be no-ops
	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)

	var nilCache *Cache
	assert.False(t, nilCache.Enabled())
}

func TestCacheKeys(t *testing.T) {
	hash := "0123456789abcdef0123456789abcdef"

	assert.Equal(t, "panel:WEGE3:0123456789abcdef:d1g3st", PanelKey("WEGE3", hash, "d1g3st"))
	assert.Equal(t, "api:10.0.0.7", ClientRateLimit("10.0.0.7", 1, time.Second).Key)
}

func TestRequestMember_UniqueWithinMillisecond(t *testing.T) {
	const now int64 = 1760000000000

	a := requestMember(now)
	b := requestMember(now)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "1760000000000-"), a)
}
