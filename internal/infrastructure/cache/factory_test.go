package cache

import (
	"context"
	"testing"
	"time"

	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// port 1 is reserved and refuses connections on loopback
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestTreeCacheFactory_Create(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		f := NewTreeCacheFactory(unreachableRedis, WithLogger(zaptest.NewLogger(t)))
		c, closeFn, err := f.Create("memory")
		require.NoError(t, err)
		assert.IsType(t, &InMemoryTreeCache{}, c)
		assert.NoError(t, closeFn())
	})

	t.Run("empty backend defaults to memory", func(t *testing.T) {
		c, _, err := NewTreeCacheFactory(unreachableRedis).Create("")
		require.NoError(t, err)
		assert.IsType(t, &InMemoryTreeCache{}, c)
	})

	t.Run("redis unavailable falls back", func(t *testing.T) {
		c, _, err := NewTreeCacheFactory(unreachableRedis).Create("redis")
		require.NoError(t, err)
		assert.IsType(t, &InMemoryTreeCache{}, c)
	})

	t.Run("redis unavailable without fallback", func(t *testing.T) {
		f := NewTreeCacheFactory(unreachableRedis, WithInMemoryFallback(false))
		c, _, err := f.Create("redis")
		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "Redis required")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := NewTreeCacheFactory(unreachableRedis).Create("memcached")
		require.Error(t, err)
	})
}

func TestRedisTreeCache_ConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        unreachableRedis.Addr(),
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisTreeCacheWithClient(client, "")
	defer c.Close()
	ctx := context.Background()

	assert.Equal(t, DefaultTreeCacheKey, c.key)
	assert.Equal(t, DefaultTreeCacheKey+":gen", c.genKey)

	_, err := c.Generation(ctx)
	require.Error(t, err)

	_, ok, err := c.Get(ctx)
	require.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, c.Set(ctx, newSnapshot(0, "Assets"), time.Minute))
	assert.Error(t, c.Invalidate(ctx))
}
