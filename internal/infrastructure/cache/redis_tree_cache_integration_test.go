//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisTreeCache_Integration(t *testing.T) {
	client := newRedisClient(t)
	c := NewRedisTreeCacheWithClient(client, "test:tree")
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, c.Set(ctx, newSnapshot(gen, "Assets", "Cash"), time.Minute))
	snap, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, snap.Accounts, 2)
	assert.Equal(t, "Cash", snap.Accounts[1].Name)
	assert.Equal(t, gen, snap.Generation)

	ttl, err := client.TTL(ctx, "test:tree").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	// a snapshot loaded before the invalidation is not stored
	require.NoError(t, c.Set(ctx, newSnapshot(gen, "Assets"), time.Minute))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.Set(ctx, "test:tree", "{not json", time.Minute).Err())
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	exists, err := client.Exists(ctx, "test:tree").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
