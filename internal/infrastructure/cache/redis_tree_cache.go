package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/redis/go-redis/v9"
)

// DefaultTreeCacheKey is the redis key holding the cached chart of accounts.
// The generation counter lives under the same key with a ":gen" suffix.
const DefaultTreeCacheKey = "ledger:accounts:tree"

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[2]
var setIfGeneration = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[2] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisTreeCache stores the chart of accounts as JSON in Redis so that
// every instance serves and invalidates the same copy
type RedisTreeCache struct {
	client *redis.Client
	key    string
	genKey string
}

// NewRedisTreeCache connects to Redis and verifies the connection
func NewRedisTreeCache(cfg RedisConfig) (*RedisTreeCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisTreeCacheWithClient(client, ""), nil
}

// NewRedisTreeCacheWithClient creates a cache around an existing client
func NewRedisTreeCacheWithClient(client *redis.Client, key string) *RedisTreeCache {
	if key == "" {
		key = DefaultTreeCacheKey
	}
	return &RedisTreeCache{
		client: client,
		key:    key,
		genKey: key + ":gen",
	}
}

// Generation returns the shared invalidation counter. A missing counter is 0.
func (c *RedisTreeCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read account tree cache generation: %w", err)
	}
	return gen, nil
}

// Get loads the cached accounts. A missing key is a miss, not an error.
func (c *RedisTreeCache) Get(ctx context.Context) (*ledgerapp.AccountSnapshot, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read account tree cache: %w", err)
	}

	var snapshot ledgerapp.AccountSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt entry is dropped and treated as a miss
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, nil
	}
	return &snapshot, true, nil
}

// Set stores the snapshot with the given TTL unless the generation moved on
// after the snapshot was loaded
func (c *RedisTreeCache) Set(ctx context.Context, snapshot *ledgerapp.AccountSnapshot, ttl time.Duration) error {
	if snapshot == nil || ttl <= 0 {
		return c.client.Del(ctx, c.key).Err()
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode account tree: %w", err)
	}
	err = setIfGeneration.Run(ctx, c.client, []string{c.key, c.genKey},
		raw, strconv.FormatInt(snapshot.Generation, 10), ttl.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to write account tree cache: %w", err)
	}
	return nil
}

// Invalidate advances the generation and deletes the cached accounts
func (c *RedisTreeCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate account tree cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisTreeCache) Close() error {
	return c.client.Close()
}

var _ ledgerapp.TreeCache = (*RedisTreeCache)(nil)
