package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Invalidated keys keep a data-less marker for this long so a read that
// started before the write can't fill the cache with the old value.
const DefaultInvalidationWindow = 10 * time.Second

// Só grava quando a chave não existe (nem valor, nem marcador de invalidação).
var fillIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'cached_at', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

type RedisClient struct {
	client             redis.UniversalClient
	defaultTTLSeconds  time.Duration
	invalidationWindow time.Duration
	prefix             string
}

// NewRedisClient accepts one address (standalone) or several (cluster).
func NewRedisClient(addrs string, poolSize int, defaultTTLSeconds time.Duration) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		PoolSize:     poolSize,
		MinIdleConns: 2,

		// Cluster específico
		MaxRedirects: 3,

		// Timeouts otimizados para cache
		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:             client,
		defaultTTLSeconds:  defaultTTLSeconds,
		invalidationWindow: DefaultInvalidationWindow,
	}
}

// WithPrefix returns a client that namespaces every key. Shares the pool.
func (rc *RedisClient) WithPrefix(prefix string) *RedisClient {
	return &RedisClient{
		client:             rc.client,
		defaultTTLSeconds:  rc.defaultTTLSeconds,
		invalidationWindow: rc.invalidationWindow,
		prefix:             rc.prefix + prefix,
	}
}

// WithInvalidationWindow returns a client that keeps invalidation markers for
// window. Shares the pool.
func (rc *RedisClient) WithInvalidationWindow(window time.Duration) *RedisClient {
	return &RedisClient{
		client:             rc.client,
		defaultTTLSeconds:  rc.defaultTTLSeconds,
		invalidationWindow: window,
		prefix:             rc.prefix,
	}
}

func (rc *RedisClient) key(key string) string {
	return rc.prefix + key
}

// SetKeyIfAbsent caches value unless the key already holds a value or an
// invalidation marker. Reports whether it wrote.
func (rc *RedisClient) SetKeyIfAbsent(ctx context.Context, key string, value string) (bool, error) {
	written, err := fillIfAbsentScript.Run(ctx, rc.client,
		[]string{rc.key(key)},
		value,
		time.Now().Unix(),
		rc.defaultTTLSeconds.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return written == 1, nil
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, rc.key(key), "data")

	// Cache miss
	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

// Invalidação em cluster requer cuidado especial: chaves podem estar em slots
// diferentes, então uma transação por chave. The cached value is replaced by a
// marker that lives for the invalidation window; GetKey treats it as a miss.
func (rc *RedisClient) InvalidateKeys(ctx context.Context, keys []string) error {
	var errors []string

	for _, key := range keys {
		pipe := rc.client.TxPipeline()
		pipe.Del(ctx, rc.key(key))
		pipe.HSet(ctx, rc.key(key), "invalidated_at", time.Now().Unix())
		pipe.PExpire(ctx, rc.key(key), rc.invalidationWindow)

		if _, err := pipe.Exec(ctx); err != nil {
			errors = append(errors, fmt.Sprintf("key %s: %v", key, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalidation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// FlushByPrefix deletes every key under the client prefix. Refuses to run
// without a prefix.
func (rc *RedisClient) FlushByPrefix(ctx context.Context) error {
	if rc.prefix == "" {
		return fmt.Errorf("refusing to flush without a key prefix")
	}

	flush := func(ctx context.Context, client redis.UniversalClient) error {
		iter := client.Scan(ctx, 0, rc.prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		return iter.Err()
	}

	if cluster, ok := rc.client.(*redis.ClusterClient); ok {
		return cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return flush(ctx, node)
		})
	}
	return flush(ctx, rc.client)
}

// Ping reports whether Redis answers.
func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
