package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"librarian-backend/pkg/lock"
)

const (
	lockKeyPrefix  = "librarian:lock:"
	lockRetryEvery = 25 * time.Millisecond
)

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements lock.Locker with SET NX PX.
type RedisLocker struct {
	client  *redis.Client
	maxWait time.Duration
}

// NewRedisLocker retries a busy key until maxWait elapses.
func NewRedisLocker(client *RedisClient, maxWait time.Duration) *RedisLocker {
	return &RedisLocker{client: client.Client, maxWait: maxWait}
}

func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (lock.Unlock, error) {
	fullKey := lockKeyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, lock.ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryEvery):
		}
	}

	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis unlock %s: %w", key, err)
		}
		return nil
	}, nil
}
