package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "wedding:ratelimit:"

// RedisStore is a fixed window shared by every instance: the first attempt
// starts the window and the key expires with it.
type RedisStore struct {
	client goredis.Cmdable
	now    func() time.Time
}

func NewRedisStore(client goredis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	key = redisKeyPrefix + key

	var (
		count *goredis.IntCmd
		ttl   *goredis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	resetIn := ttl.Val()
	if resetIn <= 0 {
		resetIn = window
	}
	attempts := int(count.Val())
	return Result{
		Allowed:   attempts <= limit,
		Limit:     limit,
		Remaining: max(limit-attempts, 0),
		ResetAt:   s.now().Add(resetIn),
	}, nil
}
