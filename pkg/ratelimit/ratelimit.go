package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key builds the redis key for a subject/action pair.
func Key(subject, action string) string {
	return fmt.Sprintf("rate_limit:%s:%s", subject, action)
}

// Acquire sets a lock for the given window. It reports false when the lock
// is already held. A nil client always allows.
func Acquire(ctx context.Context, rdb *redis.Client, subject, action string, window time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, Key(subject, action), "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// Release drops a lock set by Acquire.
func Release(ctx context.Context, rdb *redis.Client, subject, action string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, Key(subject, action)).Err()
}

// Hit increments a counter that expires after window and reports whether
// the count is still within max.
func Hit(ctx context.Context, rdb *redis.Client, subject, action string, max int64, window time.Duration) (bool, error) {
	if rdb == nil || max <= 0 {
		return true, nil
	}

	key := Key(subject, action)

	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count attempts in redis: %w", err)
	}

	return incr.Val() <= max, nil
}

// Reset clears a counter set by Hit.
func Reset(ctx context.Context, rdb *redis.Client, subject, action string) error {
	return Release(ctx, rdb, subject, action)
}

// TTL reports how long until the key for subject/action expires.
func TTL(ctx context.Context, rdb *redis.Client, subject, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, Key(subject, action)).Result()
}
