package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCounter 是限流所需的 Redis 命令子集。
type RateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// windowLimiter 是按会话计数的固定窗口限流器，窗口边界对齐到 UTC 整点。
type windowLimiter struct {
	counter RateCounter
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
}

func newHourlyLimiter(counter RateCounter, prefix string, limit int) *windowLimiter {
	if counter == nil || limit <= 0 {
		return nil
	}
	return &windowLimiter{counter: counter, prefix: prefix, limit: limit, window: time.Hour, now: time.Now}
}

func (l *windowLimiter) key(sessionID string) string {
	return l.prefix + ":" + sessionID + ":" + l.now().UTC().Truncate(l.window).Format("2006010215")
}

// Allow 计数并判断是否仍在额度内；nil limiter 总是放行。
func (l *windowLimiter) Allow(ctx context.Context, sessionID string) (bool, error) {
	if l == nil {
		return true, nil
	}
	count, err := incrWithTTL(ctx, l.counter, l.key(sessionID), l.window)
	if err != nil {
		return true, err
	}
	return count <= int64(l.limit), nil
}

func incrWithTTL(ctx context.Context, client RateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// 只在窗口第一次计数时设置过期
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
