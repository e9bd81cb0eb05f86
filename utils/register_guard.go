package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cppla/dailychallenge/config"
)

func registerKey(ip string, day time.Time) string {
	return "reg:succday:" + ip + ":" + day.UTC().Format("20060102")
}

// RegistrationAllowed reports whether ip is still under today's registration limit.
// Redis errors fail open.
func RegistrationAllowed(ctx context.Context, ip string) bool {
	limit := config.Get().RegisterMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	rc := GetRedis()
	if rc == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	n, err := rc.Get(ctx, registerKey(ip, time.Now())).Int()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		return true
	}
	return n < limit
}

// RegistrationRecord counts a successful registration for ip until the end of the UTC day.
func RegistrationRecord(ctx context.Context, ip string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	now := time.Now().UTC()
	key := registerKey(ip, now)
	if err := rc.Incr(ctx, key).Err(); err == nil {
		_ = rc.Expire(ctx, key, now.Truncate(24*time.Hour).Add(24*time.Hour).Sub(now)).Err()
	}
}
