package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/dailychallenge/config"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetRedis(rc)
	t.Cleanup(func() {
		_ = rc.Close()
		SetRedis(nil)
	})
	return mr
}

func TestRedisLocker(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()
	locker := NewRedisLocker(GetRedis())

	release, ok, err := locker.Acquire(ctx, "rotation:lock:2024-01-06", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("rotation:lock:2024-01-06"))

	_, ok, err = locker.Acquire(ctx, "rotation:lock:2024-01-06", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	release()
	assert.False(t, mr.Exists("rotation:lock:2024-01-06"))

	_, ok, err = locker.Acquire(ctx, "rotation:lock:2024-01-06", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	mr := setupRedis(t)
	locker := NewRedisLocker(GetRedis())

	release, ok, err := locker.Acquire(context.Background(), "k", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// our lease expires and somebody else takes the key
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("k", "other-holder"))

	release()
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "other-holder", got)
}

func TestLeaderboardCache(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	CacheSetJSON(ctx, LeaderboardCachePrefix+"limit=10", map[string]int{"n": 1}, time.Minute)
	CacheSetBytes(ctx, LeaderboardCachePrefix+"limit=50", []byte(`{}`), 0)
	CacheSetBytes(ctx, "unrelated", []byte("keep"), time.Minute)

	b, ok := CacheGetBytes(ctx, LeaderboardCachePrefix+"limit=10")
	require.True(t, ok)
	assert.JSONEq(t, `{"n":1}`, string(b))
	assert.Equal(t, defaultCacheTTL, mr.TTL(LeaderboardCachePrefix+"limit=50"))

	InvalidateByPrefix(ctx, LeaderboardCachePrefix)
	_, ok = CacheGetBytes(ctx, LeaderboardCachePrefix+"limit=10")
	assert.False(t, ok)
	assert.False(t, mr.Exists(LeaderboardCachePrefix+"limit=50"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestTokenBlacklist(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	assert.False(t, IsTokenBlacklisted(ctx, "tok"))
	BlacklistToken(ctx, "tok", time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(ctx, "tok"))
	assert.True(t, mr.Exists("jwt:blacklist:tok"))

	// already expired tokens need no entry
	BlacklistToken(ctx, "old", time.Now().Add(-time.Minute))
	assert.False(t, IsTokenBlacklisted(ctx, "old"))
}

func TestTokenBlacklist_MemoryFallback(t *testing.T) {
	rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	SetRedis(rc)
	t.Cleanup(func() {
		_ = rc.Close()
		SetRedis(nil)
	})
	ctx := context.Background()

	BlacklistToken(ctx, "offline", time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(ctx, "offline"))
}

func TestRegistrationGuard(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test", RegisterMaxPerIPPerDay: 2})
	setupRedis(t)
	ctx := context.Background()

	assert.True(t, RegistrationAllowed(ctx, "10.0.0.1"))
	RegistrationRecord(ctx, "10.0.0.1")
	assert.True(t, RegistrationAllowed(ctx, "10.0.0.1"))
	RegistrationRecord(ctx, "10.0.0.1")
	assert.False(t, RegistrationAllowed(ctx, "10.0.0.1"))
	assert.True(t, RegistrationAllowed(ctx, "10.0.0.2"))
}
