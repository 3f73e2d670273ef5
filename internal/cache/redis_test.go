package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// stubClient implements redisClient for testing.
type stubClient struct {
	pingErr error
	closed  bool
}

func (s *stubClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", s.pingErr)
}

func (s *stubClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func (s *stubClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (s *stubClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}

func (s *stubClient) Close() error { s.closed = true; return nil }

func restoreNewClient() {
	redisNewClient = func(o *redis.Options) redisClient { return redis.NewClient(o) }
}

func TestNewRedisClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		t.Cleanup(restoreNewClient)
		var opts *redis.Options
		stub := &stubClient{}
		redisNewClient = func(o *redis.Options) redisClient {
			opts = o
			return stub
		}

		c, err := NewRedisClient("127.0.0.1:6379", "secret", 1)
		require.NoError(t, err)
		require.Equal(t, stub, c)
		require.Equal(t, "127.0.0.1:6379", opts.Addr)
		require.Equal(t, "secret", opts.Password)
		require.Equal(t, 1, opts.DB)
		require.Equal(t, pingTimeout, opts.DialTimeout)
	})

	t.Run("ping fail", func(t *testing.T) {
		t.Cleanup(restoreNewClient)
		stub := &stubClient{pingErr: errors.New("fail")}
		redisNewClient = func(o *redis.Options) redisClient { return stub }

		c, err := NewRedisClient("addr", "", 0)
		require.ErrorContains(t, err, "redis ping addr")
		require.Nil(t, c)
		require.True(t, stub.closed)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Cleanup(func() { pingTimeout = 5 * time.Second })
		pingTimeout = 200 * time.Millisecond
		_, err := NewRedisClient("127.0.0.1:1", "", 0)
		require.Error(t, err)
	})

	t.Run("miniredis round trip", func(t *testing.T) {
		mr := miniredis.RunT(t)

		c, err := NewRedisClient(mr.Addr(), "", 0)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute).Err())
		require.Equal(t, "v", c.Get(ctx, "k").Val())
		require.Equal(t, time.Minute, mr.TTL("k"))

		require.Equal(t, int64(1), c.Del(ctx, "k").Val())
		require.ErrorIs(t, c.Get(ctx, "k").Err(), redis.Nil)
	})
}
