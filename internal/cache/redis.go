package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient 是 NewRedisClient 需要的方法，測試時以 stub 取代
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

var (
	redisNewClient = func(opt *redis.Options) redisClient {
		return redis.NewClient(opt)
	}
	pingTimeout = 5 * time.Second
)

// NewRedisClient 連線至 Redis 並在 pingTimeout 內確認可用；失敗時關閉連線
func NewRedisClient(addr string, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
