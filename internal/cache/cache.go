// Package cache 存放 refresh token 與健康檢查 heartbeat 的 key/value 快取
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 是 refresh token 與 heartbeat 需要的最小 Redis 介面；*redis.Client 直接滿足。
// ttl <= 0 表示不設過期。
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// FakeCache 測試用快取：有設定 XxxFn 時呼叫之，否則使用記憶體內的 map
type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	DelFn   func(ctx context.Context, keys ...string) *redis.IntCmd
	CloseFn func() error

	// Now 決定過期判斷的時間，nil 時使用 time.Now
	Now func() time.Time

	mu    sync.Mutex
	items map[string]fakeItem
}

type fakeItem struct {
	value     string
	expiresAt time.Time
}

func (f *FakeCache) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[key]
	if !ok || (!it.expiresAt.IsZero() && !f.now().Before(it.expiresAt)) {
		delete(f.items, key)
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(it.value, nil)
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	it := fakeItem{}
	switch v := value.(type) {
	case string:
		it.value = v
	case []byte:
		it.value = string(v)
	default:
		it.value = fmt.Sprint(v)
	}
	if expiration > 0 {
		it.expiresAt = f.now().Add(expiration)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items == nil {
		f.items = make(map[string]fakeItem)
	}
	f.items[key] = it
	return redis.NewStatusResult("OK", nil)
}

func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.DelFn != nil {
		return f.DelFn(ctx, keys...)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.items[k]; ok {
			delete(f.items, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
