package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache Redis 客户端薄封装。会话快照等 KV 数据都走这里，
// 快照不设 TTL，登出时显式删除。
type Cache struct {
	RDB *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

// Put 写入原始字节，ttl=0 表示不过期
func (c *Cache) Put(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.RDB.Set(ctx, key, val, ttl).Err()
}

// Get 未命中返回 (nil, nil)
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.RDB.Del(ctx, key).Err()
}
