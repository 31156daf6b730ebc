package service

import (
	"context"
	"encoding/json"
	"time"

	"sns-api/internal/domain"
)

// KV 会话快照需要的 KV 语义，由 core/cache 的 Redis 客户端实现
type KV interface {
	Put(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// SessionCache 登录用户快照的 KV 存取。键保存在会话令牌里，
// 归当前会话独占；快照不设 TTL，登出时删除。
type SessionCache struct {
	kv KV
}

func NewSessionCache(kv KV) *SessionCache { return &SessionCache{kv: kv} }

// Put 写入快照并返回键。key 为空（首次登录）时用 "auth:{userID}"。
func (s *SessionCache) Put(ctx context.Context, key string, u *domain.AuthUser) (string, error) {
	if key == "" {
		key = "auth:" + u.ID
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	if err := s.kv.Put(ctx, key, b, 0); err != nil {
		return "", err
	}
	return key, nil
}

// Get key 为空或未命中都返回 (nil, nil)，是否当错由调用方定
func (s *SessionCache) Get(ctx context.Context, key string) (*domain.AuthUser, error) {
	if key == "" {
		return nil, nil
	}
	b, err := s.kv.Get(ctx, key)
	if err != nil || b == nil {
		return nil, err
	}
	var u domain.AuthUser
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete 只删当前会话自己的键
func (s *SessionCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.kv.Delete(ctx, key)
}
