package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 会话令牌负载。KVAuthKey 指向 Redis 中的登录用户快照，
// 令牌本身不携带用户资料。
type Claims struct {
	UID       string `json:"uid"`
	Role      string `json:"role"` // "user" or "admin"
	KVAuthKey string `json:"kvAuthKey,omitempty"`
	Provider  string `json:"provider,omitempty"` // 外部身份提供商，如 "google"
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// IssueSession 登录回调后签发会话令牌，kvAuthKey 为快照键
func (j *JWTer) IssueSession(uid, role, kvAuthKey, provider string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:       uid,
		Role:      role,
		KVAuthKey: kvAuthKey,
		Provider:  provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Refresh 原样续签：已携带 kvAuthKey 的令牌不再触发对账或缓存写入
func (j *JWTer) Refresh(c *Claims) (string, error) {
	return j.IssueSession(c.UID, c.Role, c.KVAuthKey, c.Provider)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
