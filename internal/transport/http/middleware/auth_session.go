package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sns-api/internal/core/auth"
	resp "sns-api/internal/transport/http/response"
)

// 会话字段在请求上下文里的键
const (
	CtxClaims    = "claims"
	CtxUserID    = "userId"
	CtxKVAuthKey = "kvAuthKey"
	CtxProvider  = "provider"
)

// AuthSession 校验会话令牌，把 kvAuthKey 等会话字段放进请求上下文。
// 这里不读缓存，需要用户数据的 handler 自己按 kvAuthKey 去取。
func AuthSession(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.UID)
		c.Set(CtxKVAuthKey, claims.KVAuthKey)
		c.Set(CtxProvider, claims.Provider)
		c.Next()
	}
}
