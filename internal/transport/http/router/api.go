package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sns-api/internal/core/auth"
	"sns-api/internal/core/server"
	"sns-api/internal/core/storage"
	"sns-api/internal/service"
	mdw "sns-api/internal/transport/http/middleware"
)

// APIDeps 用户端引擎的全部依赖，显式注入
type APIDeps struct {
	Log      *zap.Logger
	JWTer    *auth.JWTer
	Google   *auth.GoogleProvider
	Users    *service.UserDomain
	Posts    *service.PostDomain
	Sessions *service.SessionCache
	Storage  *storage.Service
}

func NewAPIEngine(d APIDeps) *gin.Engine {
	r := server.NewRouter(d.Log)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	// 统一注册器挂载的模块（post 等）
	MountAllAPI(api)

	// 鉴权分组：会话中间件把 kvAuthKey 写进上下文
	authed := api.Group("")
	authed.Use(mdw.AuthSession(d.JWTer, ""))

	mountAuthActions(api, authed, d)
	mountUserActions(api, authed, d)
	mountUploadActions(authed, d)

	return r
}
