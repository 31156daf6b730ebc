package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sns-api/internal/core/auth"
	"sns-api/internal/core/config"
	"sns-api/internal/core/server"
	mdw "sns-api/internal/transport/http/middleware"
)

// AdminDeps 管理端引擎依赖
type AdminDeps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	JWTer *auth.JWTer
	Auth  config.AdminAuth
}

func NewAdminEngine(d AdminDeps) *gin.Engine {
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

	// 健康检查与指标只在管理端口暴露
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 登录接口单独按 IP 限流，防撞密码
	public := r.Group("/admin/v1")
	public.Use(mdw.RateLimitPerIP(1, 5))
	mountAdminLogin(public, d)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthSession(d.JWTer, "admin"))

	MountAllAdmin(admin)
	mountAdminActions(admin, d)

	return r
}
