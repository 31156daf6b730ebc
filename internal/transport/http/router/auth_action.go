package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sns-api/internal/core/auth"
	"sns-api/internal/domain"
	"sns-api/internal/service"
	httpez "sns-api/internal/transport/http/ez"
	mdw "sns-api/internal/transport/http/middleware"
	"sns-api/pkg/utils"
)

// authorize 会话读取：按上下文里的 kvAuthKey 取登录用户快照。
// required 时拿不到就报未授权，否则返回 nil 由调用方自行处理。
func authorize(c *gin.Context, sessions *service.SessionCache, required bool) (*domain.AuthUser, error) {
	key := c.GetString(mdw.CtxKVAuthKey)
	u, err := sessions.Get(c.Request.Context(), key)
	if err != nil {
		return nil, err
	}
	if u == nil && required {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// mountAuthActions 认证生命周期三件事：发令牌、续签透传、登出删快照
func mountAuthActions(api, authed *gin.RouterGroup, d APIDeps) {
	ezPublic := httpez.New(api)
	ezAuth := httpez.New(authed)

	// --- GET /auth/google/login 跳转 Google 授权页 ---
	type loginQ struct {
		State string `form:"state"`
	}
	type loginOut struct {
		URL   string `json:"url"`
		State string `json:"state"`
	}
	httpez.RegisterAction(ezPublic, httpez.Action[loginQ, loginOut]{
		Method: http.MethodGet,
		Path:   "/auth/google/login",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *loginQ) (loginOut, error) {
			state := in.State
			if state == "" {
				state = utils.NewID()
			}
			return loginOut{URL: d.Google.LoginURL(state), State: state}, nil
		},
	})

	// --- GET /auth/google/callback 令牌签发 ---
	// 换码拿 profile → 身份对账 → 写会话快照 → 快照键进令牌。
	// 对账失败不发令牌。
	type callbackQ struct {
		Code string `form:"code" binding:"required"`
	}
	type callbackOut struct {
		Token string           `json:"token"`
		User  *domain.AuthUser `json:"user"`
	}
	httpez.RegisterAction(ezPublic, httpez.Action[callbackQ, callbackOut]{
		Method: http.MethodGet,
		Path:   "/auth/google/callback",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *callbackQ) (callbackOut, error) {
			ctx := c.Request.Context()

			prof, err := d.Google.Exchange(ctx, in.Code)
			if err != nil {
				return callbackOut{}, httpez.Unauthorized("oauth exchange failed")
			}

			user, err := d.Users.Reconcile(ctx, domain.ProviderGoogle, prof.ProviderAccountID, profileDefaults(prof))
			if err != nil {
				return callbackOut{}, httpez.Internal("reconcile failed", err)
			}

			snap := user.Snapshot()
			key, err := d.Sessions.Put(ctx, "", snap)
			if err != nil {
				return callbackOut{}, httpez.Internal("session cache write failed", err)
			}

			tok, err := d.JWTer.IssueSession(user.ID, "user", key, prof.Provider)
			if err != nil {
				return callbackOut{}, httpez.Internal("issue token failed", err)
			}
			d.Log.Info("user logged in",
				zap.String("user_id", user.ID),
				zap.String("provider", prof.Provider),
			)
			return callbackOut{Token: tok, User: snap}, nil
		},
	})

	// --- POST /auth/refresh 续签 ---
	// 令牌已带快照键：原样续签，不对账也不写缓存
	type refreshOut struct {
		Token string `json:"token"`
	}
	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, refreshOut]{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (refreshOut, error) {
			claims, ok := c.MustGet(mdw.CtxClaims).(*auth.Claims)
			if !ok {
				return refreshOut{}, httpez.Unauthorized("invalid session")
			}
			tok, err := d.JWTer.Refresh(claims)
			if err != nil {
				return refreshOut{}, httpez.Internal("issue token failed", err)
			}
			return refreshOut{Token: tok}, nil
		},
	})

	// --- POST /auth/logout 登出 ---
	// 只删本会话自己的快照键
	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			key := c.GetString(mdw.CtxKVAuthKey)
			if err := d.Sessions.Delete(c.Request.Context(), key); err != nil {
				return nil, httpez.Internal("logout failed", err)
			}
			return gin.H{"ok": 1}, nil
		},
	})
}

// profileDefaults 把外部 profile 整理成首登建档默认值：
// 账号 handle 取邮箱 @ 前并滤成半角英数，展示名缺省 Jane Doe
func profileDefaults(prof *auth.Profile) service.ProfileDefaults {
	accountID := prof.Email
	if at := strings.IndexByte(accountID, '@'); at > 0 {
		accountID = accountID[:at]
	}
	accountID = utils.SanitizeAccountID(accountID)
	if accountID == "" {
		accountID = "user" + utils.ShortToken(8)
	}

	displayName := prof.Name
	if displayName == "" {
		displayName = "Jane Doe"
	}

	var avatar *string
	if prof.Picture != "" {
		avatar = &prof.Picture
	}
	bio := ""
	return service.ProfileDefaults{
		AccountID:   accountID,
		DisplayName: displayName,
		AvatarURL:   avatar,
		Bio:         &bio,
	}
}
