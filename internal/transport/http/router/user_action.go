package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sns-api/internal/domain"
	httpez "sns-api/internal/transport/http/ez"
	mdw "sns-api/internal/transport/http/middleware"
)

func mountUserActions(api, authed *gin.RouterGroup, d APIDeps) {
	ezPublic := httpez.New(api)
	ezAuth := httpez.New(authed)

	// --- GET /users 用户列表 ---
	type listQ struct {
		Limit  int `form:"limit,default=30"`
		Offset int `form:"offset,default=0"`
	}
	type listOut struct {
		Items []domain.User `json:"items"`
	}
	httpez.RegisterAction(ezPublic, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			users, err := d.Users.Paginate(c.Request.Context(), in.Limit, in.Offset)
			if err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}
			return listOut{Items: users}, nil
		},
	})

	// --- GET /users/:id 用户详情（附最近 20 条 post） ---
	httpez.RegisterAction(ezPublic, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := d.Users.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, httpez.Internal("get user failed", err)
			}
			if u == nil {
				return nil, httpez.NotFound("user not found")
			}
			return u, nil
		},
	})

	// --- GET /me 当前登录用户（只读缓存，不碰存储） ---
	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, *domain.AuthUser]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.AuthUser, error) {
			return authorize(c, d.Sessions, true)
		},
	})

	// --- PATCH /me 资料编辑 ---
	type updateIn struct {
		DisplayName *string `json:"displayName" binding:"omitempty,max=64"`
		Bio         *string `json:"bio" binding:"omitempty,max=1024"`
		AvatarURL   *string `json:"avatarUrl" binding:"omitempty,max=255"`
	}
	httpez.RegisterAction(ezAuth, httpez.Action[updateIn, *domain.AuthUser]{
		Method: http.MethodPatch,
		Path:   "/me",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *updateIn) (*domain.AuthUser, error) {
			ctx := c.Request.Context()
			uid := c.GetString(mdw.CtxUserID)
			key := c.GetString(mdw.CtxKVAuthKey)

			upd := domain.UserUpdate{
				DisplayName: in.DisplayName,
				Bio:         in.Bio,
				AvatarURL:   in.AvatarURL,
			}
			if err := d.Users.Update(ctx, uid, key, upd); err != nil {
				return nil, httpez.Internal("update user failed", err)
			}

			// 快照刚被 Update 刷过，直接读缓存返回
			if snap, err := d.Sessions.Get(ctx, key); err == nil && snap != nil {
				return snap, nil
			}
			u, err := d.Users.Get(ctx, uid)
			if err != nil || u == nil {
				return nil, httpez.Internal("reload user failed", err)
			}
			return u.Snapshot(), nil
		},
	})
}
