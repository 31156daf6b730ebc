package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sns-api/internal/core/auth"
	"sns-api/internal/domain"
	"sns-api/internal/service"
	httpez "sns-api/internal/transport/http/ez"
	mdw "sns-api/internal/transport/http/middleware"
)

// PostModule 帖子接口，走统一注册器挂载
type PostModule struct {
	posts *service.PostDomain
	jwter *auth.JWTer
}

func NewPostModule(posts *service.PostDomain, jwter *auth.JWTer) *PostModule {
	return &PostModule{posts: posts, jwter: jwter}
}

func (m *PostModule) MountAPI(api *gin.RouterGroup) {
	ezPublic := httpez.New(api)

	// 写操作单独开鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthSession(m.jwter, ""))
	ezAuth := httpez.New(authed)

	// --- GET /posts 全局时间线 ---
	type listQ struct {
		Limit  int `form:"limit,default=10"`
		Offset int `form:"offset,default=0"`
	}
	type listOut struct {
		Items []domain.Post `json:"items"`
	}
	httpez.RegisterAction(ezPublic, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/posts",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			posts, err := m.posts.Paginate(c.Request.Context(), in.Limit, in.Offset)
			if err != nil {
				return listOut{}, httpez.Internal("list posts failed", err)
			}
			return listOut{Items: posts}, nil
		},
	})

	// --- GET /users/:id/posts 单人时间线 ---
	httpez.RegisterAction(ezPublic, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users/:id/posts",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			posts, err := m.posts.PaginateByUserID(c.Request.Context(), c.Param("id"), in.Limit, in.Offset)
			if err != nil {
				return listOut{}, httpez.Internal("list posts failed", err)
			}
			return listOut{Items: posts}, nil
		},
	})

	// --- GET /posts/:id 详情（附作者） ---
	httpez.RegisterAction(ezPublic, httpez.Action[struct{}, *domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Post, error) {
			p, err := m.posts.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, httpez.Internal("get post failed", err)
			}
			if p == nil {
				return nil, httpez.NotFound("post not found")
			}
			return p, nil
		},
	})

	// --- POST /posts 发帖 ---
	type createIn struct {
		Content string `json:"content" binding:"required,max=4096"`
	}
	httpez.RegisterAction(ezAuth, httpez.Action[createIn, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *createIn) (*domain.Post, error) {
			uid := c.GetString(mdw.CtxUserID)
			p, err := m.posts.Create(c.Request.Context(), uid, in.Content)
			if err != nil {
				return nil, httpez.Internal("create post failed", err)
			}
			return p, nil
		},
	})

	// --- PATCH /posts/:id 编辑（仅作者） ---
	type updateIn struct {
		Content string `json:"content" binding:"required,max=4096"`
	}
	httpez.RegisterAction(ezAuth, httpez.Action[updateIn, *domain.Post]{
		Method: http.MethodPatch,
		Path:   "/posts/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *updateIn) (*domain.Post, error) {
			ctx := c.Request.Context()
			p, err := m.ownedPost(c)
			if err != nil {
				return nil, err
			}
			if err := m.posts.Update(ctx, p.ID, in.Content); err != nil {
				return nil, httpez.Internal("update post failed", err)
			}
			return m.posts.Get(ctx, p.ID)
		},
	})

	// --- DELETE /posts/:id 删帖（仅作者） ---
	httpez.RegisterAction(ezAuth, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			p, err := m.ownedPost(c)
			if err != nil {
				return nil, err
			}
			if err := m.posts.Delete(c.Request.Context(), p.ID); err != nil {
				return nil, httpez.Internal("delete post failed", err)
			}
			return gin.H{"id": p.ID}, nil
		},
	})
}

// ownedPost 取 :id 对应的帖子并校验归属
func (m *PostModule) ownedPost(c *gin.Context) (*domain.Post, error) {
	p, err := m.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, httpez.Internal("get post failed", err)
	}
	if p == nil {
		return nil, httpez.NotFound("post not found")
	}
	if p.UserID != c.GetString(mdw.CtxUserID) {
		return nil, httpez.Forbidden("not your post")
	}
	return p, nil
}

var _ APIModule = (*PostModule)(nil)
