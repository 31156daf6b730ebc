package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sns-api/internal/domain"
	httpez "sns-api/internal/transport/http/ez"
	"sns-api/pkg/utils"
)

// mountAdminLogin 管理端登录：配置里的固定凭证换 admin 角色令牌
func mountAdminLogin(g *gin.RouterGroup, d AdminDeps) {
	ez := httpez.New(g)

	type loginIn struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string `json:"token"`
	}
	httpez.RegisterAction(ez, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			if in.Username != d.Auth.Username || !utils.CheckPassword(in.Password, d.Auth.PasswordHash) {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			tok, err := d.JWTer.IssueSession(in.Username, "admin", "", "")
			if err != nil {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok}, nil
		},
	})
}

// mountAdminActions 管理端接口集中在这里注册
func mountAdminActions(admin *gin.RouterGroup, d AdminDeps) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/users 用户列表 ---
	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 按 account_id/display_name 模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含已封禁
	}
	type row struct {
		ID          string    `json:"id"`
		AccountID   string    `json:"accountId"`
		DisplayName string    `json:"displayName"`
		CreatedAt   time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}
	httpez.RegisterAction(ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := d.DB.WithContext(c).Model(&domain.User{})
			if in.WithDeleted {
				q = q.Unscoped()
			}
			if s := strings.TrimSpace(in.Q); s != "" {
				like := "%" + s + "%"
				q = q.Where("account_id LIKE ? OR display_name LIKE ?", like, like)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				return listOut{}, httpez.Internal("count users failed", err)
			}

			var us []domain.User
			if err := q.Order("created_at DESC, id DESC").Limit(in.Limit).Offset(in.Offset).Find(&us).Error; err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}

			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, AccountID: u.AccountID, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/users/:id/ban 封禁（软删） ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			res := d.DB.WithContext(c).Where("id = ?", id).Delete(&domain.User{})
			if res.Error != nil {
				return nil, httpez.Internal("ban user failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("user not found")
			}
			return gin.H{"id": id}, nil
		},
	})

	// --- DELETE /admin/v1/posts/:id 删帖（硬删） ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			res := d.DB.WithContext(c).Where("id = ?", id).Delete(&domain.Post{})
			if res.Error != nil {
				return nil, httpez.Internal("delete post failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("post not found")
			}
			return gin.H{"id": id}, nil
		},
	})
}
