package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sns-api/internal/core/storage"
	"sns-api/internal/domain"
	httpez "sns-api/internal/transport/http/ez"
	mdw "sns-api/internal/transport/http/middleware"
	"sns-api/pkg/utils"
)

// mountUploadActions 头像上传：先签名直传 staging，再 copy 落位
func mountUploadActions(authed *gin.RouterGroup, d APIDeps) {
	ez := httpez.New(authed)

	// --- POST /uploads/avatar 生成 1 小时有效的直传 URL ---
	type presignIn struct {
		FileName string `json:"fileName" binding:"required,max=128"`
	}
	type presignOut struct {
		UploadURL string `json:"uploadUrl"`
		TmpKey    string `json:"tmpKey"`
	}
	httpez.RegisterAction(ez, httpez.Action[presignIn, presignOut]{
		Method: http.MethodPost,
		Path:   "/uploads/avatar",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *presignIn) (presignOut, error) {
			tmpKey := "tmp/" + utils.NewID() + "-" + in.FileName
			url, err := d.Storage.GenerateUploadURL(c.Request.Context(), tmpKey)
			if err != nil {
				return presignOut{}, httpez.Internal("presign failed", err)
			}
			return presignOut{UploadURL: url, TmpKey: tmpKey}, nil
		},
	})

	// --- PUT /me/avatar staging 落位并更新头像 URL ---
	type saveIn struct {
		TmpKey string `json:"tmpKey" binding:"required,max=255"`
	}
	type saveOut struct {
		AvatarURL string `json:"avatarUrl"`
	}
	httpez.RegisterAction(ez, httpez.Action[saveIn, saveOut]{
		Method: http.MethodPut,
		Path:   "/me/avatar",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *saveIn) (saveOut, error) {
			if !validStagingKey(in.TmpKey) {
				return saveOut{}, httpez.BadRequest("invalid tmpKey")
			}

			ctx := c.Request.Context()
			uid := c.GetString(mdw.CtxUserID)
			key := c.GetString(mdw.CtxKVAuthKey)

			url, err := d.Storage.Save(ctx, in.TmpKey, storage.SaveObject{
				Name:  "user",
				ID:    uid,
				Field: "avatar",
			})
			if err != nil {
				return saveOut{}, httpez.Internal("save avatar failed", err)
			}

			upd := domain.UserUpdate{AvatarURL: &url}
			if err := d.Users.Update(ctx, uid, key, upd); err != nil {
				return saveOut{}, httpez.Internal("update avatar failed", err)
			}
			return saveOut{AvatarURL: url}, nil
		},
	})
}

// validStagingKey 只接受本服务签发形状的 staging key，
// 防止把桶里任意对象 copy 成自己的头像
func validStagingKey(key string) bool {
	return strings.HasPrefix(key, "tmp/") &&
		len(key) > len("tmp/") &&
		!strings.Contains(key, "..")
}
