package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ProviderGoogle 目前唯一接入的外部身份提供商
const ProviderGoogle = "google"

type User struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	AccountID       string    `gorm:"column:account_id;uniqueIndex;size:64;not null" json:"accountId"`
	DisplayName     string    `gorm:"size:64;not null" json:"displayName"`
	GoogleProfileID *string   `gorm:"column:google_profile_id;uniqueIndex;size:191" json:"-"`
	AvatarURL       *string   `gorm:"column:avatar_url;size:255" json:"avatarUrl"`
	Bio             *string   `gorm:"size:1024" json:"bio"`
	// 用户侧没有删号入口，封禁走管理端软删
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 读取 user 详情时附带最近 20 条 post（读时 join，不是缓存）
	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

func (User) TableName() string { return "users" }

// AuthUser 登录用户的会话快照，只含展示所需字段。
// googleProfileId 与时间戳刻意不入缓存。
type AuthUser struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"accountId"`
	DisplayName string  `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
}

// Snapshot 从持久化记录投影出会话快照
func (u *User) Snapshot() *AuthUser {
	return &AuthUser{
		ID:          u.ID,
		AccountID:   u.AccountID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
	}
}

// UserUpdate 资料编辑的部分字段，nil 表示不改
type UserUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// FindByID 附带最近 20 条 post；未找到返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByGoogleProfileID(ctx context.Context, profileID string) (*User, error)
	Update(ctx context.Context, id string, upd UserUpdate) error
	Paginate(ctx context.Context, limit, offset int) ([]User, error)
}
