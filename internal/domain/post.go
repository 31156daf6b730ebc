package domain

import (
	"context"
	"time"
)

type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"column:user_id;index;size:36;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Content   string    `gorm:"type:text;not null" json:"content"`

	// 列表/详情读取时附带作者
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Post) TableName() string { return "posts" }

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	// FindByID 附带作者；未找到返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, id string, content string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Paginate(ctx context.Context, limit, offset int) ([]Post, error)
	PaginateByUserID(ctx context.Context, userID string, limit, offset int) ([]Post, error)
}
