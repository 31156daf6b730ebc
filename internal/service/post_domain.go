package service

import (
	"context"
	"time"

	"sns-api/internal/domain"
	"sns-api/pkg/utils"
)

const defaultPostPageLimit = 10

// PostDomain 帖子 CRUD。只负责 ID/时间戳盖章和分页默认值，
// 没有别的业务规则。
type PostDomain struct {
	posts domain.PostRepository
}

func NewPostDomain(posts domain.PostRepository) *PostDomain {
	return &PostDomain{posts: posts}
}

func (d *PostDomain) Create(ctx context.Context, userID, content string) (*domain.Post, error) {
	now := time.Now()
	p := &domain.Post{
		ID:        utils.NewID(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		Content:   content,
	}
	if err := d.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get 附带作者；未找到返回 (nil, nil)
func (d *PostDomain) Get(ctx context.Context, id string) (*domain.Post, error) {
	return d.posts.FindByID(ctx, id)
}

// Update 只允许改 content，updatedAt 由服务端刷新
func (d *PostDomain) Update(ctx context.Context, id, content string) error {
	return d.posts.Update(ctx, id, content, time.Now())
}

func (d *PostDomain) Delete(ctx context.Context, id string) error {
	return d.posts.Delete(ctx, id)
}

func (d *PostDomain) Paginate(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	limit, offset = clampPage(limit, offset)
	return d.posts.Paginate(ctx, limit, offset)
}

func (d *PostDomain) PaginateByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	limit, offset = clampPage(limit, offset)
	return d.posts.PaginateByUserID(ctx, userID, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPostPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
