package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sns-api/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return classifyConflict(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).Preload("User").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Update(ctx context.Context, id string, content string, updatedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": updatedAt}).Error
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Post{}).Error
}

func (r *PostRepo) Paginate(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepo) PaginateByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

var _ domain.PostRepository = (*PostRepo)(nil)
