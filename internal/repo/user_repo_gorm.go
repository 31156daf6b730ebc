package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sns-api/internal/domain"
)

// 详情页附带的最近 post 条数
const userRecentPosts = 20

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return classifyConflict(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("Posts", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC, id DESC").Limit(userRecentPosts)
		}).
		First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByGoogleProfileID(ctx context.Context, profileID string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "google_profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, upd domain.UserUpdate) error {
	fields := map[string]any{}
	if upd.DisplayName != nil {
		fields["display_name"] = *upd.DisplayName
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.AvatarURL != nil {
		fields["avatar_url"] = *upd.AvatarURL
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepo) Paginate(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

var _ domain.UserRepository = (*UserRepo)(nil)
