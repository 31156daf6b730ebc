package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sns-api/internal/domain"
	"sns-api/pkg/utils"
)

const defaultUserPageLimit = 30

// ProfileDefaults 首次登录时从外部身份提供商带来的资料
type ProfileDefaults struct {
	AccountID   string
	DisplayName string
	AvatarURL   *string
	Bio         *string
}

// UserDomain 用户身份对账与资料维护。
// 依赖全部显式注入，不走任何全局查找。
type UserDomain struct {
	users    domain.UserRepository
	sessions *SessionCache
	log      *zap.Logger
}

func NewUserDomain(users domain.UserRepository, sessions *SessionCache, log *zap.Logger) *UserDomain {
	return &UserDomain{users: users, sessions: sessions, log: log}
}

// Reconcile 把外部身份映射到本地 User：有则原样返回（零写入），
// 无则创建。accountId 撞车时带随机后缀重试一次；google_profile_id
// 撞车说明并发首登输了竞态，改查赢家返回。定位不到冲突列的
// 唯一键冲突按失败处理。最多两次写入。
func (d *UserDomain) Reconcile(ctx context.Context, providerKey, providerID string, defaults ProfileDefaults) (*domain.User, error) {
	if providerKey != domain.ProviderGoogle {
		return nil, fmt.Errorf("unsupported identity provider %q", providerKey)
	}

	existing, err := d.users.FindByGoogleProfileID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	u := &domain.User{
		ID:              utils.NewID(),
		CreatedAt:       now,
		UpdatedAt:       now,
		AccountID:       defaults.AccountID,
		DisplayName:     defaults.DisplayName,
		GoogleProfileID: &providerID,
		AvatarURL:       defaults.AvatarURL,
		Bio:             defaults.Bio,
	}

	err = d.users.Create(ctx, u)
	if err == nil {
		d.log.Info("user created",
			zap.String("user_id", u.ID),
			zap.String("provider", providerKey),
		)
		return u, nil
	}

	ce, ok := domain.AsConflict(err)
	if !ok {
		return nil, err
	}

	if ce.Field == domain.ConflictFieldGoogleProfileID {
		// 并发首登：唯一约束是裁判，赢家已入库
		winner, ferr := d.users.FindByGoogleProfileID(ctx, providerID)
		if ferr != nil {
			return nil, ferr
		}
		if winner != nil {
			return winner, nil
		}
		return nil, err
	}

	// 定位不到冲突列就不猜哪条恢复路径，直接上抛
	if ce.Field != domain.ConflictFieldAccountID {
		return nil, err
	}

	// accountId 撞车：后缀随机串重试一次，再失败就放弃
	u.AccountID = defaults.AccountID + utils.ShortToken(8)
	if rerr := d.users.Create(ctx, u); rerr != nil {
		return nil, rerr
	}
	d.log.Info("user created with suffixed account id",
		zap.String("user_id", u.ID),
		zap.String("account_id", u.AccountID),
	)
	return u, nil
}

// Update 写穿到存储后刷新当前会话的快照。快照不存在时不补写，
// 同一用户其他会话的快照也不管——会话缓存归本次请求的会话所有。
func (d *UserDomain) Update(ctx context.Context, id, kvAuthKey string, upd domain.UserUpdate) error {
	if err := d.users.Update(ctx, id, upd); err != nil {
		return err
	}

	snap, err := d.sessions.Get(ctx, kvAuthKey)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	if upd.DisplayName != nil {
		snap.DisplayName = *upd.DisplayName
	}
	if upd.Bio != nil {
		snap.Bio = upd.Bio
	}
	if upd.AvatarURL != nil {
		snap.AvatarURL = upd.AvatarURL
	}
	_, err = d.sessions.Put(ctx, kvAuthKey, snap)
	return err
}

// Get 未找到返回 (nil, nil)
func (d *UserDomain) Get(ctx context.Context, id string) (*domain.User, error) {
	return d.users.FindByID(ctx, id)
}

func (d *UserDomain) Paginate(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultUserPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return d.users.Paginate(ctx, limit, offset)
}
