package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务参考数据请求（管理员）
type CreateTaskRequest struct {
	Code         string   `json:"code"           binding:"required,max=50"`
	Title        string   `json:"title"          binding:"required,max=200"`
	Category     string   `json:"category"       binding:"required,oneof=academic athletic recruiting exposure mindset"`
	GradeLevel   int      `json:"grade_level"    binding:"required,min=9,max=12"`
	IsRequired   bool     `json:"is_required"`
	PrereqCodes  []string `json:"prereq_codes"`
	WhyItMatters string   `json:"why_it_matters"`
	Divisions    []string `json:"divisions"      binding:"omitempty,dive,oneof=D1 D2 D3 NAIA JUCO"`
	SortOrder    int      `json:"sort_order"`
}

// UpdateTaskRequest 更新任务参考数据请求（管理员）
type UpdateTaskRequest struct {
	Title        *string   `json:"title"          binding:"omitempty,max=200"`
	Category     *string   `json:"category"       binding:"omitempty,oneof=academic athletic recruiting exposure mindset"`
	GradeLevel   *int      `json:"grade_level"    binding:"omitempty,min=9,max=12"`
	IsRequired   *bool     `json:"is_required"`
	PrereqCodes  *[]string `json:"prereq_codes"`
	WhyItMatters *string   `json:"why_it_matters"`
	Divisions    *[]string `json:"divisions"      binding:"omitempty,dive,oneof=D1 D2 D3 NAIA JUCO"`
	SortOrder    *int      `json:"sort_order"`
}

// TaskListRequest 运动员任务列表查询参数
type TaskListRequest struct {
	GradeLevel int    `form:"grade_level" binding:"omitempty,min=9,max=12"`
	Category   string `form:"category"    binding:"omitempty,oneof=academic athletic recruiting exposure mindset"`
}

// UpdateTaskStatusRequest 任务状态变更请求
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=not_started in_progress completed skipped"`
}

// TaskResponse 任务参考数据响应
type TaskResponse struct {
	ID           string   `json:"id"`
	Code         string   `json:"code"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	GradeLevel   int      `json:"grade_level"`
	IsRequired   bool     `json:"is_required"`
	PrereqCodes  []string `json:"prereq_codes"`
	WhyItMatters string   `json:"why_it_matters"`
	Divisions    []string `json:"divisions"`
	SortOrder    int      `json:"sort_order"`
}

// AthleteTaskResponse 运动员视角的任务响应：参考数据 + 本人状态 + 锁定判定
type AthleteTaskResponse struct {
	TaskResponse
	Status         string   `json:"status"`
	CompletedAt    string   `json:"completed_at,omitempty"`
	IsRecoveryTask bool     `json:"is_recovery_task"`
	Locked         bool     `json:"locked"`
	BlockingTitles []string `json:"blocking_titles,omitempty"`
}

// [自证通过] internal/dto/task.go
