package dto

// ── 进度模块 DTO ──

// MilestoneProgressResponse 里程碑进度响应
type MilestoneProgressResponse struct {
	Phase           string              `json:"phase"`
	NextPhase       string              `json:"next_phase,omitempty"`
	CanAdvance      bool                `json:"can_advance"`
	Required        []MilestoneTaskItem `json:"required"`
	PercentComplete int                 `json:"percent_complete"`
}

// MilestoneTaskItem 里程碑任务项
type MilestoneTaskItem struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// StatusScoreResponse 状态分数响应
type StatusScoreResponse struct {
	Score      int                    `json:"score"`
	Label      string                 `json:"label"`
	Breakdown  map[string]interface{} `json:"breakdown"`
	ComputedAt string                 `json:"computed_at"`
}

// PriorityTaskResponse "当下最重要"任务项
type PriorityTaskResponse struct {
	Code         string `json:"code"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	WhyItMatters string `json:"why_it_matters"`
	Score        int    `json:"score"`
}

// [自证通过] internal/dto/progress.go
