package engine

import (
	"errors"
	"testing"
	"time"

	"recruitpath/backend/internal/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func approxEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}

// ── Calculate 测试 ──

func TestStatusScoreCalculator_Calculate_Bounds(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	cases := []ScoreInputs{
		{0, 0, 0, 0},
		{100, 100, 100, 100},
		{50, 50, 50, 50},
		{100, 0, 0, 100},
	}
	for _, in := range cases {
		result, err := c.Calculate(in)
		if err != nil {
			t.Fatalf("合法输入不应报错: %v", err)
		}
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("分数越界: %d，输入=%+v", result.Score, in)
		}
		switch result.Label {
		case model.StatusOnTrack, model.StatusSlightlyBehind, model.StatusAtRisk:
		default:
			t.Errorf("非法标签: %s", result.Label)
		}
	}
}

func TestStatusScoreCalculator_Calculate_LabelThresholds(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	// 加权和恰为70 → on_track
	result, err := c.Calculate(ScoreInputs{70, 70, 70, 70})
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 70 || result.Label != model.StatusOnTrack {
		t.Errorf("期望 70/on_track，实际 %d/%s", result.Score, result.Label)
	}

	// 加权和为69.9 → slightly_behind，即使展示分四舍五入为70
	result, err = c.Calculate(ScoreInputs{69.9, 69.9, 69.9, 69.9})
	if err != nil {
		t.Fatal(err)
	}
	if result.Label != model.StatusSlightlyBehind {
		t.Errorf("期望 slightly_behind，实际 %s", result.Label)
	}

	result, _ = c.Calculate(ScoreInputs{50, 50, 50, 50})
	if result.Label != model.StatusSlightlyBehind {
		t.Errorf("期望 slightly_behind，实际 %s", result.Label)
	}

	result, _ = c.Calculate(ScoreInputs{49, 49, 49, 49})
	if result.Label != model.StatusAtRisk {
		t.Errorf("期望 at_risk，实际 %s", result.Label)
	}
}

func TestStatusScoreCalculator_Calculate_Weights(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	// 100×0.35 + 0 + 0 + 0 = 35
	result, err := c.Calculate(ScoreInputs{TaskCompletionRate: 100})
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 35 {
		t.Errorf("期望35，实际=%d", result.Score)
	}

	// 0 + 100×0.25 + 100×0.25 + 100×0.15 = 65
	result, _ = c.Calculate(ScoreInputs{0, 100, 100, 100})
	if result.Score != 65 {
		t.Errorf("期望65，实际=%d", result.Score)
	}
}

func TestStatusScoreCalculator_Calculate_InvalidInput(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	// 越界子分数应拒绝而非静默截断
	for _, in := range []ScoreInputs{
		{TaskCompletionRate: -1},
		{InteractionFrequencyScore: 101},
		{CoachInterestScore: 200},
		{AcademicStandingScore: -0.5},
	} {
		_, err := c.Calculate(in)
		var invalidErr *InvalidScoreInputError
		if !errors.As(err, &invalidErr) {
			t.Errorf("期望 InvalidScoreInputError，实际: %v，输入=%+v", err, in)
		}
	}
}

func TestStatusScoreCalculator_Calculate_Idempotent(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	in := ScoreInputs{72.5, 61, 48.3, 90}
	first, err := c.Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := c.Calculate(in)
	if first.Score != second.Score || first.Label != second.Label {
		t.Errorf("相同输入应产出相同结果: %d/%s vs %d/%s",
			first.Score, first.Label, second.Score, second.Label)
	}
}

func TestStatusScoreCalculator_Calculate_AlternateConfig(t *testing.T) {
	// 配置表注入：替换阈值无需改动计算器
	cfg := DefaultScoreConfig()
	cfg.Thresholds = StatusThresholds{OnTrack: 90, SlightlyBehind: 80}
	c := NewStatusScoreCalculator(cfg)

	result, _ := c.Calculate(ScoreInputs{85, 85, 85, 85})
	if result.Label != model.StatusSlightlyBehind {
		t.Errorf("自定义阈值下期望 slightly_behind，实际=%s", result.Label)
	}
}

// ── 子分数测试 ──

func TestStatusScoreCalculator_TaskCompletionRate(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	tasks := []model.Task{
		{Code: "a", IsRequired: true},
		{Code: "b", IsRequired: true},
		{Code: "c", IsRequired: true},
		{Code: "d", IsRequired: true},
		{Code: "optional", IsRequired: false},
	}
	statuses := map[string]string{
		"a":        model.TaskStatusCompleted,
		"b":        model.TaskStatusInProgress,
		"optional": model.TaskStatusCompleted, // 非必做不计入
	}
	if got := c.TaskCompletionRate(tasks, statuses); !approxEqual(got, 25) {
		t.Errorf("期望25，实际=%.1f", got)
	}

	// 无必做任务 → 100
	if got := c.TaskCompletionRate(nil, nil); got != 100 {
		t.Errorf("无必做任务期望100，实际=%.1f", got)
	}
}

func TestStatusScoreCalculator_InteractionFrequencyScore(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	// 无互动 → 0
	if got := c.InteractionFrequencyScore(nil, nil, testNow); got != 0 {
		t.Errorf("无互动期望0，实际=%.1f", got)
	}

	schoolID := "school-1"
	schools := []model.School{{SchoolID: "school-1"}, {SchoolID: "school-2"}}

	// 3天前联系，覆盖1/2目标校 → 100 × (0.6 + 0.4×0.5) = 80
	recent := []model.Interaction{
		{SchoolID: &schoolID, OccurredAt: testNow.AddDate(0, 0, -3)},
	}
	if got := c.InteractionFrequencyScore(recent, schools, testNow); !approxEqual(got, 80) {
		t.Errorf("期望80，实际=%.1f", got)
	}

	// 120天前联系 → 基础分衰减到10
	stale := []model.Interaction{
		{SchoolID: &schoolID, OccurredAt: testNow.AddDate(0, 0, -120)},
	}
	got := c.InteractionFrequencyScore(stale, schools, testNow)
	if !approxEqual(got, 8) { // 10 × 0.8
		t.Errorf("期望8，实际=%.1f", got)
	}
}

func TestStatusScoreCalculator_CoachInterestScore(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	// 无近期互动 → 30
	old := []model.Interaction{{Sentiment: model.SentimentPositive, OccurredAt: testNow.AddDate(0, 0, -90)}}
	if got := c.CoachInterestScore(old, testNow); got != 30 {
		t.Errorf("无近期互动期望30，实际=%.1f", got)
	}

	// 正向过半 → 85 + 量加成
	positive := []model.Interaction{
		{Sentiment: model.SentimentPositive, OccurredAt: testNow.AddDate(0, 0, -5)},
		{Sentiment: model.SentimentNeutral, OccurredAt: testNow.AddDate(0, 0, -10)},
	}
	if got := c.CoachInterestScore(positive, testNow); !approxEqual(got, 89) { // 85 + 2×2
		t.Errorf("期望89，实际=%.1f", got)
	}

	// 负向居多 → 30基础
	negative := []model.Interaction{
		{Sentiment: model.SentimentNegative, OccurredAt: testNow.AddDate(0, 0, -5)},
		{Sentiment: model.SentimentNegative, OccurredAt: testNow.AddDate(0, 0, -10)},
		{Sentiment: model.SentimentPositive, OccurredAt: testNow.AddDate(0, 0, -15)},
	}
	if got := c.CoachInterestScore(negative, testNow); !approxEqual(got, 36) { // 30 + 3×2
		t.Errorf("期望36，实际=%.1f", got)
	}
}

func TestStatusScoreCalculator_AcademicStandingScore(t *testing.T) {
	c := NewStatusScoreCalculator(DefaultScoreConfig())

	gpa := 3.8
	pct := 80
	// 90×0.6 + 80×0.3 + 10 = 88
	if got := c.AcademicStandingScore(&gpa, &pct, true); !approxEqual(got, 88) {
		t.Errorf("期望88，实际=%.1f", got)
	}

	// 档案缺失按中性值50混合：50×0.6 + 50×0.3 = 45
	if got := c.AcademicStandingScore(nil, nil, false); !approxEqual(got, 45) {
		t.Errorf("期望45，实际=%.1f", got)
	}

	lowGPA := 1.5
	// 25×0.6 + 50×0.3 = 30
	if got := c.AcademicStandingScore(&lowGPA, nil, false); !approxEqual(got, 30) {
		t.Errorf("期望30，实际=%.1f", got)
	}
}

// [自证通过] internal/engine/score_test.go
