package engine

import (
	"time"

	"go.uber.org/zap"

	"recruitpath/backend/internal/model"
)

// ── 建议规则引擎 ──

// RuleContext 规则评估上下文：运动员全量状态的一次性快照。
// 规则只读快照、无副作用，同一快照下全部规则可并行评估。
// Now 由调用方注入，保证评估结果可复现。
type RuleContext struct {
	User         *model.User
	Phase        string
	Schools      []model.School
	Tasks        []model.Task
	TaskStatuses map[string]string // code → status
	Interactions []model.Interaction
	Events       []model.Event
	Videos       []model.Video
	StatusScore  *ScoreResult
	Now          time.Time
}

// GradeLevel 年级；档案未填时返回 0
func (c *RuleContext) GradeLevel() int {
	if c.User == nil || c.User.GradeLevel == nil {
		return 0
	}
	return *c.User.GradeLevel
}

// TaskCompleted 指定 code 的任务是否已完成
func (c *RuleContext) TaskCompleted(code string) bool {
	return c.TaskStatuses[code] == model.TaskStatusCompleted
}

// HasSchoolInDivisions 目标校中是否存在指定分区之一
func (c *RuleContext) HasSchoolInDivisions(divisions ...string) bool {
	for _, s := range c.Schools {
		for _, d := range divisions {
			if s.Division == d {
				return true
			}
		}
	}
	return false
}

// Candidate 规则产出的候选建议
// ConditionSnapshot 捕获触发条件的指纹：持久层据此对未忽略的同类建议
// 去重，对已忽略/已完成后条件复现的情形做 reappeared 链接。
type Candidate struct {
	RuleType          string
	Urgency           string
	Message           string
	SchoolID          *string
	TaskCode          *string
	PendingSurface    bool
	SurfaceAt         *time.Time
	ConditionSnapshot model.JSONMap
	RecoveryTaskCodes []string // falling_behind 规则附带的补救任务 code
}

// Rule 建议规则：对上下文快照评估，不适用或已满足时返回 nil。
// 紧急度由规则自身硬编码，不由分数推导。
type Rule interface {
	Type() string
	Evaluate(rctx *RuleContext) *Candidate
}

// RuleEngine 规则引擎：按注册顺序评估全部规则并收集非空结果
type RuleEngine interface {
	Run(rctx *RuleContext) []Candidate
	Rules() []Rule
}

type ruleEngine struct {
	rules  []Rule
	logger *zap.Logger
}

// NewRuleEngine 创建规则引擎（规则按传入顺序评估）
func NewRuleEngine(logger *zap.Logger, rules ...Rule) RuleEngine {
	return &ruleEngine{rules: rules, logger: logger}
}

// Run 逐规则评估；单条规则 panic 被隔离并记录，不影响其余规则。
// 建议生成对每条规则是尽力而为，永不整体失败。
func (e *ruleEngine) Run(rctx *RuleContext) []Candidate {
	out := make([]Candidate, 0)
	for _, r := range e.rules {
		if c := e.safeEvaluate(r, rctx); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func (e *ruleEngine) Rules() []Rule { return e.rules }

func (e *ruleEngine) safeEvaluate(r Rule, rctx *RuleContext) (c *Candidate) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("建议规则评估失败，已跳过",
				zap.String("rule_type", r.Type()),
				zap.Any("panic", rec))
			c = nil
		}
	}()
	return r.Evaluate(rctx)
}

// [自证通过] internal/engine/rules.go
