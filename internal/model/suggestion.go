package model

import "time"

// 建议紧急度常量
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// 建议规则类型常量
const (
	RuleNCAARegistration = "ncaa_registration"
	RuleStatusAtRisk     = "status_at_risk"
	RuleFallingBehind    = "falling_behind"
	RuleLowInteraction   = "low_interaction"
	RuleHighlightVideo   = "highlight_video"
	RuleDivisionFit      = "division_fit"
	RuleEventExposure    = "event_exposure"
)

// Suggestion 引擎建议表 — 对应 suggestions
// condition_snapshot 记录触发时的条件指纹：同一规则在条件未变时不重复生成；
// 条件消失又重新出现时生成新行并通过 previous_suggestion_id 链接历史。
type Suggestion struct {
	SuggestionID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"suggestion_id"`
	UserID               string     `gorm:"type:uuid;not null"                             json:"user_id"`
	RuleType             string     `gorm:"type:varchar(50);not null"                      json:"rule_type"`
	Urgency              string     `gorm:"type:varchar(10);not null"                      json:"urgency"`
	Message              string     `gorm:"type:text;not null"                             json:"message"`
	SchoolID             *string    `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	TaskCode             *string    `gorm:"type:varchar(50)"                               json:"task_code,omitempty"`
	Dismissed            bool       `gorm:"not null;default:false"                         json:"dismissed"`
	DismissedAt          *time.Time `gorm:""                                               json:"dismissed_at,omitempty"`
	Completed            bool       `gorm:"not null;default:false"                         json:"completed"`
	CompletedAt          *time.Time `gorm:""                                               json:"completed_at,omitempty"`
	PendingSurface       bool       `gorm:"not null;default:false"                         json:"pending_surface"`
	SurfacedAt           *time.Time `gorm:""                                               json:"surfaced_at,omitempty"`
	ConditionSnapshot    JSONMap    `gorm:"type:jsonb;not null;default:'{}'"               json:"condition_snapshot"`
	Reappeared           bool       `gorm:"not null;default:false"                         json:"reappeared"`
	PreviousSuggestionID *string    `gorm:"type:uuid"                                      json:"previous_suggestion_id,omitempty"`
	CreatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Suggestion) TableName() string { return "suggestions" }

// IsActive 建议是否仍处于活跃状态（未忽略、未完成、已浮出）
func (s *Suggestion) IsActive() bool {
	return !s.Dismissed && !s.Completed && !s.PendingSurface
}

// [自证通过] internal/model/suggestion.go
