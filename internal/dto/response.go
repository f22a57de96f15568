package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"` // Cookie 模式下可不返回
	ExpiresIn    int          `json:"expires_in"`              // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	GradeLevel         *int   `json:"grade_level,omitempty"`
	CurrentPhase       string `json:"current_phase"`
	MustChangePassword bool   `json:"must_change_password"`
}

// UserDetailResponse 用户详细信息（GET /auth/me 与档案页）
type UserDetailResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Role             string                 `json:"role"`
	GradeLevel       *int                   `json:"grade_level,omitempty"`
	GraduationYear   *int                   `json:"graduation_year,omitempty"`
	SportPosition    string                 `json:"sport_position,omitempty"`
	GPA              *float64               `json:"gpa,omitempty"`
	TestPercentile   *int                   `json:"test_percentile,omitempty"`
	NCAARegistered   bool                   `json:"ncaa_registered"`
	SignedCommitment bool                   `json:"signed_commitment"`
	CurrentPhase     string                 `json:"current_phase"`
	StatusScore      *int                   `json:"status_score,omitempty"`
	StatusLabel      string                 `json:"status_label,omitempty"`
	StatusBreakdown  map[string]interface{} `json:"status_breakdown,omitempty"`
	StatusComputedAt string                 `json:"status_computed_at,omitempty"`
	Version          int                    `json:"version"`
	CreatedAt        string                 `json:"created_at"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
