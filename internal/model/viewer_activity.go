package model

import "time"

// ViewerActivity 按 (模型, 访客) 聚合的互动汇总
type ViewerActivity struct {
	ID               string    `gorm:"primaryKey;type:varchar(200)" json:"id"`
	ModelID          string    `gorm:"type:varchar(64);not null;index:idx_model_last,priority:1" json:"modelId"`
	ViewerID         string    `gorm:"type:varchar(128);not null" json:"viewerId"`
	TotalEngagements int64     `gorm:"not null;default:0" json:"totalEngagements"`
	LastEngagementAt time.Time `gorm:"index:idx_model_last,priority:2" json:"lastEngagementAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (ViewerActivity) TableName() string {
	return "viewer_activity"
}

func ViewerActivityID(modelID, viewerID string) string {
	return modelID + "_" + viewerID
}
