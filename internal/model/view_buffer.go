package model

import (
	"time"
)

// ViewBufferEntry 原始浏览事件，批处理后 Processed 置为 true
type ViewBufferEntry struct {
	ID        uint64    `gorm:"primaryKey"`
	ModelID   string    `gorm:"type:varchar(64);not null" json:"modelId"`
	ViewerID  string    `gorm:"type:varchar(128);not null" json:"viewerId"`
	Timestamp time.Time `gorm:"not null;index:idx_processed_ts,priority:2" json:"timestamp"`
	Processed bool      `gorm:"not null;default:false;index:idx_processed_ts,priority:1" json:"processed"`
}

func (ViewBufferEntry) TableName() string {
	return "view_buffer"
}
