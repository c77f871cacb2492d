package model

import (
	"time"
)

// Like 行存在即代表已点赞，ID 为 {userId}_{modelId}
type Like struct {
	ID        string    `gorm:"primaryKey;type:varchar(160)" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_user_id" json:"userId"`
	ModelID   string    `gorm:"type:varchar(64);not null;index:idx_model_id" json:"modelId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

func LikeID(userID, modelID string) string {
	return userID + "_" + modelID
}
