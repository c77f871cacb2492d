package model

import "time"

// PrintModel 3D 模型的计数文档
type PrintModel struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID        string     `gorm:"type:varchar(64);index:idx_owner_id;not null;default:''" json:"ownerId"`
	Title          string     `gorm:"type:varchar(255);not null;default:''" json:"title"`
	Views          int64      `gorm:"not null;default:0" json:"views"`
	Likes          int64      `gorm:"not null;default:0" json:"likes"`
	FavoritesCount int64      `gorm:"not null;default:0" json:"favoritesCount"`
	LastViewedAt   *time.Time `json:"lastViewedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (PrintModel) TableName() string {
	return "models"
}
