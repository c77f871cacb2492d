package model

import (
	"time"
)

type User struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Username       string     `gorm:"type:varchar(50);not null;default:''" json:"username"`
	FollowersCount int64      `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount int64      `gorm:"not null;default:0" json:"followingCount"`
	UploadsCount   int64      `gorm:"not null;default:0" json:"uploadsCount"`
	Roles          StringList `gorm:"type:json" json:"roles"`
	Favorites      StringList `gorm:"type:json" json:"favorites"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
