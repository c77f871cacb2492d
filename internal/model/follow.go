package model

import "time"

// Follow 行存在即代表已关注，ID 为 {followerId}_{followingId}
type Follow struct {
	ID          string    `gorm:"primaryKey;type:varchar(160)" json:"id"`
	FollowerID  string    `gorm:"type:varchar(64);not null;index:idx_follower_id" json:"followerId"`
	FollowingID string    `gorm:"type:varchar(64);not null;index:idx_following_id" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}

func FollowID(followerID, followingID string) string {
	return followerID + "_" + followingID
}
