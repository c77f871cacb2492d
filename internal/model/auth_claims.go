package model

import "time"

// AuthClaims 身份提供方侧的自定义声明，是角色的权威来源
type AuthClaims struct {
	UserID    string   `gorm:"primaryKey;type:varchar(64)"`
	Claims    ClaimSet `gorm:"type:json"`
	UpdatedAt time.Time
}

func (AuthClaims) TableName() string {
	return "auth_claims"
}
