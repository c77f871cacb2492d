package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中携带的身份信息，Roles 为身份提供方 claims 中为 true 的标记
type UserClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *UserClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
