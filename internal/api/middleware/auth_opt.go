package middleware

import (
	"PrintDungeon/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功且未吊销时注入 UID，否则 UID 为空串
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		// 已吊销或查询失败均按匿名处理
		if err := checkRevoked(c.Request.Context(), token); err != nil {
			c.Next()
			return
		}
		if claims, err := security.Default().ValidateToken(token); err == nil {
			setIdentity(c, claims)
		}

		c.Next()
	}
}
