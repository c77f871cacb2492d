package middleware

import (
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/response"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色，需挂在 AuthMiddleware 之后
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.ContextRoles)

		if !slices.ContainsFunc(requiredRoles, func(r string) bool { return slices.Contains(roles, r) }) {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
