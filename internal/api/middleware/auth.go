package middleware

import (
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/redis"
	"PrintDungeon/internal/pkg/response"
	"PrintDungeon/internal/pkg/security"
	"PrintDungeon/internal/service"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if err := checkRevoked(c.Request.Context(), tokenString); err != nil {
			switch {
			case errors.Is(err, errTokenMalformed):
				response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			case errors.Is(err, errTokenRevoked):
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			default:
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		claims, err := security.Default().ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

var (
	errTokenMalformed = errors.New("token malformed")
	errTokenRevoked   = errors.New("token revoked")
)

// checkRevoked 按签名查询吊销名单，两种鉴权中间件共用
func checkRevoked(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return errTokenMalformed
	}
	value, err := redis.GetValue(ctx, consts.TokenRevokedKeyPrefix+signature)
	if err != nil {
		return err
	}
	if value != "" {
		return errTokenRevoked
	}
	return nil
}

func setIdentity(c *gin.Context, claims *security.UserClaims) {
	c.Set(consts.ContextUserID, claims.UserID)
	c.Set(consts.ContextRoles, claims.Roles)

	newCtx := context.WithValue(c.Request.Context(), consts.ContextUserID, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}

// MustUserID 取登录用户，路由未挂鉴权时返回 ErrUnauthenticated
func MustUserID(c *gin.Context) (string, error) {
	userID := c.GetString(consts.ContextUserID)
	if userID == "" {
		return "", service.ErrUnauthenticated
	}
	return userID, nil
}
