package api

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/api/middleware"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pingPath = "/api/ping"

func SetupRouter(cfg *config.Config, group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware(pingPath))
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))
	logger.SetupGin(r, cfg.Logstash.Index, cfg.Logstash.Token)

	r.GET(pingPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Response{Code: http.StatusOK, Message: "pong"})
	})

	apiGroup := r.Group("/api")
	{
		viewGroup := apiGroup.Group("/views/models/:model_id")
		{
			viewGroup.GET("/count", group.ViewHandler.GetModelViewCount)
			viewGroup.POST("", middleware.AuthOptionalMiddleware(), group.ViewHandler.TrackModelView)
		}

		relationGroup := apiGroup.Group("/relations")
		relationGroup.Use(middleware.AuthMiddleware())
		{
			relationGroup.POST("/follow/:user_id", group.RelationHandler.ToggleFollow)
			relationGroup.PUT("/follow/:user_id", group.RelationHandler.SetFollowing)
			relationGroup.GET("/follow/:user_id", group.RelationHandler.GetFollowStatus)
			relationGroup.POST("/like/:model_id", group.RelationHandler.ToggleLike)
			relationGroup.GET("/like/:model_id", group.RelationHandler.GetLikeStatus)
			relationGroup.POST("/favorite/:model_id", group.RelationHandler.ToggleFavorite)
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.POST("/roles", group.AdminRoleHandler.SetUserRole)
			adminGroup.GET("/users/:user_id/roles", group.AdminRoleHandler.GetUserRoles)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			analyticsGroup.GET("/models/:model_id/viewers", group.AnalyticsHandler.ListViewers)
		}

		if group.SysBoxHandler != nil {
			sysbox := apiGroup.Group("/sysbox")
			sysbox.Use(middleware.AuthMiddleware())
			{
				sysbox.GET("/list", group.SysBoxHandler.GetNotificationList)
				sysbox.GET("/unread", group.SysBoxHandler.GetUnreadCount)
				sysbox.POST("/read", group.SysBoxHandler.MarkRead)
				sysbox.POST("/read/all", group.SysBoxHandler.MarkAllRead)
			}
		}
	}

	return r
}
