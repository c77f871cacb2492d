package handler

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/api/middleware"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/response"
	"PrintDungeon/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// ListViewers 模型访客汇总，作者或管理员可见
func (s *AnalyticsHandler) ListViewers(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var page dto.PageReq
	if err = c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.analyticsSvc.ListViewers(c.Request.Context(), userID, c.GetStringSlice(consts.ContextRoles),
		c.Param("model_id"), page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
