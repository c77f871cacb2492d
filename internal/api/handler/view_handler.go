package handler

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/response"
	"PrintDungeon/internal/service"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type ViewHandler struct {
	viewSvc service.ViewService
}

func NewViewHandler(viewSvc service.ViewService) *ViewHandler {
	return &ViewHandler{viewSvc: viewSvc}
}

// TrackModelView 登录用户以 user_id 计，匿名访客以 body 中的指纹计
func (s *ViewHandler) TrackModelView(c *gin.Context) {
	var req dto.TrackViewReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return
	}

	viewerID := c.GetString(consts.ContextUserID)
	if viewerID == "" {
		viewerID = req.ViewerID
	}

	res, err := s.viewSvc.TrackModelView(c.Request.Context(), c.Param("model_id"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ViewHandler) GetModelViewCount(c *gin.Context) {
	res, err := s.viewSvc.GetModelViewCount(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
