package handler

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/api/middleware"
	"PrintDungeon/internal/pkg/response"
	"PrintDungeon/internal/service"

	"github.com/gin-gonic/gin"
)

type SysBoxHandler struct {
	sysBoxService service.SysBoxService
}

func NewSysBoxHandler(s service.SysBoxService) *SysBoxHandler {
	return &SysBoxHandler{
		sysBoxService: s,
	}
}

// GetNotificationList 获取通知列表
func (h *SysBoxHandler) GetNotificationList(c *gin.Context) {
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

	list, err := h.sysBoxService.GetNotificationList(c.Request.Context(), userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadCount 获取未读数
func (h *SysBoxHandler) GetUnreadCount(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	unread, err := h.sysBoxService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

// MarkRead 标记单条已读
func (h *SysBoxHandler) MarkRead(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SysBoxMarkReadReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = h.sysBoxService.MarkRead(c.Request.Context(), userID, req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 一键已读
func (h *SysBoxHandler) MarkAllRead(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = h.sysBoxService.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
