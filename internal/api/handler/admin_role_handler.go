package handler

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/response"
	"PrintDungeon/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminRoleHandler struct {
	rolesSvc service.UserRolesService
}

func NewAdminRoleHandler(rolesSvc service.UserRolesService) *AdminRoleHandler {
	return &AdminRoleHandler{rolesSvc: rolesSvc}
}

// SetUserRole 路由层已校验 admin，服务层按 token 中的角色再校验一次
func (s *AdminRoleHandler) SetUserRole(c *gin.Context) {
	var req dto.SetUserRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.rolesSvc.SetUserRole(c.Request.Context(), c.GetStringSlice(consts.ContextRoles), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminRoleHandler) GetUserRoles(c *gin.Context) {
	res, err := s.rolesSvc.GetUserRoles(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
