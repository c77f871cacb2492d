package handler

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/api/middleware"
	"PrintDungeon/internal/pkg/response"
	"PrintDungeon/internal/service"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	relationSvc service.RelationService
}

func NewRelationHandler(relationSvc service.RelationService) *RelationHandler {
	return &RelationHandler{relationSvc: relationSvc}
}

func (s *RelationHandler) ToggleFollow(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.relationSvc.ToggleFollow(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RelationHandler) SetFollowing(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SetFollowingReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.relationSvc.SetFollowing(c.Request.Context(), userID, c.Param("user_id"), *req.Follow)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RelationHandler) GetFollowStatus(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.relationSvc.GetFollowStatus(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RelationHandler) ToggleLike(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.relationSvc.ToggleLike(c.Request.Context(), userID, c.Param("model_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RelationHandler) GetLikeStatus(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.relationSvc.GetLikeStatus(c.Request.Context(), userID, c.Param("model_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RelationHandler) ToggleFavorite(c *gin.Context) {
	userID, err := middleware.MustUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.relationSvc.ToggleFavorite(c.Request.Context(), userID, c.Param("model_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
