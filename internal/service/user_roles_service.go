package service

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/redis"
	"PrintDungeon/internal/pkg/util"
	"PrintDungeon/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// UserRolesService 角色以身份 claims 为准，users.roles 只是镜像
type UserRolesService interface {
	SetUserRole(ctx context.Context, callerRoles []string, req *dto.SetUserRoleReq) (*dto.SetUserRoleDTO, error)
	GetUserRoles(ctx context.Context, userID string) (*dto.UserRolesDTO, error)
	// ReconcileRoles 按 claims 重写 users.roles
	ReconcileRoles(ctx context.Context, userID string) error
}

type userRolesServiceImpl struct {
	userRepo   repository.UserRepo
	claimsRepo repository.ClaimsRepo
}

func NewUserRolesService(userRepo repository.UserRepo, claimsRepo repository.ClaimsRepo) UserRolesService {
	return &userRolesServiceImpl{
		userRepo:   userRepo,
		claimsRepo: claimsRepo,
	}
}

func (s *userRolesServiceImpl) SetUserRole(ctx context.Context, callerRoles []string, req *dto.SetUserRoleReq) (*dto.SetUserRoleDTO, error) {
	if !hasRole(callerRoles, consts.RoleAdmin) {
		return nil, ErrPermissionDenied
	}
	if req == nil {
		return nil, ErrParamInvalid
	}
	if err := util.ValidateDTO(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParamInvalid, err)
	}

	user, err := s.userRepo.GetUser(ctx, req.UID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 第一阶段：写回完整 claims
	claims, err := s.claimsRepo.GetClaims(ctx, req.UID)
	if err != nil {
		return nil, err
	}
	if *req.Enable {
		claims[req.Role] = true
	} else {
		delete(claims, req.Role)
	}
	if err = s.claimsRepo.SetClaims(ctx, req.UID, claims); err != nil {
		return nil, err
	}

	// 第二阶段：镜像到用户资料，失败时登记待对账
	if err = s.userRepo.UpdateRoles(ctx, req.UID, claims.Roles()); err != nil {
		log.ErrorContext(ctx, "mirror roles failed, marked dirty", "uid", req.UID, "err", err)
		if dirtyErr := redis.SAdd(ctx, consts.UserRolesDirtyKey, req.UID); dirtyErr != nil {
			log.ErrorContext(ctx, "mark roles dirty failed", "uid", req.UID, "err", dirtyErr)
		}
		return nil, ErrRoleMirrorFailed
	}

	log.InfoContext(ctx, "user role updated", "uid", req.UID, "role", req.Role, "enable", *req.Enable)
	return &dto.SetUserRoleDTO{Status: "ok"}, nil
}

func (s *userRolesServiceImpl) GetUserRoles(ctx context.Context, userID string) (*dto.UserRolesDTO, error) {
	if userID == "" {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	claims, err := s.claimsRepo.GetClaims(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles := []string(user.Roles)
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserRolesDTO{UserID: userID, Claims: claims, Roles: roles}, nil
}

func (s *userRolesServiceImpl) ReconcileRoles(ctx context.Context, userID string) error {
	claims, err := s.claimsRepo.GetClaims(ctx, userID)
	if err != nil {
		return err
	}
	err = s.userRepo.UpdateRoles(ctx, userID, claims.Roles())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.WarnContext(ctx, "reconcile roles: user gone", "uid", userID)
		return nil
	}
	return err
}
