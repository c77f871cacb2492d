package service

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/model"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/repository"
	"PrintDungeon/internal/testutils"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = []string{consts.RoleAdmin}

func boolPtr(b bool) *bool { return &b }

func TestSetUserRole_RequiresAdmin(t *testing.T) {
	db := testutils.NewDB(t)
	svc := NewUserRolesService(repository.NewUserRepo(db), repository.NewClaimsRepo(db))

	_, err := svc.SetUserRole(context.Background(), []string{"moderator"},
		&dto.SetUserRoleReq{UID: "u1", Role: "moderator", Enable: boolPtr(true)})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSetUserRole_MirrorsClaims(t *testing.T) {
	db := testutils.NewDB(t)
	userRepo := repository.NewUserRepo(db)
	claimsRepo := repository.NewClaimsRepo(db)
	svc := NewUserRolesService(userRepo, claimsRepo)
	ctx := context.Background()
	require.NoError(t, userRepo.CreateUser(ctx, &model.User{ID: "u1", Username: "alice"}))

	res, err := svc.SetUserRole(ctx, admin, &dto.SetUserRoleReq{UID: "u1", Role: "moderator", Enable: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	_, err = svc.SetUserRole(ctx, admin, &dto.SetUserRoleReq{UID: "u1", Role: "creator", Enable: boolPtr(true)})
	require.NoError(t, err)

	u, err := userRepo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"creator", "moderator"}, u.Roles)

	_, err = svc.SetUserRole(ctx, admin, &dto.SetUserRoleReq{UID: "u1", Role: "moderator", Enable: boolPtr(false)})
	require.NoError(t, err)

	snapshot, err := svc.GetUserRoles(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"creator"}, snapshot.Roles)
	assert.Equal(t, map[string]bool{"creator": true}, snapshot.Claims)
}

func TestSetUserRole_Validation(t *testing.T) {
	db := testutils.NewDB(t)
	svc := NewUserRolesService(repository.NewUserRepo(db), repository.NewClaimsRepo(db))
	ctx := context.Background()

	_, err := svc.SetUserRole(ctx, admin, &dto.SetUserRoleReq{UID: "u1", Role: "moderator"})
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.SetUserRole(ctx, admin, &dto.SetUserRoleReq{Role: "moderator", Enable: boolPtr(true)})
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.SetUserRole(ctx, admin, &dto.SetUserRoleReq{UID: "ghost", Role: "moderator", Enable: boolPtr(true)})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type brokenMirrorRepo struct {
	repository.UserRepo
}

func (brokenMirrorRepo) UpdateRoles(context.Context, string, []string) error {
	return errors.New("write failed")
}

func TestSetUserRole_MirrorFailureMarksDirtyAndReconciles(t *testing.T) {
	db := testutils.NewDB(t)
	mr, _ := testutils.NewRedis(t)
	userRepo := repository.NewUserRepo(db)
	claimsRepo := repository.NewClaimsRepo(db)
	ctx := context.Background()
	require.NoError(t, userRepo.CreateUser(ctx, &model.User{ID: "u1"}))

	broken := NewUserRolesService(brokenMirrorRepo{userRepo}, claimsRepo)
	_, err := broken.SetUserRole(ctx, admin, &dto.SetUserRoleReq{UID: "u1", Role: "moderator", Enable: boolPtr(true)})
	assert.ErrorIs(t, err, ErrRoleMirrorFailed)

	members, err := mr.Members(consts.UserRolesDirtyKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, members)

	claims, err := claimsRepo.GetClaims(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, claims["moderator"])

	healthy := NewUserRolesService(userRepo, claimsRepo)
	require.NoError(t, healthy.ReconcileRoles(ctx, "u1"))
	u, err := userRepo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"moderator"}, u.Roles)

	assert.NoError(t, healthy.ReconcileRoles(ctx, "ghost"))
}
