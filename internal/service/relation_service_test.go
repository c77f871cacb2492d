package service

import (
	"PrintDungeon/internal/model"
	"PrintDungeon/internal/repository"
	"PrintDungeon/internal/testutils"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func newTestRelationService(t *testing.T) (RelationService, *gorm.DB) {
	t.Helper()
	db := testutils.NewDB(t)
	return NewRelationService(repository.NewRelationRepo(db), repository.NewModelRepo(db)), db
}

func TestToggleFollow_ParityAndCounters(t *testing.T) {
	svc, db := newTestRelationService(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		res, err := svc.ToggleFollow(ctx, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, i%2 == 1, res.IsFollowing)

		var rows int64
		require.NoError(t, db.Model(&model.Follow{}).Where("following_id = ?", "b").Count(&rows).Error)
		assert.Equal(t, rows, res.FollowersCount)
		assert.Equal(t, rows, res.FollowingCount)
	}
}

func TestToggleFollow_SelfRejectedWithoutWrites(t *testing.T) {
	svc, db := newTestRelationService(t)

	_, err := svc.ToggleFollow(context.Background(), "a", "a")
	assert.ErrorIs(t, err, ErrUserFollowSelf)

	var users, follows int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.Follow{}).Count(&follows).Error)
	assert.Zero(t, users)
	assert.Zero(t, follows)
}

func TestToggleFollow_RequiresActor(t *testing.T) {
	svc, _ := newTestRelationService(t)
	_, err := svc.ToggleFollow(context.Background(), "", "b")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.ToggleFollow(context.Background(), "a", "")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetFollowStatus(t *testing.T) {
	svc, _ := newTestRelationService(t)
	ctx := context.Background()

	self, err := svc.GetFollowStatus(ctx, "a", "a")
	require.NoError(t, err)
	assert.False(t, self.IsFollowing)
	assert.Zero(t, self.FollowersCount)

	_, err = svc.ToggleFollow(ctx, "a", "b")
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, "c", "b")
	require.NoError(t, err)

	st, err := svc.GetFollowStatus(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, st.IsFollowing)
	assert.EqualValues(t, 2, st.FollowersCount)
	assert.EqualValues(t, 1, st.FollowingCount)
}

func TestSetFollowing(t *testing.T) {
	svc, _ := newTestRelationService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := svc.SetFollowing(ctx, "a", "b", true)
		require.NoError(t, err)
		assert.True(t, res.IsFollowing)
		assert.EqualValues(t, 1, res.FollowersCount)
	}

	res, err := svc.SetFollowing(ctx, "a", "b", false)
	require.NoError(t, err)
	assert.False(t, res.IsFollowing)
	assert.Zero(t, res.FollowersCount)

	_, err = svc.SetFollowing(ctx, "a", "a", true)
	assert.ErrorIs(t, err, ErrUserFollowSelf)
}

func TestToggleLike(t *testing.T) {
	svc, db := newTestRelationService(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&model.PrintModel{ID: "m1", OwnerID: "owner"}).Error)

	_, err := svc.ToggleLike(ctx, "owner", "m1")
	assert.ErrorIs(t, err, ErrLikeOwnModel)

	res, err := svc.ToggleLike(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, res.IsLiked)
	assert.EqualValues(t, 1, res.Likes)

	_, err = svc.ToggleLike(ctx, "u2", "m1")
	require.NoError(t, err)

	st, err := svc.GetLikeStatus(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, st.IsLiked)
	assert.EqualValues(t, 2, st.Likes)

	res, err = svc.ToggleLike(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.False(t, res.IsLiked)
	assert.EqualValues(t, 1, res.Likes)
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newTestRelationService(t)
	ctx := context.Background()

	res, err := svc.ToggleFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, res.IsFavorite)
	assert.EqualValues(t, 1, res.FavoritesCount)

	res, err = svc.ToggleFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.False(t, res.IsFavorite)
	assert.Zero(t, res.FavoritesCount)
}

func TestRelation_RejectsAmbiguousIDs(t *testing.T) {
	svc, db := newTestRelationService(t)
	ctx := context.Background()

	// (a_b, c) 与 (a, b_c) 会拼出同一个 follows 主键
	_, err := svc.ToggleFollow(ctx, "a_b", "c")
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.ToggleFollow(ctx, "a", "b_c")
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.SetFollowing(ctx, "a", "b_c", true)
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.ToggleLike(ctx, "u_1", "m1")
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.ToggleFavorite(ctx, "u1", "m_1")
	assert.ErrorIs(t, err, ErrParamInvalid)

	tooLong := strings.Repeat("m", 65)
	_, err = svc.ToggleLike(ctx, "u1", tooLong)
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.ToggleFavorite(ctx, "u1", tooLong)
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.ToggleFollow(ctx, "u1", strings.Repeat("u", 65))
	assert.ErrorIs(t, err, ErrParamInvalid)

	var users, follows, likes, models int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.Follow{}).Count(&follows).Error)
	require.NoError(t, db.Model(&model.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&model.PrintModel{}).Count(&models).Error)
	assert.Zero(t, users+follows+likes+models)
}

func TestToggle_ConcurrentCountersMatchRows(t *testing.T) {
	svc, db := newTestRelationService(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&model.PrintModel{ID: "m1", OwnerID: "owner"}).Error)

	var g errgroup.Group
	// 同一对关注反复切换 10 次，结果应为未关注
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := svc.ToggleFollow(ctx, "a", "b")
			return err
		})
	}
	// 不同用户同时关注 b、点赞 m1
	for i := 0; i < 6; i++ {
		uid := fmt.Sprintf("f%d", i)
		g.Go(func() error {
			if _, err := svc.ToggleFollow(ctx, uid, "b"); err != nil {
				return err
			}
			_, err := svc.ToggleLike(ctx, uid, "m1")
			return err
		})
	}
	// 同一用户点赞 3 次，结果应为已点赞
	for i := 0; i < 3; i++ {
		g.Go(func() error {
			_, err := svc.ToggleLike(ctx, "a", "m1")
			return err
		})
	}
	require.NoError(t, g.Wait())

	st, err := svc.GetFollowStatus(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, st.IsFollowing)

	var followRows int64
	require.NoError(t, db.Model(&model.Follow{}).Where("following_id = ?", "b").Count(&followRows).Error)
	assert.EqualValues(t, 6, followRows)
	assert.Equal(t, followRows, st.FollowersCount)

	var users []model.User
	require.NoError(t, db.Find(&users).Error)
	for _, u := range users {
		var following, followers int64
		require.NoError(t, db.Model(&model.Follow{}).Where("follower_id = ?", u.ID).Count(&following).Error)
		require.NoError(t, db.Model(&model.Follow{}).Where("following_id = ?", u.ID).Count(&followers).Error)
		assert.Equal(t, following, u.FollowingCount, "following of %s", u.ID)
		assert.Equal(t, followers, u.FollowersCount, "followers of %s", u.ID)
	}

	like, err := svc.GetLikeStatus(ctx, "a", "m1")
	require.NoError(t, err)
	assert.True(t, like.IsLiked)

	var likeRows int64
	require.NoError(t, db.Model(&model.Like{}).Where("model_id = ?", "m1").Count(&likeRows).Error)
	assert.EqualValues(t, 7, likeRows)
	assert.Equal(t, likeRows, like.Likes)
}
