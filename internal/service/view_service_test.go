package service

import (
	"PrintDungeon/internal/model"
	"PrintDungeon/internal/pkg/viewcache"
	"PrintDungeon/internal/repository"
	"PrintDungeon/internal/testutils"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestViewService(t *testing.T, c *clock) (*viewServiceImpl, *gorm.DB) {
	t.Helper()
	db := testutils.NewDB(t)
	cache := viewcache.NewMemoryCache(time.Hour, 5*time.Minute)
	return newViewService(repository.NewViewBufferRepo(db), repository.NewModelRepo(db), cache, c.Now), db
}

func TestTrackModelView_CooldownSuppressesDuplicate(t *testing.T) {
	c := newClock()
	svc, _ := newTestViewService(t, c)
	ctx := context.Background()

	res, err := svc.TrackModelView(ctx, "m1", "v1")
	require.NoError(t, err)
	assert.True(t, res.Success)

	c.Advance(10 * time.Minute)
	res, err = svc.TrackModelView(ctx, "m1", "v1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonCooldown, res.Reason)

	count, err := svc.GetModelViewCount(ctx, "m1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count.ViewCount)
}

func TestTrackModelView_AfterCooldownCountsAgain(t *testing.T) {
	c := newClock()
	svc, db := newTestViewService(t, c)
	ctx := context.Background()

	_, err := svc.TrackModelView(ctx, "m1", "v1")
	require.NoError(t, err)
	c.Advance(time.Hour + time.Second)
	res, err := svc.TrackModelView(ctx, "m1", "v1")
	require.NoError(t, err)
	assert.True(t, res.Success)

	count, err := svc.GetModelViewCount(ctx, "m1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count.ViewCount)

	var buffered int64
	require.NoError(t, db.Model(&model.ViewBufferEntry{}).Count(&buffered).Error)
	assert.EqualValues(t, 2, buffered)
}

func TestTrackModelView_InvalidArgument(t *testing.T) {
	svc, _ := newTestViewService(t, newClock())
	_, err := svc.TrackModelView(context.Background(), "m1", "")
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.TrackModelView(context.Background(), "", "v1")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestTrackModelView_RejectsAmbiguousIDs(t *testing.T) {
	svc, db := newTestViewService(t, newClock())
	ctx := context.Background()

	// (m_1, v) 与 (m, 1_v) 拼出的冷却键相同
	_, err := svc.TrackModelView(ctx, "m_1", "v")
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.TrackModelView(ctx, "m", "1_v")
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.TrackModelView(ctx, strings.Repeat("m", 65), "v")
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.TrackModelView(ctx, "m", strings.Repeat("v", 129))
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.GetModelViewCount(ctx, strings.Repeat("m", 65))
	assert.ErrorIs(t, err, ErrParamInvalid)

	var buffered int64
	require.NoError(t, db.Model(&model.ViewBufferEntry{}).Count(&buffered).Error)
	assert.Zero(t, buffered)

	// 合法的 (m, v) 不受之前请求影响
	res, err := svc.TrackModelView(ctx, "m", "v")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestGetModelViewCount_NotFound(t *testing.T) {
	svc, _ := newTestViewService(t, newClock())
	_, err := svc.GetModelViewCount(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

type failingViewRepo struct {
	repository.ViewBufferRepo
}

func (failingViewRepo) RecordView(context.Context, string, string, time.Time) error {
	return errors.New("db down")
}

func TestTrackModelView_FailureDoesNotRecordCooldown(t *testing.T) {
	c := newClock()
	db := testutils.NewDB(t)
	cache := viewcache.NewMemoryCache(time.Hour, 5*time.Minute)
	svc := newViewService(failingViewRepo{}, repository.NewModelRepo(db), cache, c.Now)
	ctx := context.Background()

	_, err := svc.TrackModelView(ctx, "m1", "v1")
	assert.ErrorIs(t, err, UnExpectedError)
	assert.True(t, cache.ShouldAccept(ctx, "m1", "v1", c.Now()))

	svc.viewBufferRepo = repository.NewViewBufferRepo(db)
	res, err := svc.TrackModelView(ctx, "m1", "v1")
	require.NoError(t, err)
	assert.True(t, res.Success)
}
