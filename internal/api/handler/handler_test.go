package handler

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/model"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/viewcache"
	"PrintDungeon/internal/repository"
	"PrintDungeon/internal/service"
	"PrintDungeon/internal/testutils"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuth 以请求头模拟登录态，X-User 为空时视为匿名
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetHeader("X-User"); uid != "" {
			c.Set(consts.ContextUserID, uid)
			var roles []string
			if r := c.GetHeader("X-Roles"); r != "" {
				roles = strings.Split(r, ",")
			}
			c.Set(consts.ContextRoles, roles)
		}
		c.Next()
	}
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutils.NewDB(t)
	testutils.NewRedis(t)

	modelRepo := repository.NewModelRepo(db)
	viewBufferRepo := repository.NewViewBufferRepo(db)
	cache := viewcache.NewMemoryCache(time.Hour, 5*time.Minute)

	viewH := NewViewHandler(service.NewViewService(viewBufferRepo, modelRepo, cache))
	relationH := NewRelationHandler(service.NewRelationService(repository.NewRelationRepo(db), modelRepo))
	roleH := NewAdminRoleHandler(service.NewUserRolesService(repository.NewUserRepo(db), repository.NewClaimsRepo(db)))
	analyticsH := NewAnalyticsHandler(service.NewAnalyticsService(config.AnalyticsConfig{}, viewBufferRepo,
		repository.NewViewerActivityRepo(db), modelRepo))

	r := gin.New()
	r.Use(fakeAuth())
	r.POST("/views/:model_id", viewH.TrackModelView)
	r.GET("/views/:model_id/count", viewH.GetModelViewCount)
	r.POST("/follow/:user_id", relationH.ToggleFollow)
	r.PUT("/follow/:user_id", relationH.SetFollowing)
	r.GET("/follow/:user_id", relationH.GetFollowStatus)
	r.POST("/like/:model_id", relationH.ToggleLike)
	r.GET("/like/:model_id", relationH.GetLikeStatus)
	r.POST("/favorite/:model_id", relationH.ToggleFavorite)
	r.POST("/roles", roleH.SetUserRole)
	r.GET("/users/:user_id/roles", roleH.GetUserRoles)
	r.GET("/viewers/:model_id", analyticsH.ListViewers)
	return r, db
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, user, body string) envelope {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		parts := strings.SplitN(user, ":", 2)
		req.Header.Set("X-User", parts[0])
		if len(parts) == 2 {
			req.Header.Set("X-Roles", parts[1])
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestViewHandler(t *testing.T) {
	r, _ := newRouter(t)

	res := do(t, r, http.MethodPost, "/views/m1", "", `{"viewerId":"fp-1"}`)
	require.Equal(t, 200, res.Code)
	assert.True(t, decode[map[string]interface{}](t, res.Data)["success"].(bool))

	res = do(t, r, http.MethodPost, "/views/m1", "", `{"viewerId":"fp-1"}`)
	require.Equal(t, 200, res.Code)
	state := decode[map[string]interface{}](t, res.Data)
	assert.False(t, state["success"].(bool))
	assert.Equal(t, service.ReasonCooldown, state["reason"])

	// 登录用户忽略 body 中的指纹
	res = do(t, r, http.MethodPost, "/views/m1", "u1", `{"viewerId":"fp-1"}`)
	assert.True(t, decode[map[string]interface{}](t, res.Data)["success"].(bool))
	res = do(t, r, http.MethodPost, "/views/m1", "u1", "")
	assert.False(t, decode[map[string]interface{}](t, res.Data)["success"].(bool))

	res = do(t, r, http.MethodPost, "/views/m1", "", "")
	assert.Equal(t, service.InvalidArgument, res.Code)

	res = do(t, r, http.MethodPost, "/views/m1", "", `{"viewerId":"`+strings.Repeat("x", 129)+`"}`)
	assert.Equal(t, service.InvalidArgument, res.Code)

	// 含分隔符的 ID 会与其他组合拼出相同的键
	res = do(t, r, http.MethodPost, "/views/m", "", `{"viewerId":"1_v"}`)
	assert.Equal(t, service.InvalidArgument, res.Code)
	res = do(t, r, http.MethodPost, "/views/m_1", "", `{"viewerId":"v"}`)
	assert.Equal(t, service.InvalidArgument, res.Code)
	res = do(t, r, http.MethodPost, "/views/"+strings.Repeat("m", 65), "", `{"viewerId":"v"}`)
	assert.Equal(t, service.InvalidArgument, res.Code)

	res = do(t, r, http.MethodGet, "/views/m1/count", "", "")
	require.Equal(t, 200, res.Code)
	assert.EqualValues(t, 2, decode[map[string]int64](t, res.Data)["viewCount"])

	res = do(t, r, http.MethodGet, "/views/missing/count", "", "")
	assert.Equal(t, service.NotFound, res.Code)
}

func TestRelationHandler_Follow(t *testing.T) {
	r, _ := newRouter(t)

	res := do(t, r, http.MethodPost, "/follow/u2", "", "")
	assert.Equal(t, service.Unauthenticated, res.Code)

	res = do(t, r, http.MethodPost, "/follow/u1", "u1", "")
	assert.Equal(t, service.FailedPrecondition, res.Code)

	res = do(t, r, http.MethodPost, "/follow/b_c", "a", "")
	assert.Equal(t, service.InvalidArgument, res.Code)

	res = do(t, r, http.MethodPost, "/follow/u2", "u1", "")
	require.Equal(t, 200, res.Code)
	state := decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, true, state["isFollowing"])
	assert.EqualValues(t, 1, state["followersCount"])
	assert.EqualValues(t, 1, state["followingCount"])

	// 幂等设置：重复关注不改变计数
	res = do(t, r, http.MethodPut, "/follow/u2", "u1", `{"follow":true}`)
	require.Equal(t, 200, res.Code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, res.Data)["followersCount"])

	res = do(t, r, http.MethodPut, "/follow/u2", "u1", `{}`)
	assert.Equal(t, service.InvalidArgument, res.Code)

	res = do(t, r, http.MethodPut, "/follow/u2", "u1", `{"follow":false}`)
	require.Equal(t, 200, res.Code)

	res = do(t, r, http.MethodGet, "/follow/u2", "u1", "")
	state = decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, false, state["isFollowing"])
	assert.EqualValues(t, 0, state["followersCount"])
}

func TestRelationHandler_LikeAndFavorite(t *testing.T) {
	r, db := newRouter(t)
	require.NoError(t, db.Create(&model.PrintModel{ID: "m1", OwnerID: "owner"}).Error)

	res := do(t, r, http.MethodPost, "/like/m1", "owner", "")
	assert.Equal(t, service.FailedPrecondition, res.Code)

	res = do(t, r, http.MethodPost, "/like/m1", "u1", "")
	require.Equal(t, 200, res.Code)
	like := decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, true, like["isLiked"])
	assert.EqualValues(t, 1, like["likes"])

	res = do(t, r, http.MethodGet, "/like/m1", "u2", "")
	like = decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, false, like["isLiked"])
	assert.EqualValues(t, 1, like["likes"])

	res = do(t, r, http.MethodPost, "/favorite/m1", "owner", "")
	require.Equal(t, 200, res.Code)
	fav := decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, true, fav["isFavorite"])
	assert.EqualValues(t, 1, fav["favoritesCount"])
}

func TestAdminRoleHandler(t *testing.T) {
	r, db := newRouter(t)
	require.NoError(t, repository.NewUserRepo(db).CreateUser(context.Background(), &model.User{ID: "u9"}))

	res := do(t, r, http.MethodPost, "/roles", "boss:moderator", `{"uid":"u9","role":"moderator","enable":true}`)
	assert.Equal(t, service.PermissionDenied, res.Code)

	res = do(t, r, http.MethodPost, "/roles", "boss:admin", `{"uid":"u9","role":"moderator"}`)
	assert.Equal(t, service.InvalidArgument, res.Code)

	res = do(t, r, http.MethodPost, "/roles", "boss:admin", `{"uid":"nobody","role":"moderator","enable":true}`)
	assert.Equal(t, service.NotFound, res.Code)

	res = do(t, r, http.MethodPost, "/roles", "boss:admin", `{"uid":"u9","role":"moderator","enable":true}`)
	require.Equal(t, 200, res.Code)

	res = do(t, r, http.MethodGet, "/users/u9/roles", "boss:admin", "")
	require.Equal(t, 200, res.Code)
	roles := decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, []interface{}{"moderator"}, roles["roles"])
	assert.Equal(t, map[string]interface{}{"moderator": true}, roles["claims"])
}

func TestAnalyticsHandler_ListViewers(t *testing.T) {
	r, db := newRouter(t)
	require.NoError(t, db.Create(&model.PrintModel{ID: "m1", OwnerID: "owner"}).Error)

	res := do(t, r, http.MethodGet, "/viewers/m1", "stranger", "")
	assert.Equal(t, service.PermissionDenied, res.Code)

	res = do(t, r, http.MethodGet, "/viewers/m1?page_size=500", "owner", "")
	assert.Equal(t, service.InvalidArgument, res.Code)

	res = do(t, r, http.MethodGet, "/viewers/m1?page=1&page_size=10", "owner", "")
	require.Equal(t, 200, res.Code)
	list := decode[map[string]interface{}](t, res.Data)
	assert.EqualValues(t, 0, list["total"])

	res = do(t, r, http.MethodGet, "/viewers/m1", "root:admin", "")
	assert.Equal(t, 200, res.Code)
}
