package response

import (
	"PrintDungeon/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func run(t *testing.T, err error) envelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	assert.Equal(t, http.StatusOK, w.Code)
	var out envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestError_MapsWrappedSentinel(t *testing.T) {
	out := run(t, fmt.Errorf("toggle follow: %w", service.ErrUserFollowSelf))
	assert.Equal(t, service.FailedPrecondition, out.Code)
	assert.Equal(t, service.ErrUserFollowSelf.Error(), out.Message)
}

func TestError_UnknownBecomesInternal(t *testing.T) {
	out := run(t, errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, InternalServerError, out.Code)
	assert.Equal(t, service.UnExpectedError.Error(), out.Message)
}

func TestError_NotFound(t *testing.T) {
	out := run(t, service.ErrModelNotFound)
	assert.Equal(t, NotFound, out.Code)
}

func TestError_ValidationNamesField(t *testing.T) {
	err := validator.New().Struct(struct {
		UID string `validate:"required"`
	}{})
	out := run(t, err)
	assert.Equal(t, BadRequest, out.Code)
	assert.Equal(t, service.ErrParamInvalid.Error()+": 字段 [UID] 校验失败，规则 [required]", out.Message)
}
