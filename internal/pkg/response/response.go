package response

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/pkg/util"
	"PrintDungeon/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = service.InvalidArgument
	Unauthorized        = service.Unauthenticated
	Forbidden           = service.PermissionDenied
	NotFound            = service.NotFound
	InternalServerError = service.InternalServerError
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 将错误映射为业务码，未登记的错误只记录日志不外露
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error()+": "+util.ValidationMessage(ve))
		return
	}

	if isDecodeError(err) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	code, ok := service.CodeOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Unhandled error", "err", err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, rootMessage(err))
}

// rootMessage 返回被包装的哨兵错误文案，避免泄露包装链
func rootMessage(err error) string {
	for target := range service.ErrorMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// isDecodeError gin 默认使用标准库解码，两种实现的错误类型都要识别
func isDecodeError(err error) bool {
	var goccyType *json.UnmarshalTypeError
	var goccySyntax *json.SyntaxError
	var stdType *stdjson.UnmarshalTypeError
	var stdSyntax *stdjson.SyntaxError
	return errors.As(err, &goccyType) || errors.As(err, &goccySyntax) ||
		errors.As(err, &stdType) || errors.As(err, &stdSyntax) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
