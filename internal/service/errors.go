package service

import (
	"errors"
)

// 业务码，与错误种类一一对应
const (
	Unauthenticated     = 401
	InvalidArgument     = 400
	FailedPrecondition  = 412
	NotFound            = 404
	PermissionDenied    = 403
	InternalServerError = 500
)

var (
	ErrUnauthenticated  = errors.New("未登录")
	ErrParamInvalid     = errors.New("参数错误")
	ErrModelNotFound    = errors.New("模型不存在")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUserFollowSelf   = errors.New("用户不能关注自己")
	ErrLikeOwnModel     = errors.New("不能点赞自己的模型")
	ErrSysBoxNotFound   = errors.New("系统通知不存在")
	ErrPermissionDenied = errors.New("权限不足")
	ErrRoleMirrorFailed = errors.New("角色已更新，同步用户资料失败")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrUnauthenticated:  Unauthenticated,
	ErrParamInvalid:     InvalidArgument,
	ErrModelNotFound:    NotFound,
	ErrUserNotFound:     NotFound,
	ErrUserFollowSelf:   FailedPrecondition,
	ErrLikeOwnModel:     FailedPrecondition,
	ErrSysBoxNotFound:   NotFound,
	ErrPermissionDenied: PermissionDenied,
	ErrRoleMirrorFailed: InternalServerError,
	UnExpectedError:     InternalServerError,
}

// CodeOf 返回错误对应的业务码，未登记的错误视为内部错误
func CodeOf(err error) (int, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return InternalServerError, false
}
