package response

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
)

// gin.Context 中保存失败的 *Error 与响应体，sentry 中间件从这里取出上报
const (
	ErrorContextKey    = "error"
	ResponseContextKey = "response_body"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 是对外的业务错误。码表在 code.go，实例只读，派生一律走 WithOrigin/WithTips
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin"`

	cause error // 总是带堆栈
}

func newError(code int32, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) clone() *Error {
	c := *e
	return &c
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode 供 sentry 判断是否需要上报
func (e *Error) GetCode() int32 { return e.Code }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) StackTrace() pkgerrors.StackTrace {
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 按错误码比较，附带的 origin 与提示不参与
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithOrigin 挂上底层错误。origin 只在 debug 模式返回给前端
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}
	c := e.clone()
	c.cause = err
	c.Origin = fmt.Sprintf("%+v", err)
	return c
}

// WithTips 把提示拼到 msg 后面，release 模式也可见
func (e *Error) WithTips(tips ...string) *Error {
	if len(tips) == 0 {
		return e
	}
	c := e.clone()
	c.Message = e.Message + ": " + strings.Join(tips, "; ")
	return c
}

// FromStore 将存储层错误映射为对外错误码，映射关系只在这里维护。
// 领域原因先于哨兵匹配，例如同一事件重复入队既是 ErrConflict 也是 ErrTeamPerEvent
func FromStore(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrTransition):
		return ErrStatusTransition.WithOrigin(err)
	case errors.Is(err, model.ErrTeamPerEvent):
		return ErrAlreadyInTeam.WithOrigin(err)
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound.WithOrigin(err)
	case errors.Is(err, store.ErrConflict):
		return ErrAlreadyExists.WithOrigin(err)
	case errors.Is(err, store.ErrInvalid):
		return ErrInvalidRequest.WithOrigin(err).WithTips(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return ErrStoreTimeout.WithOrigin(err)
	default:
		return ErrDatabase.WithOrigin(err)
	}
}
