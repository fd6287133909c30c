package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"innovation-hub/config"
	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/sentry"
)

const codeSuccess int32 = 200

type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: codeSuccess, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 返回错误响应。非 *Error 的错误按服务器内部错误处理；
// origin 仅在 debug 模式下返回给前端
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}

	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}

	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)
	if e.Code >= 50000 {
		sentry.CaptureException(c, e)
	}
	c.JSON(e.HTTPStatus(), body)
}

// Recovery 捕获 panic 并以 ErrServerInternal 响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		logger.Get().Error("panic recovered", "error", err, "path", c.Request.URL.Path)
		if c.Writer.Written() {
			c.Abort()
			return
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
		c.Abort()
	}
}
