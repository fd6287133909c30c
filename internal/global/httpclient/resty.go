package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"

	"innovation-hub/internal/global/sentry/tracing"
)

const defaultTimeout = 10 * time.Second

var Client *resty.Client

// New 创建带超时与重试的客户端，baseURL 可为空
func New(baseURL string) *resty.Client {
	c := resty.New().
		SetTimeout(defaultTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// 只重试网络错误与 5xx，4xx 为业务结果
			return err != nil || r.StatusCode() >= 500
		})
	if baseURL != "" {
		c.SetBaseURL(baseURL)
	}

	// 配置 Sentry 性能追踪（如果 Sentry 已启用）
	if tracing.IsEnabled() {
		tracing.SetupResty(c)
	}
	return c
}

func Init() {
	Client = New("")
}
