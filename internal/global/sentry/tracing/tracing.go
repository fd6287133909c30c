// Package tracing 为存储、Redis 与外部 HTTP 调用创建 Sentry 子 span。
// 只有请求上下文中已有 sentrygin 建立的 transaction 时才会记录
package tracing

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"innovation-hub/config"
)

// IsEnabled 配置了 Sentry DSN 即视为启用
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// StartSpan 在 ctx 中的父 span 下创建子 span；没有父 span 时返回 nil
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	if ctx == nil {
		return nil
	}
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// Finish 结束 span。耗时低于 slow 的 span 不上报，slow 为 0 时全部上报
func Finish(span *sentry.Span, start time.Time, slow time.Duration, err error) {
	if span == nil {
		return
	}
	if slow > 0 && time.Since(start) < slow {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}

func threshold(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
