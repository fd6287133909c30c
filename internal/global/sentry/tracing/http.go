package tracing

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"

	"innovation-hub/config"
)

// restySpanKey 只取本包创建的 span，避免误结束上层 transaction
type restySpanKey struct{}

func restySpan(ctx context.Context) *sentry.Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(restySpanKey{}).(*sentry.Span)
	return span
}

// SetupResty 为访问身份服务的 resty 客户端添加追踪，并透传 sentry-trace 头
func SetupResty(client *resty.Client) {
	if !config.Get().Sentry.Tracing.TraceHTTPCalls {
		return
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		span := StartSpan(req.Context(), "http.client", req.Method+" "+SanitizeURL(req.URL))
		if span == nil {
			return nil
		}
		span.SetData("http.request.method", req.Method)
		req.SetHeader("sentry-trace", span.ToSentryTrace())
		if baggage := span.ToBaggage(); baggage != "" {
			req.SetHeader("baggage", baggage)
		}
		req.SetContext(context.WithValue(span.Context(), restySpanKey{}, span))
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		span := restySpan(resp.Request.Context())
		if span == nil {
			return nil
		}
		span.SetData("http.response.status_code", resp.StatusCode())
		var err error
		if resp.StatusCode() >= 400 {
			err = errors.New(resp.Status())
		}
		Finish(span, time.Time{}, 0, err)
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		if req == nil {
			return
		}
		Finish(restySpan(req.Context()), time.Time{}, 0, err)
	})
}

// SanitizeURL 去掉查询参数，避免 token 等敏感信息进入 span
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Host == "" && u.Path == "") {
		return "unknown"
	}
	out := u.Host + u.Path
	if u.Scheme != "" {
		out = u.Scheme + "://" + out
	}
	return out
}
