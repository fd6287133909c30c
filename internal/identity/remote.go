package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Remote 对接 GoTrue 兼容的认证服务（Supabase Auth）
type Remote struct {
	client  *resty.Client
	baseURL string
	now     func() time.Time
}

// NewRemote client 由调用方创建，便于注入追踪与测试服务地址
func NewRemote(client *resty.Client, baseURL, apiKey string) *Remote {
	baseURL = strings.TrimRight(baseURL, "/")
	client.SetBaseURL(baseURL).
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json")
	return &Remote{client: client, baseURL: baseURL, now: time.Now}
}

type remoteUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type remoteSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	ExpiresAt   int64       `json:"expires_at"`
	User        *remoteUser `json:"user"`
}

// signup 在开启邮件确认时直接返回用户对象，此时没有 access_token
type signUpResponse struct {
	remoteSession
	remoteUser
}

type remoteError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
	Code        any    `json:"code"`
}

func (e *remoteError) message() string {
	for _, s := range []string{e.Description, e.Msg, e.Error} {
		if s != "" {
			return s
		}
	}
	return "unknown error"
}

func (r *Remote) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var out remoteSession
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&remoteError{}).
		Post("/auth/v1/token")
	if err := r.check(resp, err, ErrInvalidCredentials); err != nil {
		return nil, err
	}
	return r.session(&out)
}

func (r *Remote) SignUp(ctx context.Context, fullName, email, password string) (*Session, error) {
	var out signUpResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":    email,
			"password": password,
			"data":     map[string]string{"full_name": fullName},
		}).
		SetResult(&out).
		SetError(&remoteError{}).
		Post("/auth/v1/signup")
	if err := r.check(resp, err, ErrAccountExists); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, nil
	}
	return r.session(&out.remoteSession)
}

func (r *Remote) SignOut(ctx context.Context, token string) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&remoteError{}).
		Post("/auth/v1/logout")
	return r.check(resp, err, ErrTokenInvalid)
}

// OAuthURL 只拼接授权地址，浏览器跳转后由前端把令牌交回 /auth/session
func (r *Remote) OAuthURL(_ context.Context, provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", ErrUnsupported
	}
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return r.baseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

func (r *Remote) Account(ctx context.Context, token string) (*Account, error) {
	var out remoteUser
	resp, err := r.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&out).
		SetError(&remoteError{}).
		Get("/auth/v1/user")
	if err := r.check(resp, err, ErrSessionExpired); err != nil {
		return nil, err
	}
	return out.account(), nil
}

// check 把传输错误与 5xx 归为 ErrProvider，4xx 归为 clientErr
func (r *Remote) check(resp *resty.Response, err error, clientErr error) error {
	if err != nil {
		return errors.Wrap(ErrProvider, err.Error())
	}
	if !resp.IsError() {
		return nil
	}
	msg := resp.Status()
	if e, ok := resp.Error().(*remoteError); ok && e != nil {
		msg = e.message()
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return errors.Wrap(ErrProvider, msg)
	}
	return fmt.Errorf("%w: %s", clientErr, msg)
}

func (r *Remote) session(s *remoteSession) (*Session, error) {
	if s.AccessToken == "" || s.User == nil {
		return nil, errors.Wrap(ErrProvider, "malformed session response")
	}
	expires := time.Unix(s.ExpiresAt, 0)
	if s.ExpiresAt == 0 {
		expires = r.now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return &Session{AccessToken: s.AccessToken, ExpiresAt: expires, Account: *s.User.account()}, nil
}

func (u *remoteUser) account() *Account {
	a := &Account{ID: u.ID, Email: u.Email}
	for _, key := range []string{"full_name", "name"} {
		if v, ok := u.UserMetadata[key].(string); ok && v != "" {
			a.FullName = v
			break
		}
	}
	return a
}
