package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	ErrAccountExists      = errors.New("identity: account already exists")
	ErrTokenInvalid       = errors.New("identity: token invalid")
	ErrSessionExpired     = errors.New("identity: session expired")
	ErrUnsupported        = errors.New("identity: operation not supported by provider")
	ErrProvider           = errors.New("identity: provider unavailable")
)

// Account 身份提供方侧的账号，与本地 User 通过 ID 对应
type Account struct {
	ID       string
	Email    string
	FullName string // 来自注册时的 metadata，可能为空
}

// Session 登录成功后提供方签发的访问令牌
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     Account
}

// Provider 外部身份服务的最小接口
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp 返回 nil 会话表示需要邮件确认
	SignUp(ctx context.Context, fullName, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	OAuthURL(ctx context.Context, provider, redirectTo string) (string, error)
	Account(ctx context.Context, token string) (*Account, error)
}
