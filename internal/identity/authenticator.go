package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
)

const defaultSessionTTL = time.Hour

// Result 登录类操作的结果，Pending 表示注册成功但需邮件确认
type Result struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
	Pending   bool
}

// Authenticator 把提供方账号映射为本地用户并维护会话
type Authenticator struct {
	provider Provider
	users    store.Users
	sessions SessionStore
	notifier *Notifier
	log      *slog.Logger
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Authenticator)

// WithSessionTTL 提供方未给出过期时间时（OAuth 回传的令牌）使用的会话时长
func WithSessionTTL(ttl time.Duration) Option {
	return func(a *Authenticator) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(a *Authenticator) { a.log = log }
}

func withClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

func NewAuthenticator(p Provider, users store.Users, sessions SessionStore, n *Notifier, opts ...Option) *Authenticator {
	a := &Authenticator{
		provider: p,
		users:    users,
		sessions: sessions,
		notifier: n,
		log:      slog.Default(),
		ttl:      defaultSessionTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Authenticator) Notifier() *Notifier {
	return a.notifier
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Result, error) {
	sess, err := a.provider.SignIn(ctx, normalizeEmail(email), password)
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, sess)
}

func (a *Authenticator) SignUp(ctx context.Context, fullName, email, password string) (*Result, error) {
	sess, err := a.provider.SignUp(ctx, strings.TrimSpace(fullName), normalizeEmail(email), password)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		a.log.Info("注册待邮件确认", "email", normalizeEmail(email))
		return &Result{Pending: true}, nil
	}
	return a.establish(ctx, sess)
}

// SignInWithOAuth 返回第三方登录跳转地址
func (a *Authenticator) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	return a.provider.OAuthURL(ctx, provider, redirectTo)
}

// Adopt 登记 OAuth 跳转回来的令牌
func (a *Authenticator) Adopt(ctx context.Context, token string) (*Result, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}
	acct, err := a.provider.Account(ctx, token)
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, &Session{AccessToken: token, ExpiresAt: a.now().Add(a.ttl), Account: *acct})
}

// SignOut 先删本地会话，提供方注销失败只记录日志
func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	rec, err := a.sessions.Get(ctx, token)
	if err != nil && !errors.Is(err, ErrNoSession) {
		return err
	}
	if err := a.sessions.Delete(ctx, token); err != nil {
		return err
	}
	if perr := a.provider.SignOut(ctx, token); perr != nil {
		a.log.Warn("身份服务注销失败", "error", perr)
	}
	if rec != nil {
		a.publish(ctx, SignedOut, rec.UserID)
	}
	return nil
}

// CurrentUser 解析令牌对应的用户；不存在或已过期的会话一律拒绝
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}
	rec, err := a.sessions.Get(ctx, token)
	if errors.Is(err, ErrNoSession) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	if rec.Expired(a.now()) {
		if err := a.sessions.Delete(ctx, token); err != nil {
			a.log.Warn("清理过期会话失败", "error", err)
		}
		a.publish(ctx, Expired, rec.UserID)
		return nil, ErrSessionExpired
	}
	u, err := a.users.GetUser(ctx, rec.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrTokenInvalid
	}
	return u, err
}

// UpdateProfile 只能修改自己的资料，角色不可变
func (a *Authenticator) UpdateProfile(ctx context.Context, token string, patch model.ProfilePatch) (*model.User, error) {
	u, err := a.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return a.users.UpdateUser(ctx, u.ID, patch)
}

func (a *Authenticator) establish(ctx context.Context, sess *Session) (*Result, error) {
	u, err := a.ensureProfile(ctx, &sess.Account)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.Save(ctx, sess.AccessToken, SessionRecord{UserID: u.ID, ExpiresAt: sess.ExpiresAt}); err != nil {
		return nil, err
	}
	a.notifier.Publish(SessionEvent{Kind: SignedIn, User: *u})
	a.log.Info("用户登录", "user_id", u.ID, "role", u.Role)
	return &Result{Token: sess.AccessToken, ExpiresAt: sess.ExpiresAt, User: u}, nil
}

// ensureProfile 首次登录时为账号创建角色为 user 的资料
func (a *Authenticator) ensureProfile(ctx context.Context, acct *Account) (*model.User, error) {
	if acct.ID == "" {
		return nil, ErrTokenInvalid
	}
	u, err := a.users.GetUser(ctx, acct.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(acct.FullName)
	if name == "" {
		name = model.EmailLocalPart(acct.Email)
	}
	created, err := a.users.AddUser(ctx, model.User{
		Model:    model.Model{ID: acct.ID},
		Email:    normalizeEmail(acct.Email),
		FullName: model.Str(name),
		Role:     model.RoleUser,
	})
	if errors.Is(err, store.ErrConflict) {
		// 并发的首次登录已经建好了资料
		return a.users.GetUser(ctx, acct.ID)
	}
	if err != nil {
		return nil, err
	}
	a.log.Info("创建用户资料", "user_id", created.ID, "email", created.Email)
	return created, nil
}

func (a *Authenticator) publish(ctx context.Context, kind SessionEventKind, userID string) {
	evt := SessionEvent{Kind: kind}
	if u, err := a.users.GetUser(ctx, userID); err == nil {
		evt.User = *u
	} else {
		evt.User.ID = userID
	}
	a.notifier.Publish(evt)
}
