package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/config"
	"innovation-hub/internal/global/jwt"
	"innovation-hub/internal/model"
	"innovation-hub/internal/store/memory"
)

func newLocalAuth(t *testing.T, opts ...Option) (*Authenticator, *memory.Store) {
	t.Helper()
	s, err := memory.NewSeeded()
	require.NoError(t, err)
	signer := jwt.NewSigner(config.JWT{AccessSecret: "test", AccessExpire: 3600})
	a := NewAuthenticator(NewLocal(s, signer), s, NewMemorySessions(), NewNotifier(), opts...)
	return a, s
}

// stubProvider 模拟外部提供方，账号没有本地资料
type stubProvider struct {
	acct Account
}

func (p *stubProvider) SignIn(context.Context, string, string) (*Session, error) {
	return &Session{AccessToken: "tok-" + p.acct.ID, ExpiresAt: time.Now().Add(time.Hour), Account: p.acct}, nil
}

func (p *stubProvider) SignUp(context.Context, string, string, string) (*Session, error) {
	return nil, nil
}

func (p *stubProvider) SignOut(context.Context, string) error { return nil }

func (p *stubProvider) OAuthURL(_ context.Context, provider, _ string) (string, error) {
	return "https://auth.example.com/authorize?provider=" + provider, nil
}

func (p *stubProvider) Account(_ context.Context, token string) (*Account, error) {
	if token != "oauth-token" {
		return nil, ErrSessionExpired
	}
	return &p.acct, nil
}

func TestSignInSeededAdmin(t *testing.T) {
	a, _ := newLocalAuth(t)
	ctx := context.Background()

	res, err := a.SignIn(ctx, " Admin@Teko.vn ", memory.DemoPassword)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "1", res.User.ID)
	assert.True(t, res.User.IsAdmin())

	u, err := a.CurrentUser(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
}

func TestSignInWrongPassword(t *testing.T) {
	a, _ := newLocalAuth(t)
	_, err := a.SignIn(context.Background(), "admin@teko.vn", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.SignIn(context.Background(), "missing@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpCreatesUserProfile(t *testing.T) {
	a, s := newLocalAuth(t)
	ctx := context.Background()

	res, err := a.SignUp(ctx, "  Dana Lee ", "dana@example.com", "secret-pass")
	require.NoError(t, err)
	assert.False(t, res.Pending)
	assert.Equal(t, model.RoleUser, res.User.Role)
	assert.Equal(t, "Dana Lee", model.Deref(res.User.FullName))

	stored, err := s.GetUserByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, stored.ID)

	_, err = a.SignUp(ctx, "Dana", "DANA@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestFirstSignInMirrorsProfile(t *testing.T) {
	s := memory.New()
	p := &stubProvider{acct: Account{ID: "ext-1", Email: "newbie@example.com"}}
	a := NewAuthenticator(p, s, NewMemorySessions(), NewNotifier())
	ctx := context.Background()

	res, err := a.SignIn(ctx, "newbie@example.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", res.User.ID)
	assert.Equal(t, model.RoleUser, res.User.Role)
	assert.Equal(t, "newbie", model.Deref(res.User.FullName))

	// 第二次登录复用已有资料
	res2, err := a.SignIn(ctx, "newbie@example.com", "x")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, res2.User.ID)
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMetadataNameWins(t *testing.T) {
	p := &stubProvider{acct: Account{ID: "ext-2", Email: "x@example.com", FullName: "Xavier"}}
	a := NewAuthenticator(p, memory.New(), NewMemorySessions(), NewNotifier())

	res, err := a.SignIn(context.Background(), "x@example.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "Xavier", model.Deref(res.User.FullName))
}

func TestSignUpPending(t *testing.T) {
	p := &stubProvider{acct: Account{ID: "ext-3", Email: "p@example.com"}}
	a := NewAuthenticator(p, memory.New(), NewMemorySessions(), NewNotifier())

	res, err := a.SignUp(context.Background(), "P", "p@example.com", "x")
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.Empty(t, res.Token)
	assert.Nil(t, res.User)
}

func TestAdoptOAuthToken(t *testing.T) {
	p := &stubProvider{acct: Account{ID: "ext-4", Email: "o@example.com"}}
	a := NewAuthenticator(p, memory.New(), NewMemorySessions(), NewNotifier(), WithSessionTTL(time.Minute))
	ctx := context.Background()

	url, err := a.SignInWithOAuth(ctx, "github", "")
	require.NoError(t, err)
	assert.Contains(t, url, "provider=github")

	_, err = a.Adopt(ctx, "bad")
	assert.ErrorIs(t, err, ErrSessionExpired)
	_, err = a.Adopt(ctx, "")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	res, err := a.Adopt(ctx, "oauth-token")
	require.NoError(t, err)
	u, err := a.CurrentUser(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "ext-4", u.ID)
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now()
	a, _ := newLocalAuth(t, withClock(func() time.Time { return now }))
	ctx := context.Background()
	events, cancel := a.Notifier().Subscribe(4)
	defer cancel()

	res, err := a.SignIn(ctx, "admin@teko.vn", memory.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, SignedIn, (<-events).Kind)

	now = res.ExpiresAt.Add(time.Second)
	_, err = a.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)
	evt := <-events
	assert.Equal(t, Expired, evt.Kind)
	assert.Equal(t, "1", evt.User.ID)

	// 过期会话已被清理
	_, err = a.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSignOut(t *testing.T) {
	a, _ := newLocalAuth(t)
	ctx := context.Background()
	events, cancel := a.Notifier().Subscribe(4)
	defer cancel()

	res, err := a.SignIn(ctx, "admin@teko.vn", memory.DemoPassword)
	require.NoError(t, err)
	<-events

	require.NoError(t, a.SignOut(ctx, res.Token))
	evt := <-events
	assert.Equal(t, SignedOut, evt.Kind)
	assert.Equal(t, "1", evt.User.ID)

	_, err = a.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// 重复注销无副作用
	require.NoError(t, a.SignOut(ctx, res.Token))
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	a, _ := newLocalAuth(t)
	ctx := context.Background()

	res, err := a.SignIn(ctx, "admin@teko.vn", memory.DemoPassword)
	require.NoError(t, err)

	u, err := a.UpdateProfile(ctx, res.Token, model.ProfilePatch{FullName: model.Str("Chief")})
	require.NoError(t, err)
	assert.Equal(t, "Chief", model.Deref(u.FullName))
	assert.Equal(t, model.RoleAdmin, u.Role)

	_, err = a.UpdateProfile(ctx, "garbage", model.ProfilePatch{})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCurrentUserEmptyToken(t *testing.T) {
	a, _ := newLocalAuth(t)
	_, err := a.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
