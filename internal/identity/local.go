package identity

import (
	"context"
	"errors"
	"strings"

	"innovation-hub/internal/global/jwt"
	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
	"innovation-hub/tools"
)

// Local 内置账号体系：密码 bcrypt 存于 User，令牌为本服务签发的 JWT
type Local struct {
	users  store.Users
	signer *jwt.Signer
}

func NewLocal(users store.Users, signer *jwt.Signer) *Local {
	return &Local{users: users, signer: signer}
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := l.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !tools.PasswordCompare(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return l.issue(u)
}

func (l *Local) SignUp(ctx context.Context, fullName, email, password string) (*Session, error) {
	u := model.User{
		Email:        normalizeEmail(email),
		Role:         model.RoleUser,
		PasswordHash: tools.PasswordEncrypt(password),
	}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		u.FullName = model.Str(fullName)
	}
	created, err := l.users.AddUser(ctx, u)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrAccountExists
	}
	if err != nil {
		return nil, err
	}
	return l.issue(created)
}

// SignOut 令牌本身无状态，注销由会话表完成
func (l *Local) SignOut(context.Context, string) error {
	return nil
}

func (l *Local) OAuthURL(context.Context, string, string) (string, error) {
	return "", ErrUnsupported
}

func (l *Local) Account(ctx context.Context, token string) (*Account, error) {
	claims, err := l.signer.ParseToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrSessionExpired
	case err != nil:
		return nil, ErrTokenInvalid
	}
	u, err := l.users.GetUser(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	return accountOf(u), nil
}

func (l *Local) issue(u *model.User) (*Session, error) {
	token, claims, err := l.signer.CreateToken(jwt.Payload{UserID: u.ID, Email: u.Email, Role: string(u.Role)})
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: token, ExpiresAt: claims.Expiry(), Account: *accountOf(u)}, nil
}

func accountOf(u *model.User) *Account {
	return &Account{ID: u.ID, Email: u.Email, FullName: model.Deref(u.FullName)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
