package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	ctxutil "innovation-hub/internal/global/context"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/identity"
	"innovation-hub/internal/model"
)

// UserResolver 根据访问令牌解析当前用户
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// Auth 校验 Bearer 令牌，minRole 为 admin 时只放行管理员
func Auth(resolver UserResolver, minRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		user, err := resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			response.Fail(c, IdentityError(err))
			c.Abort()
			return
		}
		if minRole == model.RoleAdmin && !user.IsAdmin() {
			response.Fail(c, response.ErrForbidden)
			c.Abort()
			return
		}

		ctxutil.SetUser(c, user, token)
		c.Next()
	}
}

// BearerToken 读取 Authorization 头中的令牌
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// IdentityError 把身份层错误映射为响应码
func IdentityError(err error) *response.Error {
	var e *response.Error
	switch {
	case errors.As(err, &e):
		return e
	case errors.Is(err, identity.ErrInvalidCredentials):
		return response.ErrInvalidPassword.WithOrigin(err)
	case errors.Is(err, identity.ErrAccountExists):
		return response.ErrAlreadyExists.WithTips("该邮箱已注册")
	case errors.Is(err, identity.ErrSessionExpired):
		return response.ErrSessionExpired.WithOrigin(err)
	case errors.Is(err, identity.ErrTokenInvalid):
		return response.ErrTokenInvalid.WithOrigin(err)
	case errors.Is(err, identity.ErrUnsupported):
		return response.ErrInvalidRequest.WithTips("当前身份提供方不支持该操作")
	case errors.Is(err, identity.ErrProvider):
		return response.ErrIdentityProvider.WithOrigin(err)
	default:
		return response.FromStore(err)
	}
}
