package context

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/sentry"
	"innovation-hub/internal/model"
)

const tokenKey = "token"

// SetUser 由认证中间件调用
func SetUser(c *gin.Context, u *model.User, token string) {
	c.Set(sentry.UserContextKey, u)
	c.Set(tokenKey, token)
}

func GetUser(c *gin.Context) (user *model.User, exist bool) {
	v, _ := c.Get(sentry.UserContextKey)
	user, exist = v.(*model.User)
	return
}

func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
