package auth

import (
	"time"

	"github.com/gin-gonic/gin"

	ctxutil "innovation-hub/internal/global/context"
	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/identity"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
)

// AuthResult 认证类接口统一的返回体
type AuthResult struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
	User      *model.User `json:"user,omitempty"`
	Pending   bool        `json:"pending,omitempty"` // 注册成功，等待邮件确认
}

func resultOf(r *identity.Result) AuthResult {
	out := AuthResult{Success: true, Token: r.Token, User: r.User, Pending: r.Pending}
	if !r.ExpiresAt.IsZero() {
		t := r.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}

type SignInReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpReq struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"` // bcrypt 只处理前 72 字节
}

type SessionReq struct {
	AccessToken string `json:"access_token" binding:"required"`
}

type ProfileReq struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

func fail(c *gin.Context, msg string, err error, attrs ...any) {
	e := middleware.IdentityError(err)
	attrs = append(attrs, "error", err)
	if e.Code >= 50000 {
		log.Error(msg, attrs...)
	} else {
		log.Warn(msg, attrs...)
	}
	response.Fail(c, e)
}

// SignIn 邮箱密码登录
func SignIn(c *gin.Context) {
	var req SignInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	res, err := authenticator.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, "登录失败", err, "email", req.Email)
		return
	}
	response.Success(c, resultOf(res))
}

// SignUp 注册；需要邮件确认时 pending=true 且不返回令牌
func SignUp(c *gin.Context) {
	var req SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	res, err := authenticator.SignUp(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		fail(c, "注册失败", err, "email", req.Email)
		return
	}
	log.Info("用户注册", "email", req.Email, "pending", res.Pending)
	response.Success(c, resultOf(res))
}

// AdoptSession 登记 OAuth 回调得到的令牌
func AdoptSession(c *gin.Context) {
	var req SessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	res, err := authenticator.Adopt(c.Request.Context(), req.AccessToken)
	if err != nil {
		fail(c, "登记 OAuth 会话失败", err)
		return
	}
	response.Success(c, resultOf(res))
}

// OAuth 返回第三方登录跳转地址，redirect_to 缺省时使用配置
func OAuth(c *gin.Context) {
	redirectTo := c.DefaultQuery("redirect_to", redirectURL)
	url, err := authenticator.SignInWithOAuth(c.Request.Context(), c.Param("provider"), redirectTo)
	if err != nil {
		fail(c, "获取 OAuth 地址失败", err, "provider", c.Param("provider"))
		return
	}
	response.Success(c, gin.H{"success": true, "url": url})
}

func SignOut(c *gin.Context) {
	user, _ := ctxutil.GetUser(c)
	if err := authenticator.SignOut(c.Request.Context(), ctxutil.GetToken(c)); err != nil {
		fail(c, "注销失败", err)
		return
	}
	logger.WithRequest(log, c).Info("用户注销", "user_id", user.GetID())
	response.Success(c, AuthResult{Success: true})
}

func Me(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"user":         user,
		"display_name": user.DisplayName(),
		"is_admin":     user.IsAdmin(),
	})
}

// UpdateMe 修改自己的资料，请求中的角色字段会被忽略
func UpdateMe(c *gin.Context) {
	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	user, err := authenticator.UpdateProfile(c.Request.Context(), ctxutil.GetToken(c), model.ProfilePatch{FullName: req.FullName})
	if err != nil {
		fail(c, "更新资料失败", err)
		return
	}
	response.Success(c, AuthResult{Success: true, User: user})
}
