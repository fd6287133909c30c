package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"innovation-hub/config"
	"innovation-hub/internal/app"
	"innovation-hub/internal/global/jwt"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/identity"
	"innovation-hub/internal/store/memory"
)

// Seeded 演示账号，密码均为 memory.DemoPassword
const (
	AdminEmail  = "admin@teko.vn"
	LeaderEmail = "user@teko.vn"       // 团队 1 队长
	MemberEmail = "duc.le@teko.vn"     // 团队 1 成员
	OtherEmail  = "huong.pham@teko.vn" // 团队 2 队长
)

// NewDeps 基于演示数据的内存存储与本地身份提供方
func NewDeps(t *testing.T) *app.Deps {
	t.Helper()
	cfg := config.Default()
	s, err := memory.NewSeeded()
	require.NoError(t, err)
	auth := identity.NewAuthenticator(
		identity.NewLocal(s, jwt.NewSigner(cfg.JWT)),
		s,
		identity.NewMemorySessions(),
		identity.NewNotifier(),
	)
	return &app.Deps{Config: cfg, Store: s, Auth: auth}
}

// Login 以演示账号登录并返回令牌
func Login(t *testing.T, deps *app.Deps, email string) string {
	t.Helper()
	res, err := deps.Auth.SignIn(context.Background(), email, memory.DemoPassword)
	require.NoError(t, err)
	return res.Token
}

// NewRouter 创建挂在 /api 下的测试路由，initRouter 通常为模块的 InitRouter
func NewRouter(initRouter func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	initRouter(r.Group("/api"))
	return r
}

func DoRequest(t *testing.T, h http.Handler, method, target, token string, request any) (resp response.ResponseBody) {
	t.Helper()
	w := Do(t, h, method, target, token, request)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// Do 返回原始响应，用于检查状态码或非 JSON 响应
func Do(t *testing.T, h http.Handler, method, target, token string, request any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if request != nil {
		b, err := json.Marshal(request)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
