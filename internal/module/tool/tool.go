// Package tool 各业务模块共用的请求辅助函数
package tool

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	ctxutil "innovation-hub/internal/global/context"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/policy"
	"innovation-hub/internal/store"
)

// CurrentUser 取认证中间件写入的用户，缺失时直接响应 401
func CurrentUser(c *gin.Context) (*model.User, bool) {
	u, ok := ctxutil.GetUser(c)
	if !ok || u == nil {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	return u, true
}

// RosterFor 只加载当前用户的成员关系，足以回答该用户的所有权限问题
func RosterFor(ctx context.Context, teams store.Teams, u *model.User) (*policy.Roster, error) {
	members, err := teams.ListMemberships(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return policy.NewRoster(members...), nil
}

// StoreFail 记录日志并把存储错误映射为响应；5xx 记 Error，其余记 Warn
func StoreFail(c *gin.Context, log *slog.Logger, msg string, err error, attrs ...any) {
	e := response.FromStore(err)
	attrs = append(attrs, "error", err)
	if e.Code >= 50000 {
		log.Error(msg, attrs...)
	} else {
		log.Warn(msg, attrs...)
	}
	response.Fail(c, e)
}

// GetPage 从查询参数读取分页，未提供 page 时返回 ok=false 表示不分页。
// 可变参数依次是 defaultPageSize, maxPageSize
func GetPage(c *gin.Context, defaults ...uint) (offset, limit int, ok bool) {
	defaultPageSize, maxPageSize := 20, 200
	if len(defaults) > 0 && defaults[0] <= math.MaxInt32 {
		defaultPageSize = int(defaults[0])
	}
	if len(defaults) > 1 && defaults[1] <= math.MaxInt32 {
		maxPageSize = int(defaults[1])
	}
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.Query("page_size"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}
	// 页码过大时乘法会溢出，视为越界的空页
	if page-1 > math.MaxInt/limit {
		return math.MaxInt, limit, true
	}
	return (page - 1) * limit, limit, true
}

// Slice 按 offset/limit 截取，越界时返回空切片
func Slice[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) || limit < 1 {
		return []T{}
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end]
}
