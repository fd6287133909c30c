package response

// 错误码为 5 位数，前三位即 HTTP 状态码
var (
	ErrInvalidRequest   = newError(40000, "请求参数错误")
	ErrInvalidPassword  = newError(40001, "邮箱或密码错误")
	ErrEventNotOpen     = newError(40002, "事件未处于开放状态")
	ErrStatusTransition = newError(40003, "事件状态只能向前推进")
	ErrAlreadyInTeam    = newError(40004, "同一事件下只能加入一个团队")

	ErrUnauthorized   = newError(40100, "未登录")
	ErrTokenInvalid   = newError(40101, "登录凭证无效")
	ErrSessionExpired = newError(40102, "登录已过期，请重新登录")

	ErrForbidden = newError(40300, "没有权限")

	ErrNotFound = newError(40400, "资源不存在")

	ErrAlreadyExists = newError(40900, "资源已存在")

	ErrServerInternal   = newError(50000, "服务器内部错误")
	ErrDatabase         = newError(50001, "数据库错误")
	ErrIdentityProvider = newError(50200, "身份服务不可用")
	ErrStoreTimeout     = newError(50400, "存储访问超时")
)

// HTTPStatus 错误码对应的 HTTP 状态码
func (e *Error) HTTPStatus() int {
	return int(e.Code / 100)
}
