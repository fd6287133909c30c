package ping

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/response"
)

const version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", Ping)
}

// Ping 顺带探测存储是否可用，供负载均衡做健康检查
func Ping(c *gin.Context) {
	if _, err := st.ListEvents(c.Request.Context()); err != nil {
		log.Error("存储不可用", "error", err)
		response.Fail(c, response.FromStore(err))
		return
	}
	response.Success(c, gin.H{
		"message": "pong",
		"version": version,
	})
}
