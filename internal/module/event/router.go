package event

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/event")
	eventGroup.Use(middleware.Auth(auth, model.RoleUser))
	{
		eventGroup.GET("/list", ListEvents)
		eventGroup.GET("/get/:id", GetEvent)
	}

	adminGroup := r.Group("/event")
	adminGroup.Use(middleware.Auth(auth, model.RoleAdmin))
	{
		adminGroup.POST("/create", CreateEvent)
		adminGroup.PUT("/update/:id", UpdateEvent)
		adminGroup.DELETE("/delete/:id", DeleteEvent)
		adminGroup.GET("/export/:id", ExportEvent)
	}
}
