package dashboard

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleDashboard) InitRouter(r *gin.RouterGroup) {
	dashboardGroup := r.Group("/dashboard")
	dashboardGroup.Use(middleware.Auth(auth, model.RoleUser))
	{
		dashboardGroup.GET("/summary", Summary)
	}
}
