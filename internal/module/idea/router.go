package idea

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleIdea) InitRouter(r *gin.RouterGroup) {
	ideaGroup := r.Group("/idea")
	ideaGroup.Use(middleware.Auth(auth, model.RoleUser))
	{
		ideaGroup.GET("/list", ListIdeas)
		ideaGroup.POST("/create", CreateIdea)
	}

	adminGroup := r.Group("/idea")
	adminGroup.Use(middleware.Auth(auth, model.RoleAdmin))
	{
		adminGroup.PUT("/review/:id", ReviewIdea)
	}
}
