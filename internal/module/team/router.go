package team

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleTeam) InitRouter(r *gin.RouterGroup) {
	teamGroup := r.Group("/team")
	teamGroup.Use(middleware.Auth(auth, model.RoleUser))
	{
		teamGroup.GET("/list", ListTeams)
		teamGroup.GET("/get/:id", GetTeam)
		teamGroup.POST("/create", CreateTeam)
		teamGroup.POST("/:id/members", AddMember)
	}

	adminGroup := r.Group("/team")
	adminGroup.Use(middleware.Auth(auth, model.RoleAdmin))
	{
		adminGroup.PUT("/review/:id", ReviewTeam)
	}
}
