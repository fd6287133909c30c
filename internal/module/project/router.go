package project

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleProject) InitRouter(r *gin.RouterGroup) {
	projectGroup := r.Group("/project")
	projectGroup.Use(middleware.Auth(auth, model.RoleUser))
	{
		projectGroup.GET("/list", ListProjects)
		projectGroup.GET("/get/:id", GetProject)
		// 成员或管理员代提交，权限在处理函数中按项目判断
		projectGroup.PUT("/submit/:id", SubmitProject)
	}

	adminGroup := r.Group("/project")
	adminGroup.Use(middleware.Auth(auth, model.RoleAdmin))
	{
		adminGroup.POST("/create", CreateProject)
	}
}
