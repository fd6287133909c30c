package auth

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleAuth) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/sign-in", SignIn)
		authGroup.POST("/sign-up", SignUp)
		authGroup.POST("/session", AdoptSession)
		authGroup.GET("/oauth/:provider", OAuth)
	}

	userGroup := r.Group("/auth")
	userGroup.Use(middleware.Auth(authenticator, model.RoleUser))
	{
		userGroup.POST("/sign-out", SignOut)
		userGroup.GET("/me", Me)
		userGroup.PUT("/me", UpdateMe)
	}
}
