package criteria

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/middleware"
	"innovation-hub/internal/model"
)

func (*ModuleCriteria) InitRouter(r *gin.RouterGroup) {
	r.GET("/criteria/list", middleware.Auth(auth, model.RoleUser), ListCriteria)
	r.POST("/criteria/create", middleware.Auth(auth, model.RoleAdmin), CreateCriteria)
}
