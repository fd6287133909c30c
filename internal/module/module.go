package module

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/app"
	"innovation-hub/internal/module/auth"
	"innovation-hub/internal/module/criteria"
	"innovation-hub/internal/module/dashboard"
	"innovation-hub/internal/module/event"
	"innovation-hub/internal/module/idea"
	"innovation-hub/internal/module/ping"
	"innovation-hub/internal/module/project"
	"innovation-hub/internal/module/team"
)

type Module interface {
	GetName() string
	Init(deps *app.Deps)
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&auth.ModuleAuth{},
		&event.ModuleEvent{},
		&team.ModuleTeam{},
		&idea.ModuleIdea{},
		&project.ModuleProject{},
		&criteria.ModuleCriteria{},
		&dashboard.ModuleDashboard{},
	})
}
