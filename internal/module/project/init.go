package project

import (
	"log/slog"

	"innovation-hub/internal/app"
	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/identity"
	"innovation-hub/internal/store"
)

var (
	log  *slog.Logger
	st   store.Store
	auth *identity.Authenticator
)

type ModuleProject struct{}

func (*ModuleProject) GetName() string {
	return "Project"
}

func (*ModuleProject) Init(deps *app.Deps) {
	log = logger.New("Project")
	st = deps.Store
	auth = deps.Auth
}
