package team

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

type ModuleTeam struct{}

func (*ModuleTeam) GetName() string {
	return "Team"
}

func (*ModuleTeam) Init(deps *app.Deps) {
	log = logger.New("Team")
	st = deps.Store
	auth = deps.Auth
}
