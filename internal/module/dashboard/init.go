package dashboard

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

type ModuleDashboard struct{}

func (*ModuleDashboard) GetName() string {
	return "Dashboard"
}

func (*ModuleDashboard) Init(deps *app.Deps) {
	log = logger.New("Dashboard")
	st = deps.Store
	auth = deps.Auth
}
