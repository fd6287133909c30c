package event

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

type ModuleEvent struct{}

func (*ModuleEvent) GetName() string {
	return "Event"
}

func (*ModuleEvent) Init(deps *app.Deps) {
	log = logger.New("Event")
	st = deps.Store
	auth = deps.Auth
}
