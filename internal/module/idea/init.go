package idea

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

type ModuleIdea struct{}

func (*ModuleIdea) GetName() string {
	return "Idea"
}

func (*ModuleIdea) Init(deps *app.Deps) {
	log = logger.New("Idea")
	st = deps.Store
	auth = deps.Auth
}
