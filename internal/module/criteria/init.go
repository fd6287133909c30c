package criteria

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

type ModuleCriteria struct{}

func (*ModuleCriteria) GetName() string {
	return "Criteria"
}

func (*ModuleCriteria) Init(deps *app.Deps) {
	log = logger.New("Criteria")
	st = deps.Store
	auth = deps.Auth
}
