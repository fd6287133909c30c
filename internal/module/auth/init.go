package auth

import (
	"log/slog"

	"innovation-hub/internal/app"
	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/identity"
)

var (
	log           *slog.Logger
	authenticator *identity.Authenticator
	redirectURL   string
)

type ModuleAuth struct{}

func (*ModuleAuth) GetName() string {
	return "Auth"
}

func (*ModuleAuth) Init(deps *app.Deps) {
	log = logger.New("Auth")
	authenticator = deps.Auth
	redirectURL = deps.Config.Identity.RedirectURL
}
