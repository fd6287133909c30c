package ping

import (
	"log/slog"

	"innovation-hub/internal/app"
	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/store"
)

var (
	log *slog.Logger
	st  store.Store
)

type ModulePing struct{}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init(deps *app.Deps) {
	log = logger.New("Ping")
	st = deps.Store
}
