// Package app 描述进程内共享的依赖，由 cmd/server 构造一次后注入各模块
package app

import (
	"innovation-hub/config"
	"innovation-hub/internal/identity"
	"innovation-hub/internal/store"
)

type Deps struct {
	Config *config.Config
	Store  store.Store
	Auth   *identity.Authenticator
}
