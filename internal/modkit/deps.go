package modkit

import (
	"shopsense/internal/platform/config"
	"shopsense/internal/platform/logger"
	"shopsense/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	DB  store.TxRunner
}
