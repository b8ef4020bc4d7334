// Package modkit provides module wiring and core deps
package modkit

import (
	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/config"
	"airwatch/internal/platform/logger"
	"airwatch/internal/platform/net/middleware"
	"airwatch/internal/platform/objstore"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	// Objects is the object storage seam, nil when a module does not need it
	Objects objstore.Store
	// Auth resolves the caller for protected routes; set once the auth module is built
	Auth middleware.AuthPort
}

// Logger returns Log or a named root logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
