// Package api provides the HTTP API for the application
package api

import (
	"time"

	"airwatch/internal/platform/config"
	"airwatch/internal/platform/logger"
	phttp "airwatch/internal/platform/net/http"
	"airwatch/internal/platform/objstore"
	"airwatch/internal/platform/store"

	"airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/modkit/module"
	"airwatch/internal/modkit/repokit"
	"airwatch/internal/modkit/swaggerkit"

	asrunmod "airwatch/internal/services/api/asrun/module"
	authmod "airwatch/internal/services/api/auth/module"
	devicesmod "airwatch/internal/services/api/devices/module"
	eventsmod "airwatch/internal/services/api/events/module"
	labelsmod "airwatch/internal/services/api/labels/module"
	metamod "airwatch/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Objects        objstore.Store
	Logger         *logger.Logger
	Auth           authmod.Options
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// every transaction gets a statement timeout
	pg := repokit.WithBeginHooks(opt.Store.PG,
		repokit.StatementTimeout(opt.Config.MayDuration("STATEMENT_TIMEOUT", 15*time.Second)))

	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		PG:      pg,
		Objects: opt.Objects,
	}

	// auth owns the AuthPort every protected route resolves callers with
	auth := authmod.New(deps, opt.Auth)
	deps.Auth = module.MustPortsOf[authmod.Ports](auth).Auth

	events := eventsmod.New(deps)
	labels := labelsmod.New(deps, modkit.WithPorts(labelsmod.Ports{
		Events: module.MustPortsOf[eventsmod.Ports](events).Events,
	}))

	// meta pings the raw pool, the hooked runner hides Ping
	metaDeps := deps
	metaDeps.PG = opt.Store.PG

	mods := []module.Module{
		metamod.New(metaDeps),
		auth,
		devicesmod.New(deps),
		events,
		labels,
		asrunmod.New(deps),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.MayCSV("CORS_ORIGINS", []string{"*"}),
		Slow:        opt.Config.MayDuration("SLOW_REQUEST", time.Second),
		Timeout:     opt.Config.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		names := module.MountAll(api, mods...)
		logger.Named("api").Info().Strs("modules", names).Msg("api modules mounted")
	})
}
