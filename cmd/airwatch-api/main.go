// @title         airwatch API
// @version       0.1.0
// @description   Back office for broadcast monitoring: devices, events, labels and as-run logs
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"

	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/config"
	"airwatch/internal/platform/logger"
	pnet "airwatch/internal/platform/net"
	phttp "airwatch/internal/platform/net/http"
	"airwatch/internal/platform/objstore"
	"airwatch/internal/platform/store"
	"airwatch/internal/platform/store/migrations"

	"airwatch/internal/services/api"
	authmod "airwatch/internal/services/api/auth/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// development builds surface internal error detail in replies
	env := apiCfg.MayEnum("ENV", "production", "development", "production", "test")
	pnet.ExposeInternal(env == "development")

	// postgres lives under SERVICE_PGSQL_*
	stCfg := store.FromEnv(root)
	if stCfg.PG.Migrate {
		if err := migrations.Up(stCfg.PG.URL); err != nil {
			l.Panic().Err(err).Msg("migrations failed")
		}
	}

	st, err := store.Open(ctx, stCfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// as-run files go to S3 (S3_*)
	objects, err := objstore.NewS3(ctx, objstore.FromEnv(root.Prefix("S3_")))
	if err != nil {
		l.Panic().Err(err).Msg("objstore.NewS3 failed")
	}

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Objects:        objects,
			Logger:         l,
			Auth:           authmod.FromConfig(root),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", env == "development"),
		},
	)

	l.Info().Str("env", env).Msg("airwatch api starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
