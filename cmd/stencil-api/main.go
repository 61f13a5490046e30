// @title         Stencil API
// @version       0.1.0
// @description   Schema detection and payload workbench for serving endpoints

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"stencil/internal/platform/config"
	"stencil/internal/platform/logger"
	phttp "stencil/internal/platform/net/http"
	"stencil/internal/platform/store"
	"stencil/migrations"

	"stencil/internal/services/api"
	eventsmod "stencil/internal/services/events/module"
)

func main() {
	// .env is a dev convenience; real deployments set the environment
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// clickhouse is only dialed when the events sink wants it
	chEnabled := eventsmod.FromConfig(root).Sink == eventsmod.SinkClickhouse

	st, err := store.Open(ctx, store.Config{
		AppName: "stencil",
		Tag:     "api",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled: chEnabled,
			URL:     chCfg.MayString("DBURL", ""),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if pgCfg.MayBool("MIGRATE", false) {
		if err := migrations.Apply(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("migrations failed")
		}
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// drain in-flight requests when the process is told to stop
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
