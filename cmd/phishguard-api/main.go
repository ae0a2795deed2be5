// Command phishguard-api serves phishing verdicts over HTTP from a pre-trained model
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"phishguard/internal/core/model"
	"phishguard/internal/core/predict"
	"phishguard/internal/core/version"
	"phishguard/internal/platform/config"
	"phishguard/internal/platform/logger"
	phttp "phishguard/internal/platform/net/http"
	"phishguard/internal/platform/store"

	"phishguard/internal/services/api"
)

const service = "phishguard-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Named("api")
	l.Info().Interface("build", version.Info(service)).Msg("starting")

	// the model loads once and is shared read only by every request
	path := root.Prefix("CORE_MODEL_").MayString("PATH", model.DefaultPath)
	scorer, err := predict.Open(path)
	if err != nil {
		l.Fatal().Err(err).Str("path", path).Msg("model load failed")
	}
	l.Info().
		Str("path", path).
		Str("model_id", scorer.Artifact().ID.String()).
		Int("features", scorer.Artifact().Features()).
		Msg("model loaded")

	// postgres is optional here; it only backs the readiness probe
	st, err := store.Open(ctx, store.FromEnv(service, root.Prefix("SERVICE_")), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_ADDR and timeouts)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Scorer:         scorer,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	l.Info().Str("addr", srv.Addr()).Msg("listening")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		return
	}
	l.Info().Msg("shut down cleanly")
}
