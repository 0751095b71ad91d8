// @title         Slidesift API
// @version       0.1.0
// @description   AI content detection and rewriting for PowerPoint decks

package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"slidesift/internal/platform/config"
	"slidesift/internal/platform/logger"
	phttp "slidesift/internal/platform/net/http"

	"slidesift/internal/adapters/inference"
	"slidesift/internal/core/detect"
	"slidesift/internal/core/plan/rulegen"
	"slidesift/internal/services/api"
)

func main() {
	// local .env is optional, real env always wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Get().Warn().Err(err).Msg(".env not loaded")
	}

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	cls := buildClassifier(root)
	l.Info().Str("model", cls.ModelName()).Msg("classifier ready")

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         *l,
			Classifier:     cls,
			Generator:      rulegen.New(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// buildClassifier picks the inference backend from DETECT_* config.
// With no model configured the process falls back to the offline heuristic
func buildClassifier(root config.Conf) detect.Classifier {
	cfg := root.Prefix("DETECT_")
	model := cfg.MayString("MODEL", "")
	if model == "" {
		return inference.NewHeuristic()
	}

	cls, err := inference.NewClient(inference.Options{
		BaseURL:    cfg.MayString("API_URL", ""),
		Model:      model,
		Token:      cfg.MayString("API_TOKEN", ""),
		Timeout:    cfg.MayDuration("TIMEOUT", 0),
		MaxRetries: cfg.MayInt("MAX_RETRIES", 0),
	})
	if err != nil {
		logger.Get().Panic().Err(err).Msg("inference client init failed")
	}
	return cls
}
