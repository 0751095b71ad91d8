// Package api provides the HTTP API for the application
package api

import (
	"slidesift/internal/platform/config"
	"slidesift/internal/platform/logger"
	phttp "slidesift/internal/platform/net/http"

	"slidesift/internal/modkit"
	"slidesift/internal/modkit/httpkit"
	"slidesift/internal/modkit/module"
	"slidesift/internal/modkit/swaggerkit"

	"slidesift/internal/core/detect"
	"slidesift/internal/core/plan"

	metamod "slidesift/internal/services/api/meta/module"
	detectionmod "slidesift/internal/services/detection/module"
	modificationmod "slidesift/internal/services/modification/module"
	workflowmod "slidesift/internal/services/workflow/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         logger.Logger
	Classifier     detect.Classifier
	Generator      plan.Generator
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:        opt.Logger,
		Cfg:        opt.Config,
		Classifier: opt.Classifier,
		Generator:  opt.Generator,
	}

	// Construct the detection module first and extract its Detector port
	detection := detectionmod.New(deps)
	det := module.MustPortsOf[detectionmod.Ports](detection).Detector

	// Inject that Detector into the modification module
	modification := modificationmod.New(
		deps,
		modkit.WithPorts(modificationmod.Ports{
			Detector: det,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		detection,
		modification,
		workflowmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
