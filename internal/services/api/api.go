// Package api provides the HTTP API for the application
package api

import (
	"phishguard/internal/core/predict"
	"phishguard/internal/platform/config"
	phttp "phishguard/internal/platform/net/http"
	"phishguard/internal/platform/store"

	"phishguard/internal/modkit"
	"phishguard/internal/modkit/httpkit"
	"phishguard/internal/modkit/module"

	metamod "phishguard/internal/services/api/meta/module"
	predictmod "phishguard/internal/services/api/predict/module"

	// registers the OpenAPI document served by the swagger UI
	_ "phishguard/internal/services/api/docs"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Scorer         *predict.Service
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// Store may be nil; Scorer is required
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.Log = opt.Store.Log
		deps.PG = opt.Store.PG
	}

	mods := []module.Module{
		metamod.New(deps, opt.Scorer),
		predictmod.New(deps, modkit.WithPorts(predictmod.Ports{Scorer: opt.Scorer})),
	}

	// swagger + profiler sit outside the versioned stack
	phttp.MountSwagger(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config.Prefix("CORE_API_")), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
