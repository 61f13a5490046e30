// Package api provides the HTTP API for the application
package api

import (
	"stencil/internal/platform/config"
	"stencil/internal/platform/logger"
	phttp "stencil/internal/platform/net/http"
	"stencil/internal/platform/store"

	"stencil/internal/modkit"
	"stencil/internal/modkit/httpkit"
	"stencil/internal/modkit/module"
	"stencil/internal/modkit/swaggerkit"

	"stencil/internal/adapters/registry"
	"stencil/internal/adapters/serving"

	catalogdom "stencil/internal/services/api/catalog/domain"
	catalogmod "stencil/internal/services/api/catalog/module"
	invokedom "stencil/internal/services/api/invoke/domain"
	invokemod "stencil/internal/services/api/invoke/module"
	metamod "stencil/internal/services/api/meta/module"
	prefsmod "stencil/internal/services/api/prefs/module"
	detectdom "stencil/internal/services/detect/domain"
	detectmod "stencil/internal/services/detect/module"
	eventsdom "stencil/internal/services/events/domain"
	eventsmod "stencil/internal/services/events/module"
)

// Options are the API options
type Options struct {
	// Config is the root (unprefixed) configuration view
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// outbound adapters: the serving control plane and the model registry
	servingCfg := opt.Config.Prefix("SERVICE_SERVING_")
	cp := serving.NewClient(serving.Options{
		BaseURL:    servingCfg.MustString("URL"),
		Token:      servingCfg.MayString("TOKEN", ""),
		Timeout:    servingCfg.MayDuration("TIMEOUT", 0),
		MaxRetries: servingCfg.MayInt("MAX_RETRIES", 0),
	})
	registryCfg := opt.Config.Prefix("SERVICE_REGISTRY_")
	reg := registry.NewClient(registry.Options{
		BaseURL: registryCfg.MustString("URL"),
		Token:   registryCfg.MayString("TOKEN", ""),
		Timeout: registryCfg.MayDuration("TIMEOUT", 0),
	})

	// events first: detect consumes its sink port
	events := eventsmod.New(deps)
	sink := module.MustPortsOf[eventsdom.SinkPort](events)

	detect := detectmod.New(deps, modkit.WithPorts(detectdom.Ports{
		Metadata: serving.NewMetadata(cp),
		Source:   reg,
		Events:   sink,
	}))
	guard := module.MustPortsOf[invokedom.GuardPort](detect)

	mods := []module.Module{
		metamod.New(deps),
		events,
		detect,
		catalogmod.New(deps, modkit.WithPorts[catalogdom.ControlPlanePort](cp)),
		invokemod.New(deps, modkit.WithPorts(invokedom.Ports{Invoker: cp, Guard: guard})),
		prefsmod.New(deps),
	}

	// every route sees the resolved identity: detection caching and the
	// invoke guard are keyed by actor and session
	identity := httpkit.Identity(httpkit.NewForwardedPort(
		opt.Config.Prefix("CORE_API_").MayBool("REQUIRE_IDENTITY", false),
	))
	stack := append(httpkit.CommonStack(), identity)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
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
