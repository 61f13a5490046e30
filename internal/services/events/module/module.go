// Package module wires the detection event log into the API using modkit
package module

import (
	"net/http"

	modkit "stencil/internal/modkit"
	"stencil/internal/modkit/httpkit"
	str "stencil/internal/platform/strings"
	"stencil/internal/services/events/domain"
	eventshttp "stencil/internal/services/events/http"
	eventsrepo "stencil/internal/services/events/repo"
	eventssvc "stencil/internal/services/events/service"
)

// Ports exposed by the events module for cross module wiring.
// The detect orchestrator consumes Sink; the ops API consumes Reader
type Ports struct {
	Sink   domain.SinkPort
	Reader domain.ReaderPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *eventssvc.Service
}

// New constructs an events module with the provided dependencies and options.
// The sink backend follows CORE_EVENTS_SINK: postgres uses deps.PG,
// clickhouse uses deps.CH
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("events"),
		modkit.WithPrefix("/events"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var r eventsrepo.Repo
	switch cfg.Sink {
	case SinkClickhouse:
		if deps.CH == nil {
			panic("events module: clickhouse sink selected but deps.CH is nil")
		}
		r = eventsrepo.NewCH(deps.CH)
	default:
		if deps.PG == nil {
			panic("events module: postgres sink selected but deps.PG is nil")
		}
		r = eventsrepo.NewPG().Bind(deps.PG)
	}
	svc := eventssvc.New(r)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Sink: svc, Reader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		eventshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
