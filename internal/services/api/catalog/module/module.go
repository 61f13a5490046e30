// Package module wires the endpoint catalog into the API using modkit
package module

import (
	"net/http"

	modkit "stencil/internal/modkit"
	"stencil/internal/modkit/httpkit"
	str "stencil/internal/platform/strings"
	"stencil/internal/services/api/catalog/domain"
	cataloghttp "stencil/internal/services/api/catalog/http"
	catalogsvc "stencil/internal/services/api/catalog/service"
)

// Ports exposed by the catalog module
type Ports struct {
	Service domain.ServicePort
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

	svc *catalogsvc.Service
}

// New constructs a catalog module. Callers inject the serving control
// plane client via modkit.WithPorts(domain.ControlPlanePort)
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("catalog"),
		modkit.WithPrefix("/catalog"),
	}, opts...)...)

	cp, ok := b.Ports.(domain.ControlPlanePort)
	if !ok {
		panic("catalog module: expected WithPorts(catalog/domain.ControlPlanePort)")
	}
	svc := catalogsvc.New(cp)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cataloghttp.Register(r, m.svc)
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
