// Package module wires modification into the API using modkit
package module

import (
	"net/http"

	modkit "slidesift/internal/modkit"
	"slidesift/internal/modkit/httpkit"
	str "slidesift/internal/platform/strings"
	"slidesift/internal/services/modification/domain"
	modifyhttp "slidesift/internal/services/modification/http"
	modifysvc "slidesift/internal/services/modification/service"
)

// Ports declares the cross-module dependencies this module needs
// injected (the detection module's service port)
type Ports struct {
	Detector domain.DetectorPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc modifysvc.Service
}

// New constructs a modification module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("modification"),
		modkit.WithPrefix("/modification"),
	}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Detector == nil {
		panic("modification module requires a Detector port")
	}
	svc := modifysvc.New(in.Detector, deps.Generator)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = in

	maxUpload := int64(deps.Cfg.MayInt("MAX_UPLOAD_MB", 20)) << 20

	external := b.Register
	m.register = func(r httpkit.Router) {
		modifyhttp.Register(r, m.svc, modifyhttp.Deps{MaxUploadBytes: maxUpload})
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
func (m *Module) Name() string { return str.MustString(m.name, "modification") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
