// Package module wires detection into the API using modkit
package module

import (
	"net/http"

	"slidesift/internal/core/detect"
	modkit "slidesift/internal/modkit"
	"slidesift/internal/modkit/httpkit"
	str "slidesift/internal/platform/strings"
	"slidesift/internal/services/detection/domain"
	detecthttp "slidesift/internal/services/detection/http"
	detectsvc "slidesift/internal/services/detection/service"
)

// Ports published by the detection module for cross module wiring
type Ports struct {
	Detector domain.ServicePort
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

	svc detectsvc.Service
}

// New constructs a detection module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("detection"),
		modkit.WithPrefix("/detection"),
	}, opts...)...)

	cfg := deps.Cfg.Prefix("DETECT_")
	svc := detectsvc.New(deps.Classifier, detect.Options{
		MaxChunkTokens: cfg.MayInt("MAX_CHUNK_TOKENS", 512),
		MinTokens:      cfg.MayInt("MIN_TOKENS", 50),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Detector: svc}

	maxUpload := int64(deps.Cfg.MayInt("MAX_UPLOAD_MB", 20)) << 20

	external := b.Register
	m.register = func(r httpkit.Router) {
		detecthttp.Register(r, m.svc, detecthttp.Deps{MaxUploadBytes: maxUpload})
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
func (m *Module) Name() string { return str.MustString(m.name, "detection") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
