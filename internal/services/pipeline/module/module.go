// Package module wires the pipeline coordinator into the daemon using modkit
package module

import (
	stdhttp "net/http"

	modkit "shopsense/internal/modkit"
	"shopsense/internal/modkit/httpkit"
	dom "shopsense/internal/services/pipeline/domain"
	"shopsense/internal/services/pipeline/service"
)

// Ports exposed by the pipeline module
type Ports struct {
	Coordinator *service.Coordinator
}

// Module implements the pipeline module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(stdhttp.Handler) stdhttp.Handler
	coord  *service.Coordinator
}

// New constructs the pipeline module. The device adapters and cross-module
// reads arrive as a dom.Ports bundle via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("pipeline")}, opts...)...)

	ports, ok := b.Ports.(dom.Ports)
	if !ok {
		panic("pipeline: module requires dom.Ports via modkit.WithPorts")
	}
	o := FromConfig(deps.Cfg)
	coord := service.New(ports, o.serviceConfig(), deps.Log)

	return &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		coord:  coord,
	}
}

// Coordinator returns the owned coordinator for lifecycle control by main
func (m *Module) Coordinator() *service.Coordinator { return m.coord }

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return Ports{Coordinator: m.coord} }

// MountRoutes satisfies modkit.Module, exposing pipeline health to the panel
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		httpkit.Get(rr, "/health", func(_ *stdhttp.Request) (any, error) {
			return m.coord.Health(), nil
		})
	}
	if m.prefix == "" {
		mount(r)
		return
	}
	httpkit.MountUnder(r, m.prefix, m.mws, mount)
}
