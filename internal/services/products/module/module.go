// Package module wires the product catalog into the API using modkit
package module

import (
	"context"
	stdhttp "net/http"

	modkit "shopsense/internal/modkit"
	"shopsense/internal/modkit/httpkit"
	dom "shopsense/internal/services/products/domain"
	productshttp "shopsense/internal/services/products/http"
	productsrepo "shopsense/internal/services/products/repo"
	productssvc "shopsense/internal/services/products/service"
)

// Ports exposed by the products module
type Ports struct {
	Lookup dom.LookupPort
	Admin  dom.AdminPort
}

// Module implements the products module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(stdhttp.Handler) stdhttp.Handler
	ports  Ports
	svc    *productssvc.Service
}

// New constructs the products module and migrates its table
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("products")}, opts...)...)

	if err := productsrepo.Migrate(ctx, deps.DB); err != nil {
		return nil, err
	}
	svc := productssvc.New(productsrepo.NewSqlite(deps.DB), deps.Log)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Lookup: svc, Admin: svc}
	return m, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.prefix == "" {
		productshttp.Register(r, m.svc)
		return
	}
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		productshttp.Register(rr, m.svc)
	})
}
