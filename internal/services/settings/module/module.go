// Package module wires the settings service into the API using modkit
package module

import (
	"context"
	stdhttp "net/http"

	modkit "shopsense/internal/modkit"
	"shopsense/internal/modkit/httpkit"
	dom "shopsense/internal/services/settings/domain"
	settingshttp "shopsense/internal/services/settings/http"
	settingsrepo "shopsense/internal/services/settings/repo"
	settingssvc "shopsense/internal/services/settings/service"
)

// Ports exposed by the settings module
type Ports struct {
	Reader dom.ReaderPort
	Admin  dom.AdminPort
}

// Module implements the settings module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(stdhttp.Handler) stdhttp.Handler
	ports  Ports
	svc    *settingssvc.Service
}

// New constructs the settings module, migrating its table and loading the
// persisted snapshot
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("settings")}, opts...)...)

	if err := settingsrepo.Migrate(ctx, deps.DB); err != nil {
		return nil, err
	}
	svc, err := settingssvc.New(ctx, settingsrepo.NewSqlite(deps.DB), deps.Log)
	if err != nil {
		return nil, err
	}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Reader: svc, Admin: svc}
	return m, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.prefix == "" {
		settingshttp.Register(r, m.svc)
		return
	}
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		settingshttp.Register(rr, m.svc)
	})
}
