// Package module provides the corpus module
package module

import (
	"phishguard/internal/modkit"
	"phishguard/internal/modkit/httpkit"
	"phishguard/internal/services/corpus/domain"
	"phishguard/internal/services/corpus/repo"
	"phishguard/internal/services/corpus/service"
)

// Ports exposed by the corpus module
type Ports struct {
	Loader   domain.LoaderPort
	Importer domain.ImporterPort
	Service  *service.Service
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new corpus module
func New(deps modkit.Deps, opts Options) *Module {
	svc := service.New(deps.PG, repo.NewPG(), service.Config{Source: opts.Source, QueryTimeout: opts.QueryTimeout})

	m := &Module{deps: deps}
	m.ports = Ports{Loader: svc, Importer: svc, Service: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "corpus" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
// the corpus has no http surface; training runs from the cli
func (m *Module) MountRoutes(r httpkit.Router) {}
