// Package module wires events into the API using modkit
package module

import (
	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	eventshttp "airwatch/internal/services/api/events/http"
	eventsrepo "airwatch/internal/services/api/events/repo"
	eventssvc "airwatch/internal/services/api/events/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc eventssvc.Service
}

// Ports holds the ports exposed by the events module
type Ports struct {
	Events eventssvc.Service
}

// New constructs the events module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("events"), modkit.WithPrefix("/events")}, opts...)...)

	m := &Module{svc: eventssvc.New(deps.PG, eventsrepo.NewPG())}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		eventshttp.Register(r, m.svc, deps.Auth)
	})
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Events: m.svc} }
