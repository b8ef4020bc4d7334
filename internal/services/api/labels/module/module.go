// Package module wires labels into the API using modkit
package module

import (
	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/services/api/labels/domain"
	labelshttp "airwatch/internal/services/api/labels/http"
	labelsrepo "airwatch/internal/services/api/labels/repo"
	labelssvc "airwatch/internal/services/api/labels/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc labelssvc.Service
}

// Ports declares what labels needs injected from other modules
type Ports struct {
	Events domain.EventsPort
}

// New constructs the labels module; the events port must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("labels"), modkit.WithPrefix("/labels")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Events == nil {
		panic("labels: module requires Ports{Events} via modkit.WithPorts")
	}

	m := &Module{svc: labelssvc.New(deps.PG, labelsrepo.NewPG(), p.Events)}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		labelshttp.Register(r, m.svc, deps.Auth)
	})
	return m
}
