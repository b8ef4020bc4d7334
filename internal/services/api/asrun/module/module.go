// Package module wires as-run uploads into the API using modkit
package module

import (
	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	asrunhttp "airwatch/internal/services/api/asrun/http"
	asrunrepo "airwatch/internal/services/api/asrun/repo"
	asrunsvc "airwatch/internal/services/api/asrun/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc asrunsvc.Service
}

// New constructs the as-run module; deps.Objects must be set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("asrun"), modkit.WithPrefix("/asrun")}, opts...)...)

	m := &Module{svc: asrunsvc.New(deps.PG, asrunrepo.NewPG(), deps.Objects)}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		asrunhttp.Register(r, m.svc, deps.Auth)
	})
	return m
}
