// Package module wires auth into the API using modkit
package module

import (
	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	authhttp "airwatch/internal/services/api/auth/http"
	authrepo "airwatch/internal/services/api/auth/repo"
	authsvc "airwatch/internal/services/api/auth/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base

	ports Ports
	svc   authsvc.Service
}

// New constructs the auth module; it owns the AuthPort every other module uses
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)

	svc := authsvc.New(deps.PG, authrepo.NewPG(), o.Tokens, o.Hasher)
	port := tokenPort(svc)

	m := &Module{svc: svc, ports: Ports{Auth: port, Users: svc}}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		authhttp.Register(r, m.svc, port)
	})
	return m
}
