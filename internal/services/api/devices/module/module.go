// Package module wires devices into the API using modkit
package module

import (
	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	devicehttp "airwatch/internal/services/api/devices/http"
	devicerepo "airwatch/internal/services/api/devices/repo"
	devicesvc "airwatch/internal/services/api/devices/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc devicesvc.Service
}

// Ports holds the ports exposed by the devices module
type Ports struct {
	Devices devicesvc.Service
}

// New constructs the devices module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("devices"), modkit.WithPrefix("/devices")}, opts...)...)

	m := &Module{svc: devicesvc.New(deps.PG, devicerepo.NewPG())}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		devicehttp.Register(r, m.svc, deps.Auth)
	})
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Devices: m.svc} }
