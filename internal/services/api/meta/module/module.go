// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/httpkit"
	str "airwatch/internal/platform/strings"

	metahttp "airwatch/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
// meta mounts at the API root, so it does not use modkit.Base and its prefix
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)
	return &Module{deps: deps, b: b, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(g httpkit.Router) {
		for _, mw := range m.b.Mw {
			g.Use(mw)
		}
		metahttp.Register(g, metahttp.Deps{
			ServiceName: "airwatch-api",
			StartedAt:   m.startedAt,
			PG:          m.deps.PG,
		})
		m.b.Register(g)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
