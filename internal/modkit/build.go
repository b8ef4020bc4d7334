package modkit

import (
	"net/http"

	"airwatch/internal/modkit/httpkit"
	str "airwatch/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// Register attaches caller supplied endpoints; never nil
	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Base implements the plumbing every module shares
// modules embed it and supply their own routes
type Base struct {
	b      Built
	routes func(httpkit.Router)
}

// NewBase builds the shared module plumbing around routes
func NewBase(b Built, routes func(httpkit.Router)) Base {
	return Base{b: b, routes: routes}
}

// MountRoutes mounts the module under its prefix with its middleware
func (m Base) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		for _, mw := range m.b.Mw {
			rr.Use(mw)
		}
		if m.routes != nil {
			m.routes(rr)
		}
		m.b.Register(rr)
	})
}

// Name returns the module name
func (m Base) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m Base) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports returns whatever was injected with WithPorts
func (m Base) Ports() any { return m.b.Ports }
