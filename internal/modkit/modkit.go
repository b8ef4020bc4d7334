package modkit

import "airwatch/internal/modkit/module"

// Module is the common surface for API modules that can mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
