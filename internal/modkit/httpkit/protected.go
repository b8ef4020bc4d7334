package httpkit

import "airwatch/internal/platform/net/middleware"

// Protected groups routes under bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Admin groups routes under bearer auth plus the ADMIN role guard
func Admin(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p), AdminOnly())
		fn(gr)
	})
}
