package httpkit

import "net/http"

// APIV1 is the base path every module route lives under
const APIV1 = "/api/v1"

// MountAPIV1 scopes mw to APIV1 and lets mount register module routes beneath it
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIV1, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
