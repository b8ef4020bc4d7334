package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix (e.g. /debug/pprof/) when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	r.Handle(prefix+"/*", stdhttp.StripPrefix(prefix, mw.Profiler()))
	r.Get(prefix, func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		stdhttp.Redirect(w, req, prefix+"/pprof/", stdhttp.StatusMovedPermanently)
	})
}
