package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "airwatch/internal/platform/net/http"
	"airwatch/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Slow        time.Duration // access log warn threshold, 0 disables
	Timeout     time.Duration // defaults to 30s
}

// CommonStack returns the baseline middleware for every API route
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLog,

		// observability wraps recovery so panics are logged with their 500
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// AdminOnly rejects authenticated callers that are not ADMIN
func AdminOnly() func(http.Handler) http.Handler {
	return middleware.RequireRole(phttp.JSON, "Admin access required", "ADMIN")
}
