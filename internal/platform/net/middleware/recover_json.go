package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	pnet "airwatch/internal/platform/net"
)

// RecoverJSON converts panics into an enveloped 500 and logs the stack with the request id
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered: %v", v))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}

// RequestLog copies the request id onto the logger context so logger.C picks it up
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.With(r.Context(), "request_id", pnet.RequestID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
