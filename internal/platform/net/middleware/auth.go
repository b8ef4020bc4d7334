package middleware

import (
	"net/http"
	"strconv"

	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	pnet "airwatch/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the principal behind the request credentials or an Unauthorized error
	Parse(r *http.Request) (pnet.Principal, error)
}

// Writer writes a status and body, usually phttp.JSON
type Writer = func(w http.ResponseWriter, status int, body any)

// Auth rejects requests the port cannot resolve and stores the principal on the context
// A nil port rejects everything
func Auth(p AuthPort, write Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				status, body := pnet.Error(perr.Unauthorizedf("Authentication token required"))
				write(w, status, body)
				return
			}
			pr, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err)
				write(w, status, body)
				return
			}
			ctx := pnet.WithPrincipal(r.Context(), pr)
			ctx = logger.With(ctx, "user_id", strconv.FormatInt(pr.ID, 10))
			ctx = logger.With(ctx, "role", pr.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request only when the principal holds one of roles
// Missing principals are Unauthorized, other roles are Forbidden with msg
func RequireRole(write Writer, msg string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pr, ok := pnet.PrincipalFrom(r.Context())
			if !ok {
				status, body := pnet.Error(perr.Unauthorizedf("Authentication token required"))
				write(w, status, body)
				return
			}
			for _, role := range roles {
				if pr.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			status, body := pnet.Error(perr.Forbiddenf("%s", msg))
			write(w, status, body)
		})
	}
}
