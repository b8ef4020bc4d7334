package httpkit

import (
	"net/http"
	"strings"

	perr "airwatch/internal/platform/errors"
	pnet "airwatch/internal/platform/net"
)

// Principal returns the authenticated caller from the request context
func Principal(r *http.Request) (pnet.Principal, error) {
	p, ok := pnet.PrincipalFrom(r.Context())
	if !ok {
		return pnet.Principal{}, perr.Unauthorizedf("Authentication token required")
	}
	return p, nil
}

// MustPrincipal returns the caller or panics
// only use on routes protected by the auth middleware
func MustPrincipal(r *http.Request) pnet.Principal {
	p, err := Principal(r)
	if err != nil {
		panic(err)
	}
	return p
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(s) < len(prefix) || strings.ToLower(s[:len(prefix)]) != prefix {
		return "", perr.Unauthorizedf("Authentication token required")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("Authentication token required")
	}
	return raw, nil
}
