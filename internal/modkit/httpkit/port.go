// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"

	perr "airwatch/internal/platform/errors"
	pnet "airwatch/internal/platform/net"
)

// TokenFunc resolves a raw bearer token into the caller
type TokenFunc func(r *http.Request, token string) (pnet.Principal, error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the bearer token and resolves it
// Known errors from the parser pass through, anything else becomes "Invalid token"
func (p *Port) Parse(r *http.Request) (pnet.Principal, error) {
	raw, err := JWT(r)
	if err != nil {
		return pnet.Principal{}, err
	}
	if p == nil || p.parse == nil {
		return pnet.Principal{}, perr.Unauthorizedf("Invalid token")
	}
	pr, err := p.parse(r, raw)
	if err != nil {
		if perr.Known(err) {
			return pnet.Principal{}, err
		}
		return pnet.Principal{}, perr.Wrapf(err, perr.ErrorCodeUnauthorized, "Invalid token")
	}
	return pr, nil
}
