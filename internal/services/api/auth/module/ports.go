package module

import (
	"net/http"

	"airwatch/internal/modkit/httpkit"
	pnet "airwatch/internal/platform/net"
	"airwatch/internal/platform/net/middleware"
	"airwatch/internal/services/api/auth/domain"
	authsvc "airwatch/internal/services/api/auth/service"
)

// Ports holds the ports exposed by the auth module
type Ports struct {
	// Auth resolves bearer tokens for every protected route in the API
	Auth middleware.AuthPort
	// Users is the account service; the seed CLI ensures the admin through it
	Users domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// tokenPort builds the bearer resolver on top of the service
func tokenPort(s authsvc.Service) *httpkit.Port {
	return httpkit.NewPortFunc(func(r *http.Request, token string) (pnet.Principal, error) {
		return s.Resolve(r.Context(), token)
	})
}
