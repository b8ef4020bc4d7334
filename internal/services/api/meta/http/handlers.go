// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"airwatch/internal/core/version"
	"airwatch/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"airwatch-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
	Uptime  int64  `json:"uptime"   example:"300"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// swagger:route GET /health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := time.Now().UTC()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     now.Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /ready Meta metaReady
// @Summary Readiness probe with a database check
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	pg := ReadyCheck{Name: "pg", Status: "skipped"}
	switch p := h.deps.PG.(type) {
	case nil:
	case Pinger:
		pg.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			pg.Status, pg.Error = "fail", err.Error()
		}
	default:
		pg.Status = "unknown"
	}

	overall := "ok"
	if pg.Status == "fail" {
		overall = "fail"
	}
	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
