// Package http provides http transport for events
package http

import (
	stdhttp "net/http"

	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/platform/net/middleware"
	"airwatch/internal/services/api/events/domain"
	svc "airwatch/internal/services/api/events/service"
)

// Register mounts event endpoints behind authentication
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.GetQuery[domain.ListInput](pr, "/", h.list)
		httpkit.Get(pr, "/{id}", h.get)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route GET /events Events eventsList
// @Summary List detected events
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param startDate query string false "Inclusive lower bound, epoch seconds or RFC3339"
// @Param endDate query string false "Inclusive upper bound, epoch seconds or RFC3339"
// @Param deviceId query string false "Device id"
// @Param types query string false "Comma separated event types"
// @Param category query string false "ads, channels or content"
// @Param sort query string false "asc or desc" default(desc)
// @Success 200 {object} map[string]any "events page"
// @Router /events [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	res, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return Page(res, in), nil
}

// swagger:route GET /events/{id} Events eventsGet
// @Summary Get one event with its recognitions
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event id"
// @Success 200 {object} domain.Event "ok"
// @Failure 404 {object} map[string]any "Event not found"
// @Router /events/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// Page renders an event list in the shared list shape
func Page(res domain.EventList, in domain.ListInput) map[string]any {
	pg := in.Paging.Norm()
	return httpkit.List("events", res.Events, httpkit.Page{Page: pg.Page, Limit: pg.Limit, Total: res.Total})
}
