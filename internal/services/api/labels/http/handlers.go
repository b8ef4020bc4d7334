// Package http provides http transport for labels
package http

import (
	stdhttp "net/http"

	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/platform/net/middleware"
	eventsdomain "airwatch/internal/services/api/events/domain"
	eventshttp "airwatch/internal/services/api/events/http"
	"airwatch/internal/services/api/labels/domain"
	svc "airwatch/internal/services/api/labels/service"
)

// Register mounts label endpoints; the program guide is public
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/program-guides/{date}/{deviceId}", h.programGuide)

	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.CreateInput](pr, "/", h.create)
		httpkit.GetQuery[domain.ListInput](pr, "/", h.list)
		httpkit.GetQuery[eventsdomain.ListInput](pr, "/unlabeled", h.unlabeled)
		httpkit.DeleteJSON[domain.BulkDeleteInput](pr, "/bulk", h.deleteBulk)
		httpkit.Get(pr, "/{id}", h.get)
		httpkit.PutJSON[domain.UpdateInput](pr, "/{id}", h.update)
		httpkit.Delete(pr, "/{id}", h.delete)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /labels Labels labelsCreate
// @Summary Label a sequence of events
// @Description Body carries event_ids, label_type, notes and exactly one payload keyed by label_type
// @Tags Labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.CreateInput true "Label"
// @Success 201 {object} labeltree.View "created"
// @Failure 400 {object} map[string]any "Invalid label type or payload"
// @Failure 404 {object} map[string]any "Events not found"
// @Router /labels [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	p := httpkit.MustPrincipal(r)
	v, err := h.svc.Create(r.Context(), in, p.Name)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusCreated, "Label created successfully", v), nil
}

// swagger:route GET /labels Labels labelsList
// @Summary List labels
// @Tags Labels
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param labelType query string false "Subtype name, e.g. movie"
// @Param createdBy query string false "Creator name"
// @Param deviceId query string false "Device with at least one linked event"
// @Param startDate query string false "Overlap lower bound, epoch seconds or RFC3339"
// @Param endDate query string false "Overlap upper bound, epoch seconds or RFC3339"
// @Param sort query string false "asc or desc on start_time" default(desc)
// @Success 200 {object} map[string]any "labels page"
// @Router /labels [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	res, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	pg := in.Paging.Norm()
	return httpkit.List("labels", res.Labels, httpkit.Page{Page: pg.Page, Limit: pg.Limit, Total: res.Total}), nil
}

// swagger:route GET /labels/unlabeled Labels labelsUnlabeled
// @Summary List events no label references
// @Tags Labels
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param startDate query string false "Inclusive lower bound"
// @Param endDate query string false "Inclusive upper bound"
// @Param deviceId query string false "Device id"
// @Param types query string false "Comma separated event types"
// @Param sort query string false "asc or desc" default(desc)
// @Success 200 {object} map[string]any "events page"
// @Router /labels/unlabeled [get]
func (h *handlers) unlabeled(r *stdhttp.Request, in eventsdomain.ListInput) (any, error) {
	res, err := h.svc.Unlabeled(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return eventshttp.Page(res, in), nil
}

// swagger:route GET /labels/{id} Labels labelsGet
// @Summary Get one label
// @Tags Labels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Label id"
// @Success 200 {object} labeltree.View "ok"
// @Failure 404 {object} map[string]any "Label not found"
// @Router /labels/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route PUT /labels/{id} Labels labelsUpdate
// @Summary Update a label, optionally moving it to another subtype
// @Tags Labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Label id"
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} labeltree.View "updated"
// @Failure 404 {object} map[string]any "Label not found"
// @Router /labels/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	v, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "Label updated successfully", v), nil
}

// swagger:route DELETE /labels/{id} Labels labelsDelete
// @Summary Delete a label
// @Tags Labels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Label id"
// @Success 200 {object} map[string]any "deleted"
// @Failure 404 {object} map[string]any "Label not found"
// @Router /labels/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "Label deleted successfully", nil), nil
}

// swagger:route DELETE /labels/bulk Labels labelsDeleteBulk
// @Summary Delete many labels
// @Tags Labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.BulkDeleteInput true "Label ids"
// @Success 200 {object} domain.BulkDeleteResult "deleted"
// @Router /labels/bulk [delete]
func (h *handlers) deleteBulk(r *stdhttp.Request, in domain.BulkDeleteInput) (any, error) {
	n, err := h.svc.DeleteBulk(r.Context(), in.IDs)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "Labels deleted successfully", domain.BulkDeleteResult{Deleted: n}), nil
}

// swagger:route GET /labels/program-guides/{date}/{deviceId} Labels labelsProgramGuide
// @Summary Labels of one device on one UTC day
// @Tags Labels
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Param deviceId path string true "Device id"
// @Success 200 {object} domain.ProgramGuide "ok"
// @Failure 400 {object} map[string]any "Invalid date or labels spanning devices"
// @Failure 404 {object} map[string]any "Invalid device ID"
// @Router /labels/program-guides/{date}/{deviceId} [get]
func (h *handlers) programGuide(r *stdhttp.Request) (any, error) {
	date, err := httpkit.Param(r, "date")
	if err != nil {
		return nil, err
	}
	dev, err := httpkit.Param(r, "deviceId")
	if err != nil {
		return nil, err
	}
	return h.svc.ProgramGuide(r.Context(), date, dev)
}
