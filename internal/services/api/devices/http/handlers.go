// Package http provides http transport for devices
package http

import (
	stdhttp "net/http"

	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/platform/net/middleware"
	"airwatch/internal/services/api/devices/domain"
	svc "airwatch/internal/services/api/devices/service"
)

// Register mounts device endpoints; every route is admin only
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Admin(r, port, func(ar httpkit.Router) {
		httpkit.PostJSON[domain.RegisterInput](ar, "/register", h.register)
		httpkit.GetQuery[domain.ListInput](ar, "/", h.list)
		httpkit.Get(ar, "/{device_id}", h.get)
		httpkit.PutJSON[domain.UpdateInput](ar, "/{device_id}", h.update)
		httpkit.Delete(ar, "/{device_id}", h.delete)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /devices/register Devices devicesRegister
// @Summary Register a capture device
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.RegisterInput true "Device"
// @Success 201 {object} domain.Device "created"
// @Failure 409 {object} map[string]any "Device ID already exists"
// @Router /devices/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	d, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusCreated, "Device registered successfully", d), nil
}

// swagger:route GET /devices Devices devicesList
// @Summary List devices
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param is_active query bool false "Filter by state"
// @Success 200 {object} map[string]any "devices page"
// @Router /devices [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	res, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	pg := in.Paging.Norm()
	return httpkit.List("devices", res.Devices, httpkit.Page{Page: pg.Page, Limit: pg.Limit, Total: res.Total}), nil
}

// swagger:route GET /devices/{device_id} Devices devicesGet
// @Summary Get a device
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Param device_id path string true "Device id"
// @Success 200 {object} domain.Device "ok"
// @Failure 404 {object} map[string]any "Device not found"
// @Router /devices/{device_id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Param(r, "device_id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route PUT /devices/{device_id} Devices devicesUpdate
// @Summary Activate or deactivate a device
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param device_id path string true "Device id"
// @Param payload body domain.UpdateInput true "State"
// @Success 200 {object} domain.Device "ok"
// @Router /devices/{device_id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	id, err := httpkit.Param(r, "device_id")
	if err != nil {
		return nil, err
	}
	d, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "Device updated successfully", d), nil
}

// swagger:route DELETE /devices/{device_id} Devices devicesDelete
// @Summary Delete a device
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Param device_id path string true "Device id"
// @Success 200 {object} map[string]any "deleted"
// @Failure 409 {object} map[string]any "Device is in use"
// @Router /devices/{device_id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Param(r, "device_id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "Device deleted successfully", nil), nil
}
