// Package http provides http transport for as-run files
package http

import (
	stdhttp "net/http"
	"strconv"

	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/platform/logger"
	"airwatch/internal/platform/net/http/bind"
	"airwatch/internal/platform/net/middleware"
	"airwatch/internal/services/api/asrun/domain"
	svc "airwatch/internal/services/api/asrun/service"
)

// MaxUpload caps the multipart body of an as-run upload
const MaxUpload = 10 << 20

// Register mounts as-run endpoints; every route is admin only
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Admin(r, port, func(ar httpkit.Router) {
		httpkit.Upload[domain.UploadInput](ar, "/upload-file", "file", MaxUpload, h.upload)
		httpkit.GetQuery[domain.ListInput](ar, "/", h.list)
		httpkit.DeleteJSON[domain.DeleteInput](ar, "/delete-file", h.delete)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /asrun/upload-file AsRun asrunUpload
// @Summary Upload an as-run sheet
// @Description csv, xlsx or xls; the first sheet is converted to a JSON array of rows
// @Tags AsRun
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "As-run sheet"
// @Param channel_name formData string true "Channel"
// @Param date formData string true "Broadcast day, YYYY-MM-DD"
// @Success 201 {object} map[string]any "asRun"
// @Failure 400 {object} map[string]any "Unsupported file format"
// @Failure 502 {object} map[string]any "Storage failure"
// @Router /asrun/upload-file [post]
func (h *handlers) upload(r *stdhttp.Request, in domain.UploadInput, up bind.Upload) (any, error) {
	f, err := up.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("asrun: close upload")
		}
	}()

	p := httpkit.MustPrincipal(r)
	a, err := h.svc.Upload(r.Context(), in, domain.File{Name: up.Name, Ext: up.Ext, Body: f}, p.Name)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusCreated, "AsRun file uploaded successfully", map[string]any{"asRun": a}), nil
}

// swagger:route GET /asrun AsRun asrunList
// @Summary List as-run uploads, newest first
// @Tags AsRun
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param channel_name query string false "Channel"
// @Success 200 {object} map[string]any "asRuns page"
// @Router /asrun [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	res, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	pg := in.Paging.Norm()
	return httpkit.List("asRuns", res.AsRuns, httpkit.Page{Page: pg.Page, Limit: pg.Limit, Total: res.Total}), nil
}

// swagger:route DELETE /asrun/delete-file AsRun asrunDelete
// @Summary Delete as-run uploads and their stored files
// @Tags AsRun
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.DeleteInput true "Ids"
// @Success 200 {object} domain.DeleteResult "deleted"
// @Router /asrun/delete-file [delete]
func (h *handlers) delete(r *stdhttp.Request, in domain.DeleteInput) (any, error) {
	ids, err := h.svc.Delete(r.Context(), in.IDs)
	if err != nil {
		return nil, err
	}
	msg := "Successfully deleted " + strconv.Itoa(len(ids)) + " AsRun file(s)"
	return httpkit.Msg(stdhttp.StatusOK, msg, domain.DeleteResult{DeletedIDs: ids}), nil
}
