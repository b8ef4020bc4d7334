// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	pnet "airwatch/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope = pnet.Envelope

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status  int
	Message string
	Body    any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Reply lets a handler returning (any, error) choose status and message
type Reply struct {
	Status  int
	Message string
	Data    any
}

// Response converts the reply into a Response
func (rp Reply) Response() Response {
	return Response{Status: rp.Status, Message: rp.Message, Body: rp.Data}
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		if perr.CodeOf(err).Internal() {
			logger.C(r.Context()).Error().Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request failed")
		}
		status, env := pnet.Error(err)
		JSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	status, env := pnet.Success(status, resp.Message, resp.Body)
	JSON(w, status, env)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// Page carries the pagination inputs and the total row count
type Page struct {
	Page  int
	Limit int
	Total int64
}

// TotalPages is ceil(total/limit), zero when limit is not positive
func (p Page) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// List returns the list payload {<key>: items, total, totalPages, currentPage}
func List(key string, items any, p Page) map[string]any {
	return map[string]any{
		key:           items,
		"total":       p.Total,
		"totalPages":  p.TotalPages(),
		"currentPage": p.Page,
	}
}
