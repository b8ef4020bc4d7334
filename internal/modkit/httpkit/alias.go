// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perr "airwatch/internal/platform/errors"
	phttp "airwatch/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Page is the pagination metadata type
	Page = phttp.Page

	// Response is the HTTP response type
	Response = phttp.Response

	// Reply carries a handler chosen status and message
	Reply = phttp.Reply

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Msg builds a Reply with an explicit status and message
func Msg(status int, message string, data any) Reply {
	return Reply{Status: status, Message: message, Data: data}
}

// List builds the list payload {<key>: items, total, totalPages, currentPage}
func List(key string, items any, p Page) map[string]any { return phttp.List(key, items, p) }

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// Param returns a trimmed URL path parameter; blank values are a Validation error
func Param(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(phttp.Param(r, name))
	if v == "" {
		return "", perr.WithField(perr.Validationf("%s is required", name), name)
	}
	return v, nil
}

// ParamInt64 parses a positive integer path parameter
func ParamInt64(r *http.Request, name string) (int64, error) {
	raw, err := Param(r, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, perr.WithField(perr.Validationf("%s must be a positive integer", name), name)
	}
	return n, nil
}
