package net

import (
	"net/http"
	"sync/atomic"

	perr "airwatch/internal/platform/errors"
)

// Envelope is the response body shared by every transport
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// internalMessage replaces the message of internal errors unless exposure is on
const internalMessage = "Internal Server Error"

var exposeInternal atomic.Bool

// ExposeInternal toggles whether internal error messages reach clients (development only)
func ExposeInternal(on bool) { exposeInternal.Store(on) }

// Success builds a success envelope; an empty message falls back to the status text
func Success(status int, message string, data any) (int, Envelope) {
	if message == "" {
		message = http.StatusText(status)
	}
	return status, Envelope{Success: true, Message: message, Data: data}
}

// Error builds a failure envelope from any error
func Error(err error) (int, Envelope) {
	if err == nil {
		return Success(http.StatusOK, "", nil)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	msg := w.Message
	if w.Code.Internal() && !exposeInternal.Load() {
		msg = internalMessage
	}
	return status, Envelope{Message: msg, Code: w.Kind, Field: w.Field}
}
