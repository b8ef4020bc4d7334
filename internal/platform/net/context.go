// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyPrincipal ctxKey = "principal"

// Principal is the authenticated caller resolved from a bearer token
type Principal struct {
	ID   int64
	Name string
	Role string
}

// IsAdmin reports whether the principal carries the ADMIN role
func (p Principal) IsAdmin() bool { return p.Role == "ADMIN" }

// WithRequestID annotates context with a request id readable by chi helpers
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithPrincipal annotates context with the authenticated caller
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, keyPrincipal, p)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// PrincipalFrom returns the caller on the context, ok is false for anonymous requests
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(keyPrincipal).(Principal)
	return p, ok
}

// UserID returns the caller id or 0 when anonymous
func UserID(ctx context.Context) int64 {
	p, _ := PrincipalFrom(ctx)
	return p.ID
}

// Role returns the caller role or "" when anonymous
func Role(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.Role
}
