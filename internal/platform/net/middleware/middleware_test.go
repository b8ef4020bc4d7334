package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "airwatch/internal/platform/errors"
	pnet "airwatch/internal/platform/net"
	"airwatch/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

type fakePort struct {
	p   pnet.Principal
	err error
}

func (f fakePort) Parse(*http.Request) (pnet.Principal, error) { return f.p, f.err }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func envelope(t *testing.T, rr *httptest.ResponseRecorder) pnet.Envelope {
	t.Helper()
	var env pnet.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body %q: %v", rr.Body.String(), err)
	}
	return env
}

func echoPrincipal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := pnet.PrincipalFrom(r.Context())
		writeJSON(w, http.StatusOK, pnet.Envelope{Success: true, Message: p.Role})
	})
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name   string
		port   middleware.AuthPort
		status int
		msg    string
	}{
		{"nil port", nil, http.StatusUnauthorized, "Authentication token required"},
		{"port error", fakePort{err: perr.Unauthorizedf("Invalid token")}, http.StatusUnauthorized, "Invalid token"},
		{"ok", fakePort{p: pnet.Principal{ID: 1, Role: "ADMIN"}}, http.StatusOK, "ADMIN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			middleware.Auth(tc.port, writeJSON)(echoPrincipal()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			if rr.Code != tc.status || envelope(t, rr).Message != tc.msg {
				t.Fatalf("got %d %q", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	guard := middleware.RequireRole(writeJSON, "Admin access required", "ADMIN")

	cases := []struct {
		name   string
		p      *pnet.Principal
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"annotator", &pnet.Principal{ID: 2, Role: "ANNOTATOR"}, http.StatusForbidden},
		{"admin", &pnet.Principal{ID: 1, Role: "ADMIN"}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.p != nil {
				req = req.WithContext(pnet.WithPrincipal(req.Context(), *tc.p))
			}
			rr := httptest.NewRecorder()
			guard(echoPrincipal()).ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d", rr.Code)
			}
			if tc.status == http.StatusForbidden && envelope(t, rr).Message != "Admin access required" {
				t.Fatalf("message = %q", rr.Body.String())
			}
		})
	}
}

func TestRecoverJSON(t *testing.T) {
	m := chi.NewRouter()
	m.Use(middleware.RequestID(), middleware.RequestLog, middleware.RecoverJSON)
	m.Get("/boom", func(http.ResponseWriter, *http.Request) { panic(errors.New("kaboom")) })

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	env := envelope(t, rr)
	if env.Success || env.Code != "panic" || env.Message != "Internal Server Error" {
		t.Fatalf("envelope = %+v", env)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{Slow: 1})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusTeapot || rr.Body.String() != "short and stout" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"http://ui.test"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/labels", nil)
	req.Header.Set("Origin", "http://ui.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://ui.test" {
		t.Fatalf("allow origin = %q", got)
	}
}
