package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"airwatch/internal/platform/config"
	phttp "airwatch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_Addr(t *testing.T) {
	cases := map[string]string{
		"":               ":3000",
		"8080":           ":8080",
		":9000":          ":9000",
		"127.0.0.1:7000": "127.0.0.1:7000",
	}
	for in, want := range cases {
		t.Setenv("TEST_API_PORT", in)
		if got := phttp.NewServer(config.New().Prefix("TEST_API_")).Addr(); got != want {
			t.Fatalf("PORT=%q => %q, want %q", in, got, want)
		}
	}
}

func TestRouter_Adapters(t *testing.T) {
	called := false
	srv := phttp.NewServer(config.New().Prefix("TEST_API_"), func(*chi.Mux) { called = true })
	if !called {
		t.Fatalf("option not invoked")
	}

	r := srv.Router()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-MW", "yes")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/v1", func(v1 phttp.Router) {
		v1.Group(func(g phttp.Router) {
			g.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
		})
		v1.Post("/m", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
		v1.Put("/m", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		v1.Delete("/m", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
		v1.Handle("/raw", http.NotFoundHandler())
	})

	cases := []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/api/v1/ping", http.StatusOK},
		{http.MethodPost, "/api/v1/m", http.StatusCreated},
		{http.MethodPut, "/api/v1/m", http.StatusAccepted},
		{http.MethodDelete, "/api/v1/m", http.StatusNoContent},
		{http.MethodGet, "/api/v1/raw", http.StatusNotFound},
		{http.MethodGet, "/api/v1/missing", http.StatusNotFound},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.code {
			t.Fatalf("%s %s => %d, want %d", tc.method, tc.path, rr.Code, tc.code)
		}
		if rr.Header().Get("X-MW") != "yes" {
			t.Fatalf("middleware not applied on %s", tc.path)
		}
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("TEST_API_PORT", "127.0.0.1:0")
	t.Setenv("TEST_API_SHUTDOWN_GRACE", "1s")
	srv := phttp.NewServer(config.New().Prefix("TEST_API_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	phttp.MountProfiler(phttp.AdaptChi(m), "/debug", false)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rr.Code)
	}

	m = chi.NewRouter()
	phttp.MountProfiler(phttp.AdaptChi(m), "/debug", true)
	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("enabled profiler should 200, got %d", rr.Code)
	}
}
