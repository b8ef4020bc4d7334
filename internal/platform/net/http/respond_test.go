package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "airwatch/internal/platform/errors"
	phttp "airwatch/internal/platform/net/http"
)

func serve(h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("bad json: %v (%s)", err, rec.Body.String())
	}
	return m
}

func TestHandle_Success(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Reply{Status: http.StatusCreated, Message: "Device registered successfully", Data: map[string]string{"device_id": "d1"}}.Response()
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	m := decode(t, rec)
	if m["success"] != true || m["message"] != "Device registered successfully" {
		t.Fatalf("envelope = %v", m)
	}
	if _, ok := m["code"]; ok {
		t.Fatalf("success envelope must not carry code")
	}
}

func TestHandle_DefaultsAndNoContent(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response { return phttp.Response{Body: 1} }))
	if rec.Code != http.StatusOK || decode(t, rec)["message"] != "OK" {
		t.Fatalf("zero status should default to 200 OK, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() }))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandle_Error(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.WithField(perr.DuplicateKeyf("Device ID already exists"), "device_id"))
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	m := decode(t, rec)
	if m["success"] != false || m["code"] != "duplicate_key" || m["field"] != "device_id" {
		t.Fatalf("envelope = %v", m)
	}

	rec = serve(phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(errors.New("dial tcp: refused")) }))
	if rec.Code != http.StatusInternalServerError || decode(t, rec)["message"] != "Internal Server Error" {
		t.Fatalf("internal error leaked: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandle_Headers(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusOK, Header: http.Header{"X-Total": {"3"}}}
	}))
	if rec.Header().Get("X-Total") != "3" {
		t.Fatalf("header not copied")
	}
}

func TestList(t *testing.T) {
	cases := []struct {
		p     phttp.Page
		pages int
	}{
		{phttp.Page{Page: 1, Limit: 10, Total: 0}, 0},
		{phttp.Page{Page: 1, Limit: 10, Total: 10}, 1},
		{phttp.Page{Page: 2, Limit: 10, Total: 11}, 2},
		{phttp.Page{Page: 1, Limit: 0, Total: 11}, 0},
	}
	for _, tc := range cases {
		if got := tc.p.TotalPages(); got != tc.pages {
			t.Fatalf("TotalPages(%+v) = %d, want %d", tc.p, got, tc.pages)
		}
	}

	m := phttp.List("devices", []string{"a"}, phttp.Page{Page: 3, Limit: 1, Total: 5})
	if m["totalPages"] != 5 || m["currentPage"] != 3 || m["total"] != int64(5) {
		t.Fatalf("List = %v", m)
	}
}
