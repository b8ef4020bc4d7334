package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Envelope mirrors the API response body for assertions
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

// Request is one call made through Do
type Request struct {
	Method string
	Path   string
	Body   any // marshalled as JSON unless it is already an io.Reader
	Token  string
	Header map[string]string
}

// Do serves req against h and returns the recorder
func Do(t *testing.T, h http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.Method, req.Path, body)
	if body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Header {
		r.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// DecodeEnvelope parses the recorder body, failing the test on bad JSON
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

// DecodeData unmarshals the envelope data into dst
func DecodeData(t *testing.T, env Envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, string(env.Data))
	}
}
