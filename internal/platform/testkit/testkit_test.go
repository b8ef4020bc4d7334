package testkit

import (
	"io"
	"net/http"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "alpha beta gamma", "beta")
	MustNotContain(t, "alpha beta gamma", "delta")
}

func TestDo_SendsJSONAndToken(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if r.Header.Get("Authorization") != "Bearer tkn" || r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":` + string(b) + `}`))
	})

	rec := Do(t, h, Request{Method: http.MethodPost, Path: "/x", Body: map[string]int{"n": 7}, Token: "tkn"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := DecodeEnvelope(t, rec)
	var got struct{ N int }
	DecodeData(t, env, &got)
	if !env.Success || env.Message != "ok" || got.N != 7 {
		t.Fatalf("unexpected envelope %+v / %+v", env, got)
	}
}
