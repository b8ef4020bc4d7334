package http_test

import (
	"context"
	"errors"
	stdhttp "net/http"
	"testing"
	"time"

	"airwatch/internal/core/version"
	"airwatch/internal/modkit/httpkit"
	phttp "airwatch/internal/platform/net/http"
	kit "airwatch/internal/platform/testkit"
	metahttp "airwatch/internal/services/api/meta/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func server(pg any) stdhttp.Handler {
	m := chi.NewRouter()
	phttp.AdaptChi(m).Group(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{ServiceName: "airwatch-api", StartedAt: time.Now().Add(-time.Minute), PG: pg})
	})
	return m
}

func TestHealthAndVersion(t *testing.T) {
	h := server(nil)

	rec := kit.Do(t, h, kit.Request{Method: "GET", Path: "/health"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var hr metahttp.HealthResponse
	kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &hr)
	assert.True(t, hr.OK)
	assert.Equal(t, "airwatch-api", hr.Service)
	assert.GreaterOrEqual(t, hr.Uptime, int64(59))

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/version"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var bi version.BuildInfo
	kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &bi)
	assert.Equal(t, "airwatch-api", bi.Service)
}

func TestReady(t *testing.T) {
	cases := []struct {
		name string
		pg   any
		want string
	}{
		{"skipped", nil, "skipped"},
		{"ok", pinger{}, "ok"},
		{"fail", pinger{err: errors.New("refused")}, "fail"},
		{"unknown", struct{}{}, "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := kit.Do(t, server(tc.pg), kit.Request{Method: "GET", Path: "/ready"})
			require.Equal(t, stdhttp.StatusOK, rec.Code)
			var rr metahttp.ReadyResponse
			kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &rr)
			require.Len(t, rr.Checks, 1)
			assert.Equal(t, tc.want, rr.Checks[0].Status)
		})
	}
}
