package http_test

import (
	"context"
	stdhttp "net/http"
	"testing"

	"airwatch/internal/modkit/httpkit"
	perr "airwatch/internal/platform/errors"
	pnet "airwatch/internal/platform/net"
	phttp "airwatch/internal/platform/net/http"
	kit "airwatch/internal/platform/testkit"
	"airwatch/internal/services/api/devices/domain"
	devicehttp "airwatch/internal/services/api/devices/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSvc struct {
	devices map[string]bool
	listIn  domain.ListInput
}

func (f *fakeSvc) Register(_ context.Context, in domain.RegisterInput) (domain.Device, error) {
	if _, ok := f.devices[in.DeviceID]; ok {
		return domain.Device{}, domain.ErrDuplicateDeviceID(nil)
	}
	f.devices[in.DeviceID] = true
	return domain.Device{DeviceID: in.DeviceID, IsActive: true}, nil
}

func (f *fakeSvc) Update(_ context.Context, id string, in domain.UpdateInput) (domain.Device, error) {
	if _, ok := f.devices[id]; !ok {
		return domain.Device{}, domain.ErrDeviceNotFound()
	}
	f.devices[id] = *in.IsActive
	return domain.Device{DeviceID: id, IsActive: *in.IsActive}, nil
}

func (f *fakeSvc) Delete(_ context.Context, id string) error {
	if _, ok := f.devices[id]; !ok {
		return domain.ErrDeviceNotFound()
	}
	delete(f.devices, id)
	return nil
}

func (f *fakeSvc) Get(_ context.Context, id string) (domain.Device, error) {
	a, ok := f.devices[id]
	if !ok {
		return domain.Device{}, domain.ErrDeviceNotFound()
	}
	return domain.Device{DeviceID: id, IsActive: a}, nil
}

func (f *fakeSvc) List(_ context.Context, in domain.ListInput) (domain.DeviceList, error) {
	f.listIn = in
	out := []domain.Device{}
	for id, a := range f.devices {
		out = append(out, domain.Device{DeviceID: id, IsActive: a})
	}
	return domain.DeviceList{Devices: out, Total: int64(len(out))}, nil
}

func (f *fakeSvc) Ensure(context.Context, []string) (int64, error) { return 0, nil }

func server(s *fakeSvc) stdhttp.Handler {
	port := httpkit.NewPortFunc(func(_ *stdhttp.Request, tok string) (pnet.Principal, error) {
		switch tok {
		case "admin":
			return pnet.Principal{ID: 1, Role: "ADMIN"}, nil
		case "anno":
			return pnet.Principal{ID: 2, Role: "ANNOTATOR"}, nil
		}
		return pnet.Principal{}, perr.Unauthorizedf("Invalid token")
	})
	m := chi.NewRouter()
	phttp.AdaptChi(m).Route("/devices", func(r httpkit.Router) { devicehttp.Register(r, s, port) })
	return m
}

func TestDeviceLifecycle(t *testing.T) {
	s := &fakeSvc{devices: map[string]bool{}}
	h := server(s)

	rec := kit.Do(t, h, kit.Request{Method: "POST", Path: "/devices/register", Token: "admin", Body: map[string]any{"device_id": "dev-1"}})
	require.Equal(t, stdhttp.StatusCreated, rec.Code)
	assert.Equal(t, "Device registered successfully", kit.DecodeEnvelope(t, rec).Message)

	rec = kit.Do(t, h, kit.Request{Method: "POST", Path: "/devices/register", Token: "admin", Body: map[string]any{"device_id": "dev-1"}})
	assert.Equal(t, stdhttp.StatusConflict, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "PUT", Path: "/devices/dev-1", Token: "admin", Body: map[string]any{"is_active": false}})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var d domain.Device
	kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &d)
	assert.False(t, d.IsActive)

	rec = kit.Do(t, h, kit.Request{Method: "PUT", Path: "/devices/dev-1", Token: "admin", Body: map[string]any{}})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "DELETE", Path: "/devices/dev-1", Token: "admin"})
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/devices/dev-1", Token: "admin"})
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestDevicesNeedAdmin(t *testing.T) {
	h := server(&fakeSvc{devices: map[string]bool{}})

	rec := kit.Do(t, h, kit.Request{Method: "GET", Path: "/devices"})
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/devices", Token: "anno"})
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", kit.DecodeEnvelope(t, rec).Message)
}

func TestListDevices(t *testing.T) {
	s := &fakeSvc{devices: map[string]bool{"dev-1": true, "dev-2": false}}
	h := server(s)

	rec := kit.Do(t, h, kit.Request{Method: "GET", Path: "/devices?is_active=false&limit=1", Token: "admin"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var page struct {
		Devices    []domain.Device `json:"devices"`
		Total      int64           `json:"total"`
		TotalPages int             `json:"totalPages"`
	}
	kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &page)
	assert.Len(t, page.Devices, 2)
	assert.Equal(t, 2, page.TotalPages)
	require.NotNil(t, s.listIn.IsActive)
	assert.False(t, *s.listIn.IsActive)
}
