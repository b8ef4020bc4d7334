// Package service contains device registry workflows
package service

import (
	"context"
	"strings"

	"airwatch/internal/modkit/repokit"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/services/api/devices/domain"
	"airwatch/internal/services/api/devices/repo"
)

// Service defines the service contract for devices
type Service interface {
	domain.ServicePort
	// Ensure registers every id that is not known yet
	Ensure(ctx context.Context, ids []string) (int64, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new devices service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("devices.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("devices.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Register adds a device; is_active defaults to true
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.Device, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	row, err := s.Repo.Insert(ctx, strings.TrimSpace(in.DeviceID), active)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return domain.Device{}, domain.ErrDuplicateDeviceID(err)
		}
		return domain.Device{}, perr.FromPostgres(err, "Failed to register device")
	}
	return toDevice(row), nil
}

// Update sets is_active
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Device, error) {
	row, err := s.Repo.SetActive(ctx, id, *in.IsActive)
	if err != nil {
		return domain.Device{}, wrap(repokit.NotFound(err, domain.ErrDeviceNotFound), "Failed to update device")
	}
	return toDevice(row), nil
}

// Delete removes a device
func (s *Svc) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case perr.IsForeignKeyViolation(err):
		return domain.ErrDeviceInUse(err)
	}
	return wrap(repokit.NotFound(err, domain.ErrDeviceNotFound), "Failed to delete device")
}

// Get returns one device
func (s *Svc) Get(ctx context.Context, id string) (domain.Device, error) {
	row, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return domain.Device{}, wrap(repokit.NotFound(err, domain.ErrDeviceNotFound), "Failed to fetch device")
	}
	return toDevice(row), nil
}

// List pages through devices ordered by id
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.DeviceList, error) {
	pg := in.Paging.Norm()
	rows, total, err := s.Repo.List(ctx, in.IsActive, pg.Limit, pg.Offset())
	if err != nil {
		return domain.DeviceList{}, perr.FromPostgres(err, "Failed to fetch devices")
	}
	out := make([]domain.Device, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDevice(r))
	}
	return domain.DeviceList{Devices: out, Total: total}, nil
}

// Ensure registers every id that is not known yet and returns how many were added
func (s *Svc) Ensure(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.Repo.Upsert(ctx, ids)
	if err != nil {
		return 0, perr.FromPostgres(err, "Failed to register devices")
	}
	return n, nil
}

func wrap(err error, msg string) error {
	if perr.Known(err) {
		return err
	}
	return perr.FromPostgres(err, msg)
}

func toDevice(r repo.RowDevice) domain.Device {
	return domain.Device{DeviceID: r.DeviceID, IsActive: r.IsActive}
}
