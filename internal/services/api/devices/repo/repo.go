// Package repo provides postgres access for devices
package repo

import (
	"context"

	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/store"
)

// Repo defines the repository contract for devices
type Repo interface {
	Insert(ctx context.Context, id string, active bool) (RowDevice, error)
	SetActive(ctx context.Context, id string, active bool) (RowDevice, error)
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (RowDevice, error)
	List(ctx context.Context, active *bool, limit, offset int) ([]RowDevice, int64, error)
	// Upsert registers ids that are missing and leaves existing rows alone
	Upsert(ctx context.Context, ids []string) (int64, error)
}

// RowDevice is a devices row
type RowDevice struct {
	DeviceID string
	IsActive bool
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanDevice(r store.Row) (RowDevice, error) {
	var d RowDevice
	err := r.Scan(&d.DeviceID, &d.IsActive)
	return d, err
}

func (r *queries) Insert(ctx context.Context, id string, active bool) (RowDevice, error) {
	return store.One(ctx, r.q, scanDevice,
		`insert into devices (device_id, is_active) values ($1, $2) returning device_id, is_active`, id, active)
}

func (r *queries) SetActive(ctx context.Context, id string, active bool) (RowDevice, error) {
	return store.One(ctx, r.q, scanDevice,
		`update devices set is_active = $2 where device_id = $1 returning device_id, is_active`, id, active)
}

func (r *queries) Delete(ctx context.Context, id string) error {
	return store.ExecOne(ctx, r.q, `delete from devices where device_id = $1`, id)
}

func (r *queries) ByID(ctx context.Context, id string) (RowDevice, error) {
	return store.One(ctx, r.q, scanDevice, `select device_id, is_active from devices where device_id = $1`, id)
}

func (r *queries) List(ctx context.Context, active *bool, limit, offset int) ([]RowDevice, int64, error) {
	const where = ` where ($1::boolean is null or is_active = $1)`
	total, err := store.Scalar[int64](ctx, r.q, `select count(*) from devices`+where, active)
	if err != nil {
		return nil, 0, err
	}
	rows, err := store.Many(ctx, r.q, scanDevice,
		`select device_id, is_active from devices`+where+` order by device_id limit $2 offset $3`, active, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *queries) Upsert(ctx context.Context, ids []string) (int64, error) {
	return store.Affected(ctx, r.q,
		`insert into devices (device_id) select unnest($1::text[]) on conflict (device_id) do nothing`, ids)
}
