// Package repo provides postgres access for as-run records
package repo

import (
	"context"

	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/store"
	"airwatch/internal/services/api/asrun/domain"
)

// Repo defines the repository contract for as-run records
type Repo interface {
	Insert(ctx context.Context, a domain.AsRun) (domain.AsRun, error)
	ByID(ctx context.Context, id int64) (domain.AsRun, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, channel string, limit, offset int) ([]domain.AsRun, int64, error)
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

const cols = `id, uploaded_by, uploaded_at, channel_name, to_char(date, 'YYYY-MM-DD'), file_url, object_key`

func scanAsRun(r store.Row) (domain.AsRun, error) {
	var a domain.AsRun
	err := r.Scan(&a.ID, &a.UploadedBy, &a.UploadedAt, &a.ChannelName, &a.Date, &a.FileURL, &a.ObjectKey)
	return a, err
}

func (r *queries) Insert(ctx context.Context, a domain.AsRun) (domain.AsRun, error) {
	sql := `
insert into asruns (uploaded_by, channel_name, date, file_url, object_key)
values ($1, $2, $3::date, $4, $5)
returning ` + cols
	return store.One(ctx, r.q, scanAsRun, sql, a.UploadedBy, a.ChannelName, a.Date, a.FileURL, a.ObjectKey)
}

func (r *queries) ByID(ctx context.Context, id int64) (domain.AsRun, error) {
	return store.One(ctx, r.q, scanAsRun, `select `+cols+` from asruns where id = $1`, id)
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	return store.ExecOne(ctx, r.q, `delete from asruns where id = $1`, id)
}

func (r *queries) List(ctx context.Context, channel string, limit, offset int) ([]domain.AsRun, int64, error) {
	const where = ` where ($1 = '' or channel_name = $1)`
	total, err := store.Scalar[int64](ctx, r.q, `select count(*) from asruns`+where, channel)
	if err != nil {
		return nil, 0, err
	}
	sql := `select ` + cols + ` from asruns` + where + ` order by uploaded_at desc, id desc limit $2 offset $3`
	rows, err := store.Many(ctx, r.q, scanAsRun, sql, channel, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
