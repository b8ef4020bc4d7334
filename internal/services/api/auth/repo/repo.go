// Package repo provides postgres access for users
package repo

import (
	"context"
	"time"

	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/store"
)

// Repo defines the repository contract for users
type Repo interface {
	ByEmail(ctx context.Context, email string) (RowUser, error)
	ByID(ctx context.Context, id int64) (RowUser, error)
	Insert(ctx context.Context, u RowUser) (RowUser, error)
	Update(ctx context.Context, id int64, p Patch) (RowUser, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]RowUser, int64, error)
}

// RowUser is a users row including the password hash
type RowUser struct {
	ID         int64
	Name       string
	Email      string
	Password   string
	Role       string
	RecorderID *string
	CreatedBy  *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Patch carries the columns to overwrite; nil leaves a column alone
type Patch struct {
	Name       *string
	Email      *string
	Password   *string
	RecorderID *string
}

// ListFilter narrows List
type ListFilter struct {
	Role   string
	Search string
	Limit  int
	Offset int
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

const userCols = `id, name, email, password, role, recorder_id, created_by, created_at, updated_at`

func scanUser(r store.Row) (RowUser, error) {
	var u RowUser
	err := r.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.RecorderID, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *queries) ByEmail(ctx context.Context, email string) (RowUser, error) {
	return store.One(ctx, r.q, scanUser, `select `+userCols+` from users where lower(email) = lower($1)`, email)
}

func (r *queries) ByID(ctx context.Context, id int64) (RowUser, error) {
	return store.One(ctx, r.q, scanUser, `select `+userCols+` from users where id = $1`, id)
}

func (r *queries) Insert(ctx context.Context, u RowUser) (RowUser, error) {
	const sql = `
insert into users (name, email, password, role, recorder_id, created_by)
values ($1, $2, $3, $4, $5, $6)
returning ` + userCols
	return store.One(ctx, r.q, scanUser, sql, u.Name, u.Email, u.Password, u.Role, u.RecorderID, u.CreatedBy)
}

func (r *queries) Update(ctx context.Context, id int64, p Patch) (RowUser, error) {
	const sql = `
update users set
  name = coalesce($2, name),
  email = coalesce($3, email),
  password = coalesce($4, password),
  recorder_id = coalesce($5, recorder_id),
  updated_at = now()
where id = $1
returning ` + userCols
	return store.One(ctx, r.q, scanUser, sql, id, p.Name, p.Email, p.Password, p.RecorderID)
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	return store.ExecOne(ctx, r.q, `delete from users where id = $1`, id)
}

func (r *queries) List(ctx context.Context, f ListFilter) ([]RowUser, int64, error) {
	const where = `
where ($1 = '' or role = $1)
and ($2 = '' or name ilike '%' || $2 || '%' or email ilike '%' || $2 || '%' or recorder_id ilike '%' || $2 || '%')`

	total, err := store.Scalar[int64](ctx, r.q, `select count(*) from users`+where, f.Role, f.Search)
	if err != nil {
		return nil, 0, err
	}
	rows, err := store.Many(ctx, r.q, scanUser,
		`select `+userCols+` from users`+where+` order by created_at desc, id desc limit $3 offset $4`,
		f.Role, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
