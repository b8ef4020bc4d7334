// Package repo provides postgres access for labels and their hierarchy tables
package repo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"airwatch/internal/core/labeltree"
	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/store"
)

// Repo defines the repository contract for labels
type Repo interface {
	// Events loads the given events; ids that do not exist are simply absent
	Events(ctx context.Context, ids []int64) ([]labeltree.EventRef, error)
	// DeviceSeen reports whether any event references the device
	DeviceSeen(ctx context.Context, deviceID string) (bool, error)

	InsertLabel(ctx context.Context, l RowLabel) (int64, time.Time, error)
	UpdateLabel(ctx context.Context, l RowLabel) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)

	// SaveParent upserts the category row of id
	SaveParent(ctx context.Context, id int64, t labeltree.Tree) error
	// DeleteParent removes the category row and with it the subtype row
	DeleteParent(ctx context.Context, id int64, c labeltree.Category) error
	// SaveLeaf upserts the subtype row of id
	SaveLeaf(ctx context.Context, id int64, p labeltree.Payload) error
	DeleteLeaf(ctx context.Context, id int64, s labeltree.Subtype) error

	// LinkEvents replaces the events of a label
	LinkEvents(ctx context.Context, id int64, eventIDs []int64) error

	// Load hydrates labels in the order of ids; unknown ids are skipped
	Load(ctx context.Context, ids []int64) ([]labeltree.Label, error)
	List(ctx context.Context, f Filter) ([]int64, int64, error)
	// Guide returns the labels of a device touching [from, to] ordered by start_time
	Guide(ctx context.Context, deviceID string, from, to int64) ([]int64, error)
}

// RowLabel is a labels row
type RowLabel struct {
	ID        int64
	Category  labeltree.Category
	Subtype   labeltree.Subtype
	CreatedBy string
	StartTime int64
	EndTime   int64
	Notes     *string
}

// Filter narrows List; empty values and nil bounds are ignored
type Filter struct {
	Category  labeltree.Category
	Subtype   labeltree.Subtype
	CreatedBy string
	DeviceID  string
	From      *int64
	To        *int64
	Order     string // asc or desc
	Limit     int
	Offset    int
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

func scanEventRef(r store.Row) (labeltree.EventRef, error) {
	var e labeltree.EventRef
	err := r.Scan(&e.ID, &e.DeviceID, &e.Timestamp, &e.ImagePath)
	return e, err
}

func (r *queries) Events(ctx context.Context, ids []int64) ([]labeltree.EventRef, error) {
	const sql = `select id, device_id, timestamp, image_path from events where id = any($1) order by timestamp, id`
	return store.Many(ctx, r.q, scanEventRef, sql, ids)
}

func (r *queries) DeviceSeen(ctx context.Context, deviceID string) (bool, error) {
	return store.Scalar[bool](ctx, r.q, `select exists (select 1 from events where device_id = $1)`, deviceID)
}

func (r *queries) InsertLabel(ctx context.Context, l RowLabel) (int64, time.Time, error) {
	const sql = `
insert into labels (label_type, subtype, created_by, start_time, end_time, notes)
values ($1, $2, $3, $4, $5, $6)
returning id, created_at`
	type out struct {
		id int64
		at time.Time
	}
	o, err := store.One(ctx, r.q, func(row store.Row) (out, error) {
		var o out
		err := row.Scan(&o.id, &o.at)
		return o, err
	}, sql, string(l.Category), string(l.Subtype), l.CreatedBy, l.StartTime, l.EndTime, l.Notes)
	return o.id, o.at, err
}

func (r *queries) UpdateLabel(ctx context.Context, l RowLabel) error {
	const sql = `
update labels
set label_type = $2, subtype = $3, start_time = $4, end_time = $5, notes = $6
where id = $1`
	return store.ExecOne(ctx, r.q, sql, l.ID, string(l.Category), string(l.Subtype), l.StartTime, l.EndTime, l.Notes)
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	return store.ExecOne(ctx, r.q, `delete from labels where id = $1`, id)
}

func (r *queries) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return store.Affected(ctx, r.q, `delete from labels where id = any($1)`, ids)
}

// upsert builds an insert on label_id that overwrites every given column on conflict
func upsert(table string, cols labeltree.Columns) string {
	names := append([]string{"label_id"}, cols.Names...)
	marks := make([]string, len(names))
	for i := range names {
		marks[i] = "$" + strconv.Itoa(i+1)
	}
	sets := make([]string, len(cols.Names))
	for i, n := range cols.Names {
		sets[i] = n + " = excluded." + n
	}
	sql := `insert into ` + table + ` (` + strings.Join(names, ", ") + `) values (` + strings.Join(marks, ", ") + `)`
	if len(sets) == 0 {
		return sql + ` on conflict (label_id) do nothing`
	}
	return sql + ` on conflict (label_id) do update set ` + strings.Join(sets, ", ")
}

func (r *queries) SaveParent(ctx context.Context, id int64, t labeltree.Tree) error {
	sql := upsert(labeltree.ParentTable(t.Category), t.Parent)
	_, err := r.q.Exec(ctx, sql, append([]any{id}, t.Parent.Values...)...)
	return err
}

func (r *queries) DeleteParent(ctx context.Context, id int64, c labeltree.Category) error {
	table := labeltree.ParentTable(c)
	if table == "" {
		return nil
	}
	_, err := r.q.Exec(ctx, `delete from `+table+` where label_id = $1`, id)
	return err
}

func (r *queries) SaveLeaf(ctx context.Context, id int64, p labeltree.Payload) error {
	cols := labeltree.RowColumns(p)
	_, err := r.q.Exec(ctx, upsert(labeltree.Table(p.Subtype()), cols), append([]any{id}, cols.Values...)...)
	return err
}

func (r *queries) DeleteLeaf(ctx context.Context, id int64, s labeltree.Subtype) error {
	table := labeltree.Table(s)
	if table == "" {
		return nil
	}
	_, err := r.q.Exec(ctx, `delete from `+table+` where label_id = $1`, id)
	return err
}

func (r *queries) LinkEvents(ctx context.Context, id int64, eventIDs []int64) error {
	if _, err := r.q.Exec(ctx, `delete from label_events where label_id = $1`, id); err != nil {
		return err
	}
	const sql = `insert into label_events (label_id, event_id) select $1, unnest($2::bigint[]) on conflict do nothing`
	_, err := r.q.Exec(ctx, sql, id, eventIDs)
	return err
}

func (r *queries) Load(ctx context.Context, ids []int64) ([]labeltree.Label, error) {
	if len(ids) == 0 {
		return []labeltree.Label{}, nil
	}
	const sql = `
select id, label_type, subtype, created_by, created_at, start_time, end_time, notes
from labels where id = any($1)`
	rows, err := store.Many(ctx, r.q, func(row store.Row) (labeltree.Label, error) {
		var (
			l        labeltree.Label
			cat, sub string
		)
		err := row.Scan(&l.ID, &cat, &sub, &l.CreatedBy, &l.CreatedAt, &l.StartTime, &l.EndTime, &l.Notes)
		l.Category, l.Subtype = labeltree.Category(cat), labeltree.Subtype(sub)
		return l, err
	}, sql, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*labeltree.Label, len(rows))
	bySubtype := map[labeltree.Subtype][]int64{}
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
		bySubtype[rows[i].Subtype] = append(bySubtype[rows[i].Subtype], rows[i].ID)
	}

	if err := r.loadEvents(ctx, ids, byID); err != nil {
		return nil, err
	}
	for s, sids := range bySubtype {
		if err := r.loadLeaves(ctx, s, sids, byID); err != nil {
			return nil, err
		}
	}

	out := make([]labeltree.Label, 0, len(rows))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *queries) loadEvents(ctx context.Context, ids []int64, byID map[int64]*labeltree.Label) error {
	const sql = `
select le.label_id, e.id, e.device_id, e.timestamp, e.image_path
from label_events le join events e on e.id = le.event_id
where le.label_id = any($1)
order by e.timestamp, e.id`
	type link struct {
		labelID int64
		ev      labeltree.EventRef
	}
	links, err := store.Many(ctx, r.q, func(row store.Row) (link, error) {
		var k link
		err := row.Scan(&k.labelID, &k.ev.ID, &k.ev.DeviceID, &k.ev.Timestamp, &k.ev.ImagePath)
		return k, err
	}, sql, ids)
	if err != nil {
		return err
	}
	for _, k := range links {
		if l, ok := byID[k.labelID]; ok {
			l.Events = append(l.Events, k.ev)
		}
	}
	return nil
}

// loadLeaves scans the subtype rows of one table into their labels
func (r *queries) loadLeaves(ctx context.Context, s labeltree.Subtype, ids []int64, byID map[int64]*labeltree.Label) error {
	table := labeltree.Table(s)
	if table == "" {
		return nil
	}
	names, _ := labeltree.ScanTargets(labeltree.New(s))
	sql := `select label_id, ` + strings.Join(names, ", ") + ` from ` + table + ` where label_id = any($1)`

	type leaf struct {
		labelID int64
		p       labeltree.Payload
	}
	leaves, err := store.Many(ctx, r.q, func(row store.Row) (leaf, error) {
		lf := leaf{p: labeltree.New(s)}
		_, dest := labeltree.ScanTargets(lf.p)
		err := row.Scan(append([]any{&lf.labelID}, dest...)...)
		return lf, err
	}, sql, ids)
	if err != nil {
		return err
	}
	for _, lf := range leaves {
		if l, ok := byID[lf.labelID]; ok {
			l.Payloads.Set(lf.p)
		}
	}
	return nil
}

// labelOnDevice matches labels with at least one event on $n
func labelOnDevice(n int) string {
	return `exists (select 1 from label_events le join events e on e.id = le.event_id
  where le.label_id = l.id and e.device_id = $` + strconv.Itoa(n) + `)`
}

var listWhere = `
where ($1 = '' or l.label_type = $1)
and ($2 = '' or l.subtype = $2)
and ($3 = '' or l.created_by = $3)
and ($4 = '' or ` + labelOnDevice(4) + `)
and ($5::bigint is null or l.end_time >= $5)
and ($6::bigint is null or l.start_time <= $6)`

func (r *queries) List(ctx context.Context, f Filter) ([]int64, int64, error) {
	args := []any{string(f.Category), string(f.Subtype), f.CreatedBy, f.DeviceID, f.From, f.To}

	total, err := store.Scalar[int64](ctx, r.q, `select count(*) from labels l`+listWhere, args...)
	if err != nil {
		return nil, 0, err
	}

	dir := repokit.Order(f.Order)
	sql := `select l.id from labels l` + listWhere +
		` order by l.start_time ` + dir + `, l.id ` + dir + ` limit $7 offset $8`
	ids, err := store.Many(ctx, r.q, scanID, sql, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func (r *queries) Guide(ctx context.Context, deviceID string, from, to int64) ([]int64, error) {
	sql := `
select l.id from labels l
where ` + labelOnDevice(1) + `
and (l.start_time between $2 and $3
  or l.end_time between $2 and $3
  or (l.start_time <= $2 and l.end_time >= $3)
  or exists (select 1 from label_events le join events e on e.id = le.event_id
    where le.label_id = l.id and e.timestamp between $2 and $3))
order by l.start_time asc, l.id asc`
	return store.Many(ctx, r.q, scanID, sql, deviceID, from, to)
}

func scanID(r store.Row) (int64, error) {
	var id int64
	err := r.Scan(&id)
	return id, err
}
