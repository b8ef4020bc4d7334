// Package repo provides postgres access for events
package repo

import (
	"context"

	"airwatch/internal/modkit/repokit"
	"airwatch/internal/platform/store"
)

// Repo defines the repository contract for events
type Repo interface {
	List(ctx context.Context, f Filter) ([]RowEvent, int64, error)
	ByID(ctx context.Context, id int64) (RowEvent, error)
	// Detections loads the recognitions of the given events ordered by id
	Detections(ctx context.Context, ids []int64) ([]RowDetection, error)
	// Insert writes an event with its recognitions
	Insert(ctx context.Context, e RowEvent, ds []RowDetection) error
}

// RowEvent is an events row
type RowEvent struct {
	ID        int64
	DeviceID  string
	Timestamp int64
	Type      int
	ImagePath *string
	MaxScore  *float64
}

// RowDetection is a row of event_ads, event_channels or event_contents
type RowDetection struct {
	Category string // ads, channels or content
	ID       int64
	EventID  int64
	Name     string
	Score    *float64
}

// Filter narrows List; nil bounds and empty values are ignored
type Filter struct {
	From      *int64
	To        *int64
	DeviceID  string
	Types     []int32
	Category  string
	Unlabeled bool
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

const eventCols = `e.id, e.device_id, e.timestamp, e.type, e.image_path, e.max_score`

func scanEvent(r store.Row) (RowEvent, error) {
	var e RowEvent
	err := r.Scan(&e.ID, &e.DeviceID, &e.Timestamp, &e.Type, &e.ImagePath, &e.MaxScore)
	return e, err
}

// tables maps a detection category onto its table
var tables = map[string]string{
	"ads":      "event_ads",
	"channels": "event_channels",
	"content":  "event_contents",
}

const filterWhere = `
where ($1::bigint is null or e.timestamp >= $1)
and ($2::bigint is null or e.timestamp <= $2)
and ($3 = '' or e.device_id = $3)
and ($4::int[] is null or cardinality($4::int[]) = 0 or e.type = any($4::int[]))
and ($5 = ''
  or ($5 = 'ads' and exists (select 1 from event_ads d where d.event_id = e.id))
  or ($5 = 'channels' and exists (select 1 from event_channels d where d.event_id = e.id))
  or ($5 = 'content' and exists (select 1 from event_contents d where d.event_id = e.id)))
and (not $6 or not exists (select 1 from label_events le where le.event_id = e.id))`

func (r *queries) List(ctx context.Context, f Filter) ([]RowEvent, int64, error) {
	args := []any{f.From, f.To, f.DeviceID, f.Types, f.Category, f.Unlabeled}

	total, err := store.Scalar[int64](ctx, r.q, `select count(*) from events e`+filterWhere, args...)
	if err != nil {
		return nil, 0, err
	}

	dir := repokit.Order(f.Order)
	sql := `select ` + eventCols + ` from events e` + filterWhere +
		` order by e.timestamp ` + dir + `, e.id ` + dir + ` limit $7 offset $8`
	rows, err := store.Many(ctx, r.q, scanEvent, sql, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *queries) ByID(ctx context.Context, id int64) (RowEvent, error) {
	return store.One(ctx, r.q, scanEvent, `select `+eventCols+` from events e where e.id = $1`, id)
}

func (r *queries) Detections(ctx context.Context, ids []int64) ([]RowDetection, error) {
	if len(ids) == 0 {
		return []RowDetection{}, nil
	}
	const sql = `
select 'ads', id, event_id, name, score from event_ads where event_id = any($1)
union all
select 'channels', id, event_id, name, score from event_channels where event_id = any($1)
union all
select 'content', id, event_id, name, score from event_contents where event_id = any($1)
order by 2`
	return store.Many(ctx, r.q, func(row store.Row) (RowDetection, error) {
		var d RowDetection
		err := row.Scan(&d.Category, &d.ID, &d.EventID, &d.Name, &d.Score)
		return d, err
	}, sql, ids)
}

func (r *queries) Insert(ctx context.Context, e RowEvent, ds []RowDetection) error {
	const sql = `
insert into events (id, device_id, timestamp, type, image_path, max_score)
values ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, sql, e.ID, e.DeviceID, e.Timestamp, e.Type, e.ImagePath, e.MaxScore); err != nil {
		return err
	}
	for _, d := range ds {
		table, ok := tables[d.Category]
		if !ok {
			continue
		}
		sql := `insert into ` + table + ` (event_id, name, score) values ($1, $2, $3)`
		if _, err := r.q.Exec(ctx, sql, e.ID, d.Name, d.Score); err != nil {
			return err
		}
	}
	return nil
}
