// Package service contains event query workflows
package service

import (
	"context"

	"airwatch/internal/modkit/repokit"
	perr "airwatch/internal/platform/errors"
	ptime "airwatch/internal/platform/time"
	"airwatch/internal/services/api/events/domain"
	"airwatch/internal/services/api/events/repo"
)

// Service defines the service contract for events
type Service interface {
	domain.ServicePort
	// Hydrate attaches recognitions to already loaded rows
	Hydrate(ctx context.Context, rows []repo.RowEvent) ([]domain.Event, error)
	// Insert writes one event with its recognitions inside q
	Insert(ctx context.Context, q repokit.Queryer, e repo.RowEvent, ds []repo.RowDetection) error
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new events service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("events.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("events.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List pages through events matching the filters
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.EventList, error) {
	return s.list(ctx, in, false)
}

// Unlabeled pages through events that no label references
func (s *Svc) Unlabeled(ctx context.Context, in domain.ListInput) (domain.EventList, error) {
	return s.list(ctx, in, true)
}

func (s *Svc) list(ctx context.Context, in domain.ListInput, unlabeled bool) (domain.EventList, error) {
	f, err := filterOf(in)
	if err != nil {
		return domain.EventList{}, err
	}
	f.Unlabeled = unlabeled

	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return domain.EventList{}, perr.FromPostgres(err, "Failed to fetch events")
	}
	evs, err := s.Hydrate(ctx, rows)
	if err != nil {
		return domain.EventList{}, err
	}
	return domain.EventList{Events: evs, Total: total}, nil
}

// Get returns one event with its recognitions
func (s *Svc) Get(ctx context.Context, id int64) (domain.Event, error) {
	row, err := s.Repo.ByID(ctx, id)
	if err != nil {
		if repokit.IsNoRows(err) {
			return domain.Event{}, domain.ErrEventNotFound()
		}
		return domain.Event{}, perr.FromPostgres(err, "Failed to fetch event")
	}
	evs, err := s.Hydrate(ctx, []repo.RowEvent{row})
	if err != nil {
		return domain.Event{}, err
	}
	return evs[0], nil
}

// Hydrate attaches recognitions in one query; the sub collections are never nil
func (s *Svc) Hydrate(ctx context.Context, rows []repo.RowEvent) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(rows))
	idx := make(map[int64]int, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		idx[r.ID] = len(out)
		ids = append(ids, r.ID)
		out = append(out, domain.Event{
			ID:        r.ID,
			DeviceID:  r.DeviceID,
			Timestamp: r.Timestamp,
			Type:      r.Type,
			ImagePath: r.ImagePath,
			MaxScore:  r.MaxScore,
			Ads:       []domain.Detection{},
			Channels:  []domain.Detection{},
			Content:   []domain.Detection{},
		})
	}
	if len(ids) == 0 {
		return out, nil
	}

	ds, err := s.Repo.Detections(ctx, ids)
	if err != nil {
		return nil, perr.FromPostgres(err, "Failed to fetch event detections")
	}
	for _, d := range ds {
		i, ok := idx[d.EventID]
		if !ok {
			continue
		}
		det := domain.Detection{ID: d.ID, EventID: d.EventID, Name: d.Name, Score: d.Score}
		switch d.Category {
		case domain.CategoryAds:
			out[i].Ads = append(out[i].Ads, det)
		case domain.CategoryChannels:
			out[i].Channels = append(out[i].Channels, det)
		case domain.CategoryContent:
			out[i].Content = append(out[i].Content, det)
		}
	}
	return out, nil
}

// Insert writes one event with its recognitions inside q
func (s *Svc) Insert(ctx context.Context, q repokit.Queryer, e repo.RowEvent, ds []repo.RowDetection) error {
	return s.binder.Bind(q).Insert(ctx, e, ds)
}

// filterOf validates the bounds and maps the input onto a repo filter
func filterOf(in domain.ListInput) (repo.Filter, error) {
	from, err := ptime.Bound(in.StartDate, "startDate")
	if err != nil {
		return repo.Filter{}, err
	}
	to, err := ptime.Bound(in.EndDate, "endDate")
	if err != nil {
		return repo.Filter{}, err
	}
	if from != nil && to != nil && *from > *to {
		return repo.Filter{}, domain.ErrInvalidRange()
	}

	var types []int32
	for _, t := range in.Types {
		types = append(types, int32(t))
	}
	pg := in.Paging.Norm()
	return repo.Filter{
		From:     from,
		To:       to,
		DeviceID: in.DeviceID,
		Types:    types,
		Category: in.Category,
		Order:    repokit.Order(in.Sort),
		Limit:    pg.Limit,
		Offset:   pg.Offset(),
	}, nil
}
