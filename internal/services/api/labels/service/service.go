// Package service contains label workflows over the label hierarchy
package service

import (
	"context"

	"airwatch/internal/core/labeltree"
	"airwatch/internal/modkit/repokit"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	ptime "airwatch/internal/platform/time"
	eventsdomain "airwatch/internal/services/api/events/domain"
	"airwatch/internal/services/api/labels/domain"
	"airwatch/internal/services/api/labels/repo"
)

// Service defines the service contract for labels
type Service interface {
	domain.ServicePort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	events domain.EventsPort
}

// New creates a new labels service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], events domain.EventsPort) *Svc {
	if db == nil {
		panic("labels.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("labels.Service requires a non nil Repo binder")
	}
	if events == nil {
		panic("labels.Service requires a non nil EventsPort")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, events: events}
}

// Create links the events to a new label and writes its hierarchy in one transaction
func (s *Svc) Create(ctx context.Context, in domain.CreateInput, createdBy string) (labeltree.View, error) {
	var out labeltree.Label
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		ids := domain.Ints(in.EventIDs)
		evs, err := loadEvents(ctx, r, ids)
		if err != nil {
			return err
		}
		start, end, _ := labeltree.Span(evs)

		tree, err := labeltree.BuildSubtypeTree(labeltree.Subtype(in.LabelType), in.Payloads)
		if err != nil {
			return err
		}

		row := repo.RowLabel{
			Category:  tree.Category,
			Subtype:   tree.Subtype,
			CreatedBy: createdBy,
			StartTime: start,
			EndTime:   end,
			Notes:     in.Notes,
		}
		id, at, err := r.InsertLabel(ctx, row)
		if err != nil {
			return err
		}
		if err := writeTree(ctx, r, id, tree); err != nil {
			return err
		}
		if err := r.LinkEvents(ctx, id, ids); err != nil {
			return err
		}

		out = labeltree.Label{
			ID:        id,
			Category:  tree.Category,
			Subtype:   tree.Subtype,
			CreatedBy: createdBy,
			CreatedAt: at,
			StartTime: start,
			EndTime:   end,
			Notes:     in.Notes,
			Events:    evs,
		}
		out.Payloads.Set(tree.Leaf)
		return nil
	})
	if err != nil {
		return labeltree.View{}, s.fail(ctx, err, "create")
	}
	return labeltree.Flatten(out), nil
}

// Update patches a label, moving it between subtypes when label_type changes
func (s *Svc) Update(ctx context.Context, id int64, in domain.UpdateInput) (labeltree.View, error) {
	var out labeltree.Label
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		cur, err := loadLabel(ctx, r, id)
		if err != nil {
			return err
		}

		if len(in.EventIDs) > 0 {
			ids := domain.Ints(in.EventIDs)
			evs, err := loadEvents(ctx, r, ids)
			if err != nil {
				return err
			}
			if err := r.LinkEvents(ctx, id, ids); err != nil {
				return err
			}
			cur.Events = evs
			cur.StartTime, cur.EndTime, _ = labeltree.Span(evs)
		}

		current := labeltree.DeriveSubtype(cur)
		requested := labeltree.Subtype(in.LabelType)
		tr, err := labeltree.Plan(current, requested)
		if err != nil {
			return err
		}

		var tree labeltree.Tree
		switch tr {
		case labeltree.SameSubtype:
			if tree, err = labeltree.PatchTree(current, cur.Payloads.Get(current), in.Payloads); err != nil {
				return err
			}
		case labeltree.SameCategory:
			if tree, err = labeltree.BuildSubtypeTree(requested, in.Payloads); err != nil {
				return err
			}
			if err := r.DeleteLeaf(ctx, id, current); err != nil {
				return err
			}
		case labeltree.CrossCategory:
			if tree, err = labeltree.BuildSubtypeTree(requested, in.Payloads); err != nil {
				return err
			}
			if err := r.DeleteParent(ctx, id, cur.Category); err != nil {
				return err
			}
		}
		if err := writeTree(ctx, r, id, tree); err != nil {
			return err
		}

		if in.Notes != nil {
			cur.Notes = in.Notes
		}
		cur.Category, cur.Subtype = tree.Category, tree.Subtype
		cur.Payloads = labeltree.Payloads{}
		cur.Payloads.Set(tree.Leaf)

		out = cur
		return r.UpdateLabel(ctx, repo.RowLabel{
			ID:        id,
			Category:  cur.Category,
			Subtype:   cur.Subtype,
			StartTime: cur.StartTime,
			EndTime:   cur.EndTime,
			Notes:     cur.Notes,
		})
	})
	if err != nil {
		return labeltree.View{}, s.fail(ctx, err, "update")
	}
	return labeltree.Flatten(out), nil
}

// Get returns one flattened label
func (s *Svc) Get(ctx context.Context, id int64) (labeltree.View, error) {
	l, err := loadLabel(ctx, s.Repo, id)
	if err != nil {
		return labeltree.View{}, s.fail(ctx, err, "fetch")
	}
	return labeltree.Flatten(l), nil
}

// List pages through labels matching the filters
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.LabelList, error) {
	f, err := filterOf(in)
	if err != nil {
		return domain.LabelList{}, err
	}
	ids, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return domain.LabelList{}, s.fail(ctx, err, "fetch")
	}
	ls, err := s.Repo.Load(ctx, ids)
	if err != nil {
		return domain.LabelList{}, s.fail(ctx, err, "fetch")
	}
	views := make([]labeltree.View, len(ls))
	for i, l := range ls {
		views[i] = labeltree.Flatten(l)
	}
	return domain.LabelList{Labels: views, Total: total}, nil
}

// Delete removes a label with its hierarchy and event links
func (s *Svc) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if repokit.IsNoRows(err) || perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.ErrLabelNotFound()
		}
		return s.fail(ctx, err, "delete")
	}
	return nil
}

// DeleteBulk removes every existing label in ids and returns how many went
func (s *Svc) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	n, err := s.Repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, s.fail(ctx, err, "delete")
	}
	return n, nil
}

// ProgramGuide lists the labels of a device that touch one UTC day
func (s *Svc) ProgramGuide(ctx context.Context, date, deviceID string) (domain.ProgramGuide, error) {
	from, to, err := labeltree.DayWindow(date)
	if err != nil {
		return domain.ProgramGuide{}, err
	}
	seen, err := s.Repo.DeviceSeen(ctx, deviceID)
	if err != nil {
		return domain.ProgramGuide{}, s.fail(ctx, err, "fetch")
	}
	if !seen {
		return domain.ProgramGuide{}, domain.ErrDeviceNotFound()
	}

	ids, err := s.Repo.Guide(ctx, deviceID, from, to)
	if err != nil {
		return domain.ProgramGuide{}, s.fail(ctx, err, "fetch")
	}
	ls, err := s.Repo.Load(ctx, ids)
	if err != nil {
		return domain.ProgramGuide{}, s.fail(ctx, err, "fetch")
	}

	views := make([]labeltree.View, 0, len(ls))
	for _, l := range ls {
		dev, err := labeltree.DeviceOf(l)
		if err != nil {
			logger.C(ctx).Warn().Int64("label_id", l.ID).Str("device_id", deviceID).Msg("label spans several devices")
			return domain.ProgramGuide{}, err
		}
		if dev == "" {
			logger.C(ctx).Warn().Int64("label_id", l.ID).Str("device_id", deviceID).Msg("label has no device; dropped from guide")
			continue
		}
		v := labeltree.Flatten(l)
		v.DeviceID = dev
		views = append(views, v)
	}
	return domain.ProgramGuide{Date: date, Labels: views}, nil
}

// Unlabeled lists events no label references yet
func (s *Svc) Unlabeled(ctx context.Context, in eventsdomain.ListInput) (eventsdomain.EventList, error) {
	return s.events.Unlabeled(ctx, in)
}

// fail passes classified errors through and wraps the rest after logging them
func (s *Svc) fail(ctx context.Context, err error, op string) error {
	if err == nil || perr.Known(err) {
		return err
	}
	logger.C(ctx).Error().Err(err).Str("op", op).Msg("label operation failed")
	return domain.ErrLabelOperationFailed(err, op)
}

// loadEvents returns the events for ids or names the ones that do not exist
func loadEvents(ctx context.Context, r repo.Repo, ids []int64) ([]labeltree.EventRef, error) {
	evs, err := r.Events(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(evs) == len(ids) {
		return evs, nil
	}
	found := make(map[int64]struct{}, len(evs))
	for _, e := range evs {
		found[e.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return nil, domain.ErrEventsNotFound(missing)
}

func loadLabel(ctx context.Context, r repo.Repo, id int64) (labeltree.Label, error) {
	ls, err := r.Load(ctx, []int64{id})
	if err != nil {
		return labeltree.Label{}, err
	}
	if len(ls) == 0 {
		return labeltree.Label{}, domain.ErrLabelNotFound()
	}
	return ls[0], nil
}

// writeTree upserts the category row before the subtype row it references
func writeTree(ctx context.Context, r repo.Repo, id int64, t labeltree.Tree) error {
	if err := r.SaveParent(ctx, id, t); err != nil {
		return err
	}
	return r.SaveLeaf(ctx, id, t.Leaf)
}

func filterOf(in domain.ListInput) (repo.Filter, error) {
	var f repo.Filter
	if in.LabelType != "" {
		st := labeltree.Subtype(in.LabelType)
		cat, err := labeltree.ClassifyParent(st)
		if err != nil {
			return repo.Filter{}, err
		}
		f.Category, f.Subtype = cat, st
	}
	from, err := ptime.Bound(in.StartDate, "startDate")
	if err != nil {
		return repo.Filter{}, err
	}
	to, err := ptime.Bound(in.EndDate, "endDate")
	if err != nil {
		return repo.Filter{}, err
	}
	pg := in.Paging.Norm()
	f.CreatedBy = in.CreatedBy
	f.DeviceID = in.DeviceID
	f.From, f.To = from, to
	f.Order = repokit.Order(in.Sort)
	f.Limit, f.Offset = pg.Limit, pg.Offset()
	return f, nil
}
