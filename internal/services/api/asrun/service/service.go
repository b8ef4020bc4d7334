// Package service converts uploaded as-run sheets to JSON objects and tracks them
package service

import (
	"context"
	"strconv"
	"time"

	"airwatch/internal/core/normalize"
	"airwatch/internal/core/sheetjson"
	"airwatch/internal/modkit/repokit"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	"airwatch/internal/platform/objstore"
	"airwatch/internal/services/api/asrun/domain"
	"airwatch/internal/services/api/asrun/repo"
)

// KeyPrefix is the object storage folder for converted as-run files
const KeyPrefix = "asrun-files/"

// Service defines the service contract for as-run files
type Service interface {
	domain.ServicePort
}

// Svc implements the Service interface
type Svc struct {
	Repo    repo.Repo
	objects objstore.Store
	now     func() time.Time
}

// Option customizes a Svc
type Option func(*Svc)

// WithClock overrides the clock used for object keys
func WithClock(now func() time.Time) Option { return func(s *Svc) { s.now = now } }

// New creates a new as-run service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], objects objstore.Store, opts ...Option) *Svc {
	if db == nil {
		panic("asrun.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("asrun.Service requires a non nil Repo binder")
	}
	if objects == nil {
		panic("asrun.Service requires a non nil object store")
	}
	s := &Svc{Repo: binder.Bind(db), objects: objects, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ObjectKey returns the storage key for an upload named name at t
func ObjectKey(name string, t time.Time) string {
	return KeyPrefix + normalize.Slug(normalize.BaseName(name)) + "-" + strconv.FormatInt(t.UnixMilli(), 10) + ".json"
}

// Upload converts the sheet, stores the JSON and records it
func (s *Svc) Upload(ctx context.Context, in domain.UploadInput, f domain.File, uploadedBy string) (domain.AsRun, error) {
	format, ok := sheetjson.FormatOf(f.Ext)
	if !ok {
		return domain.AsRun{}, domain.ErrUnsupportedFormat()
	}
	rows, err := sheetjson.Parse(format, f.Body)
	if err != nil {
		return domain.AsRun{}, err
	}
	body, err := sheetjson.Encode(rows)
	if err != nil {
		return domain.AsRun{}, perr.Wrap(err, perr.ErrorCodeJSON, "Failed to encode as-run rows")
	}

	now := s.now().UTC()
	key := ObjectKey(f.Name, now)
	meta := map[string]string{"originalName": f.Name, "uploadedAt": now.Format(time.RFC3339)}
	url, err := s.objects.Put(ctx, key, body, "application/json", meta)
	if err != nil {
		return domain.AsRun{}, domain.ErrStorage(err)
	}

	a, err := s.Repo.Insert(ctx, domain.AsRun{
		UploadedBy:  uploadedBy,
		ChannelName: in.ChannelName,
		Date:        in.Date,
		FileURL:     url,
		ObjectKey:   key,
	})
	if err != nil {
		if derr := s.objects.Delete(ctx, key); derr != nil {
			logger.C(ctx).Warn().Err(derr).Str("key", key).Msg("asrun: orphaned object after failed insert")
		}
		return domain.AsRun{}, perr.FromPostgres(err, "Failed to save as-run file")
	}
	logger.C(ctx).Info().Int64("asrun_id", a.ID).Str("key", key).Int("rows", len(rows)).Msg("asrun uploaded")
	return a, nil
}

// List pages through uploads, newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.AsRunList, error) {
	pg := in.Paging.Norm()
	rows, total, err := s.Repo.List(ctx, in.ChannelName, pg.Limit, pg.Offset())
	if err != nil {
		return domain.AsRunList{}, perr.FromPostgres(err, "Failed to fetch as-run files")
	}
	return domain.AsRunList{AsRuns: rows, Total: total}, nil
}

// Delete removes each existing record after a best effort object delete
func (s *Svc) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	deleted := make([]int64, 0, len(ids))
	for _, id := range ids {
		a, err := s.Repo.ByID(ctx, id)
		if err != nil {
			if repokit.IsNoRows(err) {
				continue
			}
			return deleted, perr.FromPostgres(err, "Failed to delete as-run files")
		}
		if a.ObjectKey != "" {
			if err := s.objects.Delete(ctx, a.ObjectKey); err != nil {
				logger.C(ctx).Warn().Err(err).Int64("asrun_id", id).Str("key", a.ObjectKey).Msg("asrun: object delete failed")
			}
		}
		if err := s.Repo.Delete(ctx, id); err != nil {
			if repokit.IsNoRows(err) {
				continue
			}
			return deleted, perr.FromPostgres(err, "Failed to delete as-run files")
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}
