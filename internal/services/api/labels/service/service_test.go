package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"strconv"
	"testing"
	"time"

	"airwatch/internal/core/labeltree"
	"airwatch/internal/modkit/repokit/repotest"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	eventsdomain "airwatch/internal/services/api/events/domain"
	"airwatch/internal/services/api/labels/domain"
	"airwatch/internal/services/api/labels/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var logs bytes.Buffer

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &logs})
	os.Exit(m.Run())
}

// memRepo keeps the label hierarchy in maps and enforces the subtype to category reference
type memRepo struct {
	events  map[int64]labeltree.EventRef
	labels  map[int64]repo.RowLabel
	parents map[int64]labeltree.Tree
	leaves  map[int64]labeltree.Payload
	links   map[int64][]int64
	next    int64
	boom    error
}

func newMem(evs ...labeltree.EventRef) *memRepo {
	m := &memRepo{
		events:  map[int64]labeltree.EventRef{},
		labels:  map[int64]repo.RowLabel{},
		parents: map[int64]labeltree.Tree{},
		leaves:  map[int64]labeltree.Payload{},
		links:   map[int64][]int64{},
	}
	for _, e := range evs {
		m.events[e.ID] = e
	}
	return m
}

func (m *memRepo) Events(_ context.Context, ids []int64) ([]labeltree.EventRef, error) {
	var out []labeltree.EventRef
	for _, id := range ids {
		if e, ok := m.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) DeviceSeen(_ context.Context, dev string) (bool, error) {
	for _, e := range m.events {
		if e.DeviceID == dev {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) InsertLabel(_ context.Context, l repo.RowLabel) (int64, time.Time, error) {
	if m.boom != nil {
		return 0, time.Time{}, m.boom
	}
	m.next++
	l.ID = m.next
	m.labels[l.ID] = l
	return l.ID, time.Unix(1717200000, 0).UTC(), nil
}

func (m *memRepo) UpdateLabel(_ context.Context, l repo.RowLabel) error {
	prev, ok := m.labels[l.ID]
	if !ok {
		return perr.ErrNotFound
	}
	l.CreatedBy = prev.CreatedBy
	m.labels[l.ID] = l
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.labels[id]; !ok {
		return perr.ErrNotFound
	}
	m.drop(id)
	return nil
}

func (m *memRepo) DeleteMany(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.labels[id]; ok {
			m.drop(id)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) drop(id int64) {
	delete(m.labels, id)
	delete(m.parents, id)
	delete(m.leaves, id)
	delete(m.links, id)
}

func (m *memRepo) SaveParent(_ context.Context, id int64, t labeltree.Tree) error {
	m.parents[id] = t
	return nil
}

func (m *memRepo) DeleteParent(_ context.Context, id int64, c labeltree.Category) error {
	if p, ok := m.parents[id]; ok && p.Category == c {
		delete(m.parents, id)
		delete(m.leaves, id)
	}
	return nil
}

func (m *memRepo) SaveLeaf(_ context.Context, id int64, p labeltree.Payload) error {
	cat, _ := labeltree.ClassifyParent(p.Subtype())
	if parent, ok := m.parents[id]; !ok || parent.Category != cat {
		return errors.New("insert or update violates foreign key constraint")
	}
	m.leaves[id] = p
	return nil
}

func (m *memRepo) DeleteLeaf(_ context.Context, id int64, s labeltree.Subtype) error {
	if p, ok := m.leaves[id]; ok && p.Subtype() == s {
		delete(m.leaves, id)
	}
	return nil
}

func (m *memRepo) LinkEvents(_ context.Context, id int64, ids []int64) error {
	m.links[id] = append([]int64(nil), ids...)
	return nil
}

func (m *memRepo) Load(_ context.Context, ids []int64) ([]labeltree.Label, error) {
	if m.boom != nil {
		return nil, m.boom
	}
	var out []labeltree.Label
	for _, id := range ids {
		row, ok := m.labels[id]
		if !ok {
			continue
		}
		l := labeltree.Label{
			ID:        id,
			Category:  row.Category,
			Subtype:   row.Subtype,
			CreatedBy: row.CreatedBy,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Notes:     row.Notes,
		}
		for _, eid := range m.links[id] {
			l.Events = append(l.Events, m.events[eid])
		}
		if p, ok := m.leaves[id]; ok {
			l.Payloads.Set(p)
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memRepo) List(_ context.Context, f repo.Filter) ([]int64, int64, error) {
	var ids []int64
	for id, l := range m.labels {
		if f.Subtype != "" && l.Subtype != f.Subtype {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, int64(len(ids)), nil
}

func (m *memRepo) Guide(_ context.Context, dev string, _, _ int64) ([]int64, error) {
	var ids []int64
	for id := range m.labels {
		for _, eid := range m.links[id] {
			if m.events[eid].DeviceID == dev {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return m.labels[ids[i]].StartTime < m.labels[ids[j]].StartTime })
	return ids, nil
}

type fakeEvents struct{ called bool }

func (f *fakeEvents) Unlabeled(context.Context, eventsdomain.ListInput) (eventsdomain.EventList, error) {
	f.called = true
	return eventsdomain.EventList{Events: []eventsdomain.Event{{ID: 7}}, Total: 1}, nil
}

func fixture() *memRepo {
	return newMem(
		labeltree.EventRef{ID: 100002, DeviceID: "dev-1", Timestamp: 2000, ImagePath: ptr("b.jpg")},
		labeltree.EventRef{ID: 100001, DeviceID: "dev-1", Timestamp: 1000},
		labeltree.EventRef{ID: 100003, DeviceID: "dev-1", Timestamp: 3000},
		labeltree.EventRef{ID: 200001, DeviceID: "dev-2", Timestamp: 1500},
	)
}

func newSvc(m *memRepo) *Svc {
	return New(&repotest.DB{}, repotest.Binder[repo.Repo](m), &fakeEvents{})
}

func movieInput(ids ...domain.EventID) domain.CreateInput {
	in := domain.CreateInput{EventIDs: ids, LabelType: "movie", Notes: ptr("first cut")}
	in.Movie = &labeltree.MoviePayload{MovieName: ptr("Test"), Rating: ptr(5), Language: ptr("ne")}
	return in
}

func TestCreateWritesHierarchy(t *testing.T) {
	m := fixture()
	s := newSvc(m)

	v, err := s.Create(context.Background(), movieInput(100002, 100001, 100002), "Jane")
	require.NoError(t, err)

	assert.Equal(t, labeltree.Movie, v.LabelType)
	assert.Equal(t, []string{"100001", "100002"}, v.EventIDs)
	assert.Equal(t, int64(1000), v.StartTime)
	assert.Equal(t, int64(2000), v.EndTime)
	assert.Equal(t, []*string{nil, ptr("b.jpg")}, v.ImagePaths)
	assert.Equal(t, "Jane", v.CreatedBy)
	require.NotNil(t, v.Movie)
	assert.Nil(t, v.Song)

	parent := m.parents[v.ID]
	assert.Equal(t, labeltree.Content, parent.Category)
	assert.Equal(t, []any{"movie", ptr("ne")}, parent.Parent.Values)
	assert.Equal(t, labeltree.Movie, m.leaves[v.ID].Subtype())
	assert.Equal(t, labeltree.Movie, m.labels[v.ID].Subtype)
	assert.Len(t, m.links[v.ID], 2)
}

func TestCreateNamesMissingEvents(t *testing.T) {
	m := fixture()
	_, err := newSvc(m).Create(context.Background(), movieInput(100001, 999998, 999999), "Jane")

	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
	assert.Contains(t, perr.WireFrom(err).Message, "999998, 999999")
	assert.Empty(t, m.labels)
}

func TestCreateRejectsPayloadMismatch(t *testing.T) {
	m := fixture()
	in := movieInput(100001)
	in.Song = &labeltree.SongPayload{SongName: ptr("x")}

	_, err := newSvc(m).Create(context.Background(), in, "Jane")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeIntegrity))
	assert.Empty(t, m.labels)

	in = movieInput(100001)
	in.LabelType = "sitcom"
	_, err = newSvc(m).Create(context.Background(), in, "Jane")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}

func TestCreateWrapsStoreFailures(t *testing.T) {
	m := fixture()
	m.boom = errors.New("connection reset")

	_, err := newSvc(m).Create(context.Background(), movieInput(100001), "Jane")
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeUnknown, perr.CodeOf(err))
	assert.Equal(t, "Failed to create label", perr.WireFrom(err).Message)
}

func TestUpdateMovieToSong(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	created, err := s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	in := domain.UpdateInput{LabelType: "song"}
	in.Song = &labeltree.SongPayload{SongName: ptr("Resham"), Language: ptr("ne")}
	v, err := s.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, labeltree.Song, v.LabelType)
	assert.Nil(t, v.Movie)
	require.NotNil(t, v.Song)
	assert.Equal(t, labeltree.Song, m.leaves[created.ID].Subtype())
	assert.Equal(t, labeltree.Content, m.parents[created.ID].Category)
	assert.Equal(t, "song", m.parents[created.ID].Parent.Values[0])
	assert.Equal(t, labeltree.Song, m.labels[created.ID].Subtype)
	assert.Equal(t, ptr("first cut"), v.Notes)
}

func TestUpdateAcrossCategories(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	created, err := s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	in := domain.UpdateInput{LabelType: "ad", Notes: ptr("it was an ad")}
	in.Ad = &labeltree.AdPayload{Type: ptr("PSA"), Language: ptr("en")}
	v, err := s.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, labeltree.Ad, v.LabelType)
	assert.Equal(t, labeltree.Commercial, m.parents[created.ID].Category)
	assert.Equal(t, labeltree.Commercial, m.labels[created.ID].Category)
	assert.Equal(t, labeltree.Ad, m.leaves[created.ID].Subtype())
	assert.Equal(t, ptr("it was an ad"), v.Notes)
}

func TestUpdatePatchesSameSubtype(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	created, err := s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	in := domain.UpdateInput{EventIDs: []domain.EventID{100003, 100002}}
	in.Movie = &labeltree.MoviePayload{Language: ptr("hi")}
	v, err := s.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	require.NotNil(t, v.Movie)
	assert.Equal(t, "Test", *v.Movie.MovieName)
	assert.Equal(t, "hi", *v.Movie.Language)
	assert.Equal(t, ptr("hi"), m.parents[created.ID].Parent.Values[1])
	assert.Equal(t, int64(2000), v.StartTime)
	assert.Equal(t, int64(3000), v.EndTime)
	assert.Equal(t, []string{"100002", "100003"}, v.EventIDs)
}

func TestUpdateRejectsForeignPayload(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	created, err := s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	in := domain.UpdateInput{}
	in.Song = &labeltree.SongPayload{SongName: ptr("x")}
	_, err = s.Update(context.Background(), created.ID, in)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeIntegrity))
	assert.Equal(t, labeltree.Movie, m.leaves[created.ID].Subtype())
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	s := newSvc(fixture())

	_, err := s.Update(context.Background(), 42, domain.UpdateInput{})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
	assert.Equal(t, "Label not found", perr.WireFrom(err).Message)

	err = s.Delete(context.Background(), 42)
	assert.Equal(t, "Label not found", perr.WireFrom(err).Message)
}

func TestDeleteBulkCountsExisting(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	a, err := s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	n, err := s.DeleteBulk(context.Background(), []int64{a.ID, 77})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, m.parents)
	assert.Empty(t, m.leaves)
}

func TestProgramGuide(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	_, err := s.Create(context.Background(), movieInput(100003), "Jane")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	g, err := s.ProgramGuide(context.Background(), "1970-01-01", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01", g.Date)
	require.Len(t, g.Labels, 2)
	assert.Equal(t, int64(1000), g.Labels[0].StartTime)
	assert.Equal(t, "dev-1", g.Labels[0].DeviceID)

	_, err = s.ProgramGuide(context.Background(), "1970-01-01", "dev-9")
	assert.Equal(t, "Invalid device ID", perr.WireFrom(err).Message)

	_, err = s.ProgramGuide(context.Background(), "01/01/1970", "dev-1")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}

func TestProgramGuideRejectsMixedDevices(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	_, err := s.Create(context.Background(), movieInput(100001, 200001), "Jane")
	require.NoError(t, err)

	_, err = s.ProgramGuide(context.Background(), "1970-01-01", "dev-1")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeIntegrity))
	assert.Contains(t, perr.WireFrom(err).Message, "dev-1, dev-2")
}

// deviceless loads labels as if their events lost the device column
type deviceless struct{ *memRepo }

func (d deviceless) Load(ctx context.Context, ids []int64) ([]labeltree.Label, error) {
	ls, err := d.memRepo.Load(ctx, ids)
	for i := range ls {
		for j := range ls[i].Events {
			ls[i].Events[j].DeviceID = ""
		}
	}
	return ls, err
}

func TestProgramGuideWarnsOnDroppedAndMixedLabels(t *testing.T) {
	m := fixture()
	created, err := newSvc(m).Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	logs.Reset()
	s := New(&repotest.DB{}, repotest.Binder[repo.Repo](deviceless{m}), &fakeEvents{})
	g, err := s.ProgramGuide(context.Background(), "1970-01-01", "dev-1")
	require.NoError(t, err)
	assert.Empty(t, g.Labels)
	assert.Contains(t, logs.String(), "label has no device")
	assert.Contains(t, logs.String(), `"label_id":`+strconv.FormatInt(created.ID, 10))

	logs.Reset()
	mixed, err := newSvc(m).Create(context.Background(), movieInput(100002, 200001), "Jane")
	require.NoError(t, err)
	_, err = newSvc(m).ProgramGuide(context.Background(), "1970-01-01", "dev-1")
	require.Error(t, err)
	assert.Contains(t, logs.String(), "label spans several devices")
	assert.Contains(t, logs.String(), `"label_id":`+strconv.FormatInt(mixed.ID, 10))
}

func TestListFiltersBySubtype(t *testing.T) {
	m := fixture()
	s := newSvc(m)
	_, err := s.Create(context.Background(), movieInput(100001), "Jane")
	require.NoError(t, err)

	res, err := s.List(context.Background(), domain.ListInput{LabelType: "movie"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	_, err = s.List(context.Background(), domain.ListInput{LabelType: "sitcom"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}

func TestUnlabeledDelegates(t *testing.T) {
	ev := &fakeEvents{}
	s := New(&repotest.DB{}, repotest.Binder[repo.Repo](fixture()), ev)

	res, err := s.Unlabeled(context.Background(), eventsdomain.ListInput{})
	require.NoError(t, err)
	assert.True(t, ev.called)
	assert.Equal(t, int64(1), res.Total)
}
