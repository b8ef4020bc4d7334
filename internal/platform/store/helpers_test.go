package store

import (
	"context"
	"errors"
	"testing"

	perr "airwatch/internal/platform/errors"
)

type fakeTag int64

func (f fakeTag) String() string      { return "UPDATE" }
func (f fakeTag) RowsAffected() int64 { return int64(f) }

type fakeRows struct {
	vals    []int64
	i       int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.vals) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	*(dest[0].(*int64)) = r.vals[r.i-1]
	return nil
}
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return []string{"id"} }

type fakeRow struct {
	v   int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.v
	return nil
}

type fakeQ struct {
	tag      fakeTag
	execErr  error
	rows     *fakeRows
	queryErr error
	row      fakeRow
}

func (f *fakeQ) Exec(context.Context, string, ...any) (CommandTag, error) {
	return f.tag, f.execErr
}

func (f *fakeQ) Query(context.Context, string, ...any) (Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeQ) QueryRow(context.Context, string, ...any) Row { return f.row }

func scanID(r Row) (int64, error) {
	var id int64
	err := r.Scan(&id)
	return id, err
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	cases := []struct {
		name string
		q    *fakeQ
		want func(error) bool
	}{
		{"one", &fakeQ{tag: 1}, func(err error) bool { return err == nil }},
		{"zero", &fakeQ{tag: 0}, func(err error) bool { return errors.Is(err, perr.ErrNotFound) }},
		{"many", &fakeQ{tag: 3}, func(err error) bool { return err != nil && !errors.Is(err, perr.ErrNotFound) }},
		{"exec error", &fakeQ{execErr: boom}, func(err error) bool { return errors.Is(err, boom) }},
	}
	for _, tc := range cases {
		if err := ExecOne(ctx, tc.q, "UPDATE x"); !tc.want(err) {
			t.Fatalf("%s: ExecOne = %v", tc.name, err)
		}
	}

	n, err := Affected(ctx, &fakeQ{tag: 4}, "DELETE")
	if err != nil || n != 4 {
		t.Fatalf("Affected = %d, %v", n, err)
	}
}

func TestScalar(t *testing.T) {
	v, err := Scalar[int64](context.Background(), &fakeQ{row: fakeRow{v: 42}}, "SELECT 42")
	if err != nil || v != 42 {
		t.Fatalf("Scalar = %d, %v", v, err)
	}
	if _, err := Scalar[int64](context.Background(), &fakeQ{row: fakeRow{err: errors.New("scan")}}, "SELECT"); err == nil {
		t.Fatalf("expected scan error")
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	rs := &fakeRows{vals: []int64{7}}
	got, err := One(ctx, &fakeQ{rows: rs}, scanID, "SELECT")
	if err != nil || got != 7 || !rs.closed {
		t.Fatalf("One = %d, %v (closed=%v)", got, err, rs.closed)
	}

	if _, err := One(ctx, &fakeQ{rows: &fakeRows{}}, scanID, "SELECT"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("empty should be ErrNotFound, got %v", err)
	}
	if _, err := One(ctx, &fakeQ{rows: &fakeRows{vals: []int64{1, 2}}}, scanID, "SELECT"); err == nil {
		t.Fatalf("expected too many rows error")
	}
	iterErr := errors.New("iter")
	if _, err := One(ctx, &fakeQ{rows: &fakeRows{err: iterErr}}, scanID, "SELECT"); !errors.Is(err, iterErr) {
		t.Fatalf("expected rows.Err, got %v", err)
	}
}

func TestMany(t *testing.T) {
	ctx := context.Background()

	got, err := Many(ctx, &fakeQ{rows: &fakeRows{vals: []int64{1, 2, 3}}}, scanID, "SELECT")
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("Many = %v, %v", got, err)
	}

	got, err = Many(ctx, &fakeQ{rows: &fakeRows{}}, scanID, "SELECT")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty Many should be a non-nil empty slice, got %#v, %v", got, err)
	}

	if _, err := Many(ctx, &fakeQ{rows: &fakeRows{vals: []int64{1}, scanErr: errors.New("scan")}}, scanID, "SELECT"); err == nil {
		t.Fatalf("expected scan error")
	}
	if _, err := Many(ctx, &fakeQ{queryErr: errors.New("query")}, scanID, "SELECT"); err == nil {
		t.Fatalf("expected query error")
	}
}
