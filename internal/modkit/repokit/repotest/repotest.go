// Package repotest holds a TxRunner for service tests whose repos are fakes
package repotest

import (
	"context"
	"errors"
	"sync"

	"airwatch/internal/modkit/repokit"
)

// ErrNoSQL is returned by every direct query; service tests bind fake repos instead
var ErrNoSQL = errors.New("repotest: sql not available")

// DB runs transactions by calling fn with itself and records how they ended
type DB struct {
	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

// Exec implements repokit.Queryer
func (d *DB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, ErrNoSQL
}

// Query implements repokit.Queryer
func (d *DB) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, ErrNoSQL }

// QueryRow implements repokit.Queryer
func (d *DB) QueryRow(context.Context, string, ...any) repokit.Row { return errRow{} }

// Tx implements repokit.TxRunner
func (d *DB) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	err := fn(d)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.Rollbacks++
	} else {
		d.Commits++
	}
	return err
}

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }

// Binder always hands out r regardless of the queryer
func Binder[T any](r T) repokit.Binder[T] {
	return repokit.BindFunc[T](func(repokit.Queryer) T { return r })
}
