// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"
	"errors"

	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction using the provided TxRunner
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// IsNoRows reports whether err means the query matched nothing
func IsNoRows(err error) bool {
	return errors.Is(err, perr.ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

// NotFound swaps a no-rows error for the domain error built by nf; other errors pass through
func NotFound(err error, nf func() error) error {
	if IsNoRows(err) {
		return nf()
	}
	return err
}
