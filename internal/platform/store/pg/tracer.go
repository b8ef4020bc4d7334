package pg

import (
	"context"
	"strings"

	"airwatch/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives one event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer returns a tracer that prints SQL regardless of the root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	switch {
	case ev.Err != nil:
		evt = z.log.Error()
	case ev.Slow:
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// compact folds runs of whitespace into single spaces
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
