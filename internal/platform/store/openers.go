package store

import (
	"context"
	"fmt"
	"time"

	"airwatch/internal/platform/store/pg"
)

// ping retry knobs, variables so tests can shorten them
var (
	pingAttempts   = 20
	pingTimeout    = 3 * time.Second
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG opens the pool, waits for it to answer and wraps it with the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer)
	if err != nil {
		return nil, err
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < pingAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", pingAttempts, lastErr)
}
