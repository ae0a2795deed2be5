package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	perr "phishguard/internal/platform/errors"
)

var newPool = pgxpool.NewWithConfig

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG builds the pool then pings with backoff until postgres answers
// pgxpool dials lazily, so the ping loop is what waits out a starting container
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.PG.URL)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "pg: parse url")
	}
	if cfg.PG.MaxConns > 0 {
		pcfg.MaxConns = cfg.PG.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "pg: new pool")
	}

	attempts := cfg.PG.retries()
	timeout := cfg.PG.pingTimeout()
	backoff := backoffStart

	var lastErr error
	for i := range attempts {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = pool.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			return newPGStore(pool, newQueryTracer(s.Log, cfg.PG)), nil
		}
		s.Log.Debug().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	pool.Close()
	return nil, perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "pg: no answer after %d pings", attempts)
}
