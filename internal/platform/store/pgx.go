package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxPool is the pool surface the store needs; *pgxpool.Pool satisfies it
type pgxPool interface {
	pgxQuerier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// pgConn adapts a pool or a tx to RowQuerier and reports every statement to the tracer
type pgConn struct {
	q     pgxQuerier
	trace *queryTracer
}

func (c pgConn) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := c.q.Exec(ctx, sql, args...)
	c.trace.observe(sql, args, start, err)
	return pgTag{ct}, err
}

// Query reports on open; time spent scanning is not included
func (c pgConn) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := c.q.Query(ctx, sql, args...)
	c.trace.observe(sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (c pgConn) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := c.q.QueryRow(ctx, sql, args...)
	return pgRow{r: r, done: func(err error) { c.trace.observe(sql, args, start, err) }}
}

// pgStore owns the pool and is the TxRunner handed to repos
type pgStore struct {
	pgConn
	pool pgxPool
}

func newPGStore(pool pgxPool, trace *queryTracer) *pgStore {
	return &pgStore{pgConn: pgConn{q: pool, trace: trace}, pool: pool}
}

func (s *pgStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}

// Tx commits when fn returns nil and rolls back otherwise
func (s *pgStore) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(pgConn{q: tx, trace: s.trace}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type pgRow struct {
	r    pgx.Row
	done func(error)
}

func (x pgRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.done != nil {
		x.done(err)
	}
	return err
}

type pgRows struct{ r pgx.Rows }

func (x pgRows) Next() bool            { return x.r.Next() }
func (x pgRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x pgRows) Err() error            { return x.r.Err() }
func (x pgRows) Close()                { x.r.Close() }

func (x pgRows) Columns() []string {
	fds := x.r.FieldDescriptions()
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}

type pgTag struct{ t pgconn.CommandTag }

func (t pgTag) String() string      { return t.t.String() }
func (t pgTag) RowsAffected() int64 { return t.t.RowsAffected() }
