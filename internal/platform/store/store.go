// Package store opens the corpus database and hands repos a narrow sql surface
// over pgx; nothing outside this package sees a pgx type
package store

import (
	"context"

	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/logger"
)

// Store holds the opened backends; the zero value has none and closes cleanly
type Store struct {
	Log logger.Logger

	// PG is nil unless Config.PG.Enabled
	PG TxRunner
}

type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is everything a repo may run; a transaction hands out the same surface
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner commits when fn returns nil and rolls back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Open applies opts then connects every enabled backend, retrying until reachable
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	// a zero zerolog.Logger has no writer; With gives it one that discards
	s.Log = s.Log.With().Logger()

	if !cfg.PG.Enabled {
		return s, nil
	}
	pg, err := openPG(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.PG = pg
	return s, nil
}

// Ping checks every opened backend; a store with none is trivially healthy
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return perr.Unavailablef("store: not opened")
	}
	p, ok := s.PG.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "pg")
	}
	return nil
}

// Close releases the backends; safe on nil and on a store with none
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
