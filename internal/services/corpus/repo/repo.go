// Package repo provides repository implementations for the corpus table
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"phishguard/internal/modkit/repokit"
	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/store"
	str "phishguard/internal/platform/strings"
	"phishguard/internal/services/corpus/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the corpus repository
type Storage interface {
	Count(ctx context.Context, src domain.Source) (int64, error)
	List(ctx context.Context, src domain.Source) ([]domain.Row, error)
	Ensure(ctx context.Context, src domain.Source) error
	Insert(ctx context.Context, src domain.Source, r domain.Row) error
}

type pg struct{ q repokit.Queryer }

// table renders schema.table as quoted identifiers
func table(src domain.Source) string {
	if src.Schema != "" {
		return pgx.Identifier{src.Schema, src.Table}.Sanitize()
	}
	return pgx.Identifier{src.Table}.Sanitize()
}

func column(name string) string { return pgx.Identifier{name}.Sanitize() }

// Count implements Storage
func (s *pg) Count(ctx context.Context, src domain.Source) (int64, error) {
	n, err := store.Scalar[int64](ctx, s.q, "SELECT count(*) FROM "+table(src))
	if err != nil {
		return 0, perr.FromPostgresf(err, "count %s", src.Table)
	}
	return n, nil
}

// List implements Storage
// rows come back in physical order; the split reorders them anyway
func (s *pg) List(ctx context.Context, src domain.Source) ([]domain.Row, error) {
	sql := fmt.Sprintf("SELECT %s::text, %s::text FROM %s",
		column(src.TextColumn), column(src.LabelColumn), table(src))

	rows, err := store.Many(ctx, s.q, func(r store.Row) (domain.Row, error) {
		var text, label *string
		if err := r.Scan(&text, &label); err != nil {
			return domain.Row{}, err
		}
		return domain.Row{Text: str.Deref(text), Label: str.Deref(label)}, nil
	}, sql)
	if err != nil {
		return nil, perr.FromPostgresf(err, "read corpus from %s", src.Table)
	}
	return rows, nil
}

// Ensure implements Storage
func (s *pg) Ensure(ctx context.Context, src domain.Source) error {
	sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		%s text NOT NULL,
		%s text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`, table(src), column(src.TextColumn), column(src.LabelColumn))
	if _, err := store.Exec(ctx, s.q, sql); err != nil {
		return perr.FromPostgresf(err, "create %s", src.Table)
	}
	return nil
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, src domain.Source, r domain.Row) error {
	sql := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		table(src), column(src.TextColumn), column(src.LabelColumn))
	if err := store.ExecOne(ctx, s.q, sql, r.Text, r.Label); err != nil {
		return perr.FromPostgresf(err, "insert into %s", src.Table)
	}
	return nil
}
