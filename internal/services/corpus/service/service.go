// Package service provides the corpus source implementation
package service

import (
	"context"
	"strings"
	"time"

	"phishguard/internal/core/corpus"
	"phishguard/internal/modkit/repokit"
	perr "phishguard/internal/platform/errors"
	"phishguard/internal/services/corpus/domain"
	"phishguard/internal/services/corpus/repo"
)

// Config for the corpus service
type Config struct {
	Source domain.Source

	// QueryTimeout caps each read statement; zero leaves the server default
	QueryTimeout time.Duration
}

// Service implements domain.LoaderPort and domain.ImporterPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config
}

// New constructs a new corpus service
// blank source fields fall back to DefaultSource
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	def := domain.DefaultSource()
	src := cfg.Source
	if strings.TrimSpace(src.Table) == "" {
		src.Table = def.Table
	}
	if strings.TrimSpace(src.TextColumn) == "" {
		src.TextColumn = def.TextColumn
	}
	if strings.TrimSpace(src.LabelColumn) == "" {
		src.LabelColumn = def.LabelColumn
	}
	cfg.Source = src
	return &Service{DB: db, Binder: b, Cfg: cfg}
}

// Load implements domain.LoaderPort
// It reads inside one read only transaction so the rows form a single snapshot
// Blank rows are dropped the same way the csv loader drops them
func (s *Service) Load(ctx context.Context) (*corpus.Dataset, error) {
	if s.DB == nil {
		return nil, perr.Unavailablef("corpus: no database configured")
	}
	var rows []domain.Row
	err := repokit.WithTx(ctx, s.reader(), func(q repokit.Queryer) error {
		var err error
		rows, err = s.Binder.Bind(q).List(ctx, s.Cfg.Source)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.InsufficientDataf("corpus: table %s is empty", s.Cfg.Source.Table)
	}

	ds := &corpus.Dataset{}
	for _, r := range rows {
		ds.Add(r.Text, r.Label)
	}
	return ds, nil
}

// reader wraps DB so every read tx is read only and optionally time boxed
func (s *Service) reader() repokit.TxRunner {
	hooks := []repokit.BeginHook{repokit.ReadOnly}
	if s.Cfg.QueryTimeout > 0 {
		hooks = append(hooks, repokit.StatementTimeout(s.Cfg.QueryTimeout))
	}
	return repokit.WithBeginHooks(s.DB, hooks...)
}

// Count reports how many rows the source table holds, blank ones included
func (s *Service) Count(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, perr.Unavailablef("corpus: no database configured")
	}
	var n int64
	err := repokit.WithTx(ctx, s.reader(), func(q repokit.Queryer) error {
		var err error
		n, err = s.Binder.Bind(q).Count(ctx, s.Cfg.Source)
		return err
	})
	return n, err
}

// Import implements domain.ImporterPort
// The table is created when missing and all rows land in one transaction
func (s *Service) Import(ctx context.Context, ds *corpus.Dataset) (int, error) {
	if s.DB == nil {
		return 0, perr.Unavailablef("corpus: no database configured")
	}
	if ds == nil || ds.Len() == 0 {
		return 0, perr.InvalidArgf("corpus: nothing to import")
	}
	err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		if err := st.Ensure(ctx, s.Cfg.Source); err != nil {
			return err
		}
		for _, ex := range ds.Examples() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := st.Insert(ctx, s.Cfg.Source, domain.Row{Text: ex.Text, Label: ex.Label}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ds.Len(), nil
}
