package store

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"phishguard/internal/platform/logger"
)

// queryTracer logs statements: every one when all is set, otherwise only those slower than slow
// A nil tracer is silent
type queryTracer struct {
	log  logger.Logger
	all  bool
	slow time.Duration
}

// newQueryTracer returns nil when there is nothing to report
func newQueryTracer(l logger.Logger, cfg PGConfig) *queryTracer {
	if !cfg.LogSQL && cfg.SlowQueryMs <= 0 {
		return nil
	}
	return &queryTracer{
		// pinned to debug so LOG_SQL works regardless of the process level
		log:  l.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		all:  cfg.LogSQL,
		slow: time.Duration(cfg.SlowQueryMs) * time.Millisecond,
	}
}

func (t *queryTracer) observe(sql string, args []any, start time.Time, err error) {
	if t == nil {
		return
	}
	took := time.Since(start)
	slow := t.slow > 0 && took >= t.slow
	if !t.all && !slow {
		return
	}
	evt := t.log.Info()
	if slow {
		evt = t.log.Warn()
	}
	evt.Dur("took", took).
		Bool("slow", slow).
		Str("sql", compactSQL(sql)).
		Interface("args", args).
		Err(err).
		Msg("pg query")
}

// compactSQL folds runs of whitespace so multi-line statements log on one line
func compactSQL(s string) string { return strings.Join(strings.Fields(s), " ") }
