package repokit

import (
	"context"
	"fmt"
	"time"
)

// BeginHook runs first inside every transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks wraps inner so each Tx runs hooks, in order, before fn
// Statements outside Tx go straight to inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// ReadOnly marks the transaction read only so corpus reads can never write
func ReadOnly(ctx context.Context, q Queryer) error {
	_, err := q.Exec(ctx, "SET TRANSACTION READ ONLY")
	return err
}

// StatementTimeout caps every statement in the transaction at d
// SET LOCAL takes no bind parameters so the value is formatted in
func StatementTimeout(d time.Duration) BeginHook {
	ms := d.Milliseconds()
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms))
		return err
	}
}
