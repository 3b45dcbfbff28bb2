// Package executor applies generated migration commands to a database.
package executor

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/satishbabariya/dbprovider/internal/debug"
	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
	"github.com/satishbabariya/dbprovider/runtime"
)

// Finisher runs extra work, such as recording migration history, in the
// transaction of the last batch.
type Finisher func(ctx context.Context, tx *sqlx.Tx) error

// Batch is a group of commands executed together. A transactional batch runs
// inside one transaction; a suppressed batch holds a single command that runs
// outside any transaction.
type Batch struct {
	Commands   []sqlgen.Command
	Suppressed bool
}

// Batches groups consecutive transactional commands. Every command with
// TransactionSuppressed set gets a batch of its own.
func Batches(cmds []sqlgen.Command) []Batch {
	var batches []Batch
	for _, cmd := range cmds {
		if cmd.TransactionSuppressed {
			batches = append(batches, Batch{Commands: []sqlgen.Command{cmd}, Suppressed: true})
			continue
		}
		if n := len(batches); n > 0 && !batches[n-1].Suppressed {
			batches[n-1].Commands = append(batches[n-1].Commands, cmd)
			continue
		}
		batches = append(batches, Batch{Commands: []sqlgen.Command{cmd}})
	}
	return batches
}

// Executor executes migration commands.
type Executor struct {
	db    *sqlx.DB
	retry runtime.RetryPolicy
}

// NewExecutor creates a new executor. Each batch is retried according to retry.
func NewExecutor(db *sqlx.DB, retry runtime.RetryPolicy) *Executor {
	return &Executor{db: db, retry: retry}
}

// Execute runs cmds in order.
func (e *Executor) Execute(ctx context.Context, cmds []sqlgen.Command) error {
	return e.ExecuteWith(ctx, cmds, nil)
}

// ExecuteWith runs cmds in order and then finish. finish shares the
// transaction of the final batch when that batch is transactional, and gets
// its own transaction otherwise.
func (e *Executor) ExecuteWith(ctx context.Context, cmds []sqlgen.Command, finish Finisher) error {
	batches := Batches(cmds)

	for i, batch := range batches {
		var fin Finisher
		if i == len(batches)-1 && !batch.Suppressed {
			fin = finish
			finish = nil
		}

		err := runtime.Retry(ctx, e.retry, func(ctx context.Context) error {
			if batch.Suppressed {
				return e.execSuppressed(ctx, batch.Commands[0])
			}
			return e.execTx(ctx, batch.Commands, fin)
		})
		if err != nil {
			return err
		}
	}

	if finish != nil {
		return runtime.Retry(ctx, e.retry, func(ctx context.Context) error {
			return e.execTx(ctx, nil, finish)
		})
	}
	return nil
}

func (e *Executor) execSuppressed(ctx context.Context, cmd sqlgen.Command) error {
	debug.Debug("executing command outside transaction", "sql", cmd.SQL)
	if _, err := e.db.ExecContext(ctx, cmd.SQL); err != nil {
		return fmt.Errorf("failed to execute %q: %w", cmd.SQL, err)
	}
	return nil
}

func (e *Executor) execTx(ctx context.Context, cmds []sqlgen.Command, finish Finisher) (err error) {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, cmd := range cmds {
		debug.Debug("executing command", "sql", cmd.SQL)
		if _, err = tx.ExecContext(ctx, cmd.SQL); err != nil {
			return fmt.Errorf("failed to execute %q: %w", cmd.SQL, err)
		}
	}

	if finish != nil {
		if err = finish(ctx, tx); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
