package dbcontext

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/satishbabariya/dbprovider/internal/debug"
	"github.com/satishbabariya/dbprovider/migrate"
	"github.com/satishbabariya/dbprovider/migrate/executor"
	"github.com/satishbabariya/dbprovider/migrate/history"
	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

var errNoAssembly = errors.New("no migrations assembly configured")

// Status describes one registered migration.
type Status struct {
	ID        string
	Applied   bool
	AppliedAt string
}

func (c *Context) migrations() ([]migrate.Migration, error) {
	if c.options.MigrationsAssembly == "" {
		return nil, errNoAssembly
	}
	return c.registry.Lookup(c.options.MigrationsAssembly)
}

// prepare connects and makes sure the history table exists.
func (c *Context) prepare(ctx context.Context) (*sqlx.DB, *executor.Executor, error) {
	db, err := c.DB(ctx)
	if err != nil {
		return nil, nil, err
	}

	exec := executor.NewExecutor(db, c.options.Retry)
	cmds, err := c.generator.Generate([]sqlgen.Operation{c.tracker.EnsureTableOperation()})
	if err != nil {
		return nil, nil, err
	}
	if err := exec.Execute(ctx, cmds); err != nil {
		return nil, nil, fmt.Errorf("failed to create history table %s: %w", c.tracker.TableName(), err)
	}
	return db, exec, nil
}

// Status lists every registered migration with its applied state.
func (c *Context) Status(ctx context.Context) ([]Status, error) {
	all, err := c.migrations()
	if err != nil {
		return nil, err
	}
	db, _, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}
	applied, err := c.tracker.Applied(ctx, db)
	if err != nil {
		return nil, err
	}

	at := make(map[string]string, len(applied))
	for _, r := range applied {
		at[r.MigrationID] = r.AppliedAt
	}

	out := make([]Status, 0, len(all))
	for _, m := range all {
		appliedAt, ok := at[m.ID]
		out = append(out, Status{ID: m.ID, Applied: ok, AppliedAt: appliedAt})
	}
	return out, nil
}

// Pending returns the IDs of registered migrations that are not applied.
func (c *Context) Pending(ctx context.Context) ([]string, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, s := range status {
		if !s.Applied {
			pending = append(pending, s.ID)
		}
	}
	return pending, nil
}

// Migrate applies pending migrations in order and returns their IDs.
func (c *Context) Migrate(ctx context.Context) ([]string, error) {
	all, err := c.migrations()
	if err != nil {
		return nil, err
	}
	db, exec, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.tracker.Applied(ctx, db)
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(records))
	for _, r := range records {
		done[r.MigrationID] = true
	}

	var applied []string
	for _, m := range all {
		if done[m.ID] {
			continue
		}

		cmds, err := c.generator.Generate(m.Up)
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.ID, err)
		}

		checksum := history.Checksum(cmds)
		err = exec.ExecuteWith(ctx, cmds, func(ctx context.Context, tx *sqlx.Tx) error {
			return c.tracker.Record(ctx, tx, m.ID, checksum)
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.ID, err)
		}

		debug.Info("applied migration", "id", m.ID, "assembly", c.options.MigrationsAssembly)
		applied = append(applied, m.ID)
	}
	return applied, nil
}

// Rollback reverts the last steps applied migrations, newest first, and
// returns their IDs.
func (c *Context) Rollback(ctx context.Context, steps int) ([]string, error) {
	all, err := c.migrations()
	if err != nil {
		return nil, err
	}
	db, exec, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.tracker.Applied(ctx, db)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]migrate.Migration, len(all))
	for _, m := range all {
		byID[m.ID] = m
	}

	var reverted []string
	for i := len(records) - 1; i >= 0 && len(reverted) < steps; i-- {
		id := records[i].MigrationID
		m, ok := byID[id]
		if !ok {
			return reverted, fmt.Errorf("applied migration %s is not registered in %s", id, c.options.MigrationsAssembly)
		}
		if len(m.Down) == 0 {
			return reverted, fmt.Errorf("migration %s has no down operations", id)
		}

		cmds, err := c.generator.Generate(m.Down)
		if err != nil {
			return reverted, fmt.Errorf("migration %s: %w", id, err)
		}
		err = exec.ExecuteWith(ctx, cmds, func(ctx context.Context, tx *sqlx.Tx) error {
			return c.tracker.Remove(ctx, tx, id)
		})
		if err != nil {
			return reverted, fmt.Errorf("migration %s: %w", id, err)
		}

		debug.Info("reverted migration", "id", id, "assembly", c.options.MigrationsAssembly)
		reverted = append(reverted, id)
	}
	return reverted, nil
}
