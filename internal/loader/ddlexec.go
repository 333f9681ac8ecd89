package loader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julmon/pgmtr/internal/catalog"
	"github.com/julmon/pgmtr/internal/pgsession"
)

// ExecStmts round-robins stmts into nJobs buckets and runs each
// bucket through its own session and its own goroutine. useTransaction
// wraps every statement in its own transaction (needed for PK/FK/index
// DDL); VACUUM must run with useTransaction=false since Postgres
// refuses VACUUM inside a transaction block.
func ExecStmts(ctx context.Context, dsn string, nJobs int, stmts []catalog.Stmt, useTransaction bool) error {
	if nJobs < 1 {
		nJobs = 1
	}
	buckets := make([][]catalog.Stmt, nJobs)
	for i, s := range stmts {
		buckets[i%nJobs] = append(buckets[i%nJobs], s)
	}

	// Each bucket gets its own session and its own goroutine; the
	// number of buckets is already bounded by nJobs, so no further
	// gate is needed here — nothing is shared between them.
	g, gctx := errgroup.WithContext(ctx)
	for _, bucket := range buckets {
		bucket := bucket
		if len(bucket) == 0 {
			continue
		}
		g.Go(func() error {
			sess, err := pgsession.Connect(gctx, dsn, 1)
			if err != nil {
				return err
			}
			defer sess.Close()

			for _, stmt := range bucket {
				if useTransaction {
					tx, err := sess.Begin(gctx)
					if err != nil {
						return err
					}
					if _, err := tx.Exec(gctx, stmt.SQL); err != nil {
						_ = tx.Rollback(gctx)
						return fmt.Errorf("loader: executing %q: %w", stmt.SQL, err)
					}
					if err := tx.Commit(gctx); err != nil {
						return err
					}
				} else {
					if err := sess.Exec(gctx, stmt.SQL); err != nil {
						return fmt.Errorf("loader: executing %q: %w", stmt.SQL, err)
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// InitArgs configures the init pipeline.
type InitArgs struct {
	DSN         string
	ScaleFactor int
	NJobs       int
	NoFKey      bool
}

// Init runs the full schema bring-up: create tables, pre-load item,
// load warehouse-scoped data across NJobs workers, add primary keys,
// add foreign keys (unless NoFKey), add indexes, vacuum, checkpoint.
//
// The index step calls catalog.IndexDDLs, never catalog.FKeyDDLs — a
// mistake the original driver made. ddlexec_test.go checks that the two
// lists share no statement; it does not run Init itself.
func Init(ctx context.Context, args InitArgs) error {
	sess, err := pgsession.Connect(ctx, args.DSN, 1)
	if err != nil {
		return err
	}
	defer sess.Close()

	for _, ddl := range catalog.TableDDLs() {
		if err := sess.BatchExecute(ctx, ddl.SQL); err != nil {
			return fmt.Errorf("loader: creating schema: %w", err)
		}
	}

	if err := PreLoadData(ctx, sess); err != nil {
		return fmt.Errorf("loader: pre-loading item table: %w", err)
	}

	warehouseIDs := make([]int, args.ScaleFactor)
	for i := range warehouseIDs {
		warehouseIDs[i] = i + 1
	}
	if err := LoadDataParallel(ctx, args.DSN, args.NJobs, warehouseIDs); err != nil {
		return fmt.Errorf("loader: loading data: %w", err)
	}

	if err := ExecStmts(ctx, args.DSN, args.NJobs, catalog.PKeyDDLs(), true); err != nil {
		return fmt.Errorf("loader: adding primary keys: %w", err)
	}
	if !args.NoFKey {
		if err := ExecStmts(ctx, args.DSN, args.NJobs, catalog.FKeyDDLs(), true); err != nil {
			return fmt.Errorf("loader: adding foreign keys: %w", err)
		}
	}
	if err := ExecStmts(ctx, args.DSN, args.NJobs, catalog.IndexDDLs(), true); err != nil {
		return fmt.Errorf("loader: adding indexes: %w", err)
	}
	if err := ExecStmts(ctx, args.DSN, args.NJobs, catalog.VacuumStmts(), false); err != nil {
		return fmt.Errorf("loader: vacuuming: %w", err)
	}
	if err := sess.Exec(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("loader: checkpoint: %w", err)
	}
	return nil
}
