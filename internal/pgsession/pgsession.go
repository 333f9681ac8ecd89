// Package pgsession wraps a pgx connection pool: a thin struct holding
// a *pgxpool.Pool plus the helpers every other package needs (exec,
// query, transaction, COPY streaming), so nothing above this layer
// imports pgx directly.
package pgsession

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Session owns one pooled connection handle to a single database.
type Session struct {
	pool *pgxpool.Pool
}

// Connect dials dsn (a pgx-parseable connection string) and returns a
// ready Session. maxConns bounds the pool; a loader job or a
// benchmark client each get their own small pool (commonly maxConns=1
// or a handful) rather than sharing a single process-wide pool across
// goroutines with very different connection-hold profiles.
func Connect(ctx context.Context, dsn string, maxConns int32) (*Session, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgsession: parsing dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgsession: connecting: %w", err)
	}
	return &Session{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Session) Close() {
	s.pool.Close()
}

// Exec runs a single statement with no result rows expected.
func (s *Session) Exec(ctx context.Context, sql string, args ...interface{}) error {
	_, err := s.pool.Exec(ctx, sql, args...)
	return err
}

// BatchExecute runs sql (possibly several semicolon-separated
// statements) as a single round trip.
func (s *Session) BatchExecute(ctx context.Context, sql string) error {
	_, err := s.pool.Exec(ctx, sql)
	return err
}

// Begin starts a transaction on a pooled connection.
func (s *Session) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.pool.Begin(ctx)
}

// QueryRow proxies to the pool.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return s.pool.QueryRow(ctx, sql, args...)
}

// Query proxies to the pool.
func (s *Session) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return s.pool.Query(ctx, sql, args...)
}

// CopyFrom bulk-streams rows into table(columns) using the Postgres
// COPY protocol, the idiomatic Go replacement for the teacher's
// line-by-line `client.copy_in` writer loop.
func (s *Session) CopyFrom(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("pgsession: copy into %s: %w", table, err)
	}
	return n, nil
}
