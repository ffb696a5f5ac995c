package persistence

import (
	"context"
	"database/sql"
)

// querier is the subset of *sql.DB and *sql.Tx used by the repositories
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// connector yields the handle a repository should run a statement against
type connector func(ctx context.Context) (querier, error)

func txConnector(tx *sql.Tx) connector {
	return func(context.Context) (querier, error) {
		return tx, nil
	}
}
