package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier lo que los repositorios de lectura necesitan de *pgxpool.Pool o pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
