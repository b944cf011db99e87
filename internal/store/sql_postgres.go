package store

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/book-collections/internal/logger"
)

// NewConnectPostgres opens a pgx-backed pool for a postgres:// DSN.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	return openDB(ctx, "pgx", dsn, poolSettings{maxOpen: 10, maxIdle: 4}, postgresDialect, NewPostgresErrorClassifier(), log)
}
