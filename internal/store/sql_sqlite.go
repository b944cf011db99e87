package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/book-collections/internal/logger"
)

// sqliteDriverName is the go-sqlite3 driver with the store's SQL functions
// registered on every connection.
const sqliteDriverName = "sqlite3_books"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("contains_fold", containsFold, true)
		},
	})
}

// containsFold reports whether sub occurs in s under Unicode case folding.
// SQLite's LOWER only folds ASCII.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// NewConnectSQLite opens a SQLite database. A plain path is created on first
// use; file: URIs and :memory: are passed to the driver unchanged.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := ensureFile(dsn); err != nil {
			log.Err(err).Str("path", dsn).Msg("error creating database file")
			return nil, err
		}
	}

	// one connection serializes writers and keeps :memory: databases shared
	return openDB(ctx, sqliteDriverName, dsn, poolSettings{maxOpen: 1}, sqliteDialect, NewSQLiteErrorClassifier(), log)
}

func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("error creating database file: %w", err)
	}
	return f.Close()
}
