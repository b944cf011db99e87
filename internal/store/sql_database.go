package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/migrations"
)

// dialect captures what differs between the supported SQL backends.
type dialect struct {
	// name is the goose dialect of the migrations.
	name string
	// placeholder is the bind variable style of the driver.
	placeholder sq.PlaceholderFormat
	// lockSuffix is appended to the row read of an update transaction.
	lockSuffix string
	// matchers renders filter criteria.
	matchers criterionRenderer
}

var (
	postgresDialect = dialect{
		name:        migrations.DialectPostgres,
		placeholder: sq.Dollar,
		lockSuffix:  "FOR UPDATE",
		matchers:    postgresCriteria{},
	}
	sqliteDialect = dialect{
		name:        migrations.DialectSQLite,
		placeholder: sq.Question,
		matchers:    sqliteCriteria{},
	}
)

// DB is a database connection bound to its dialect.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations of the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect.name)
}

// builder returns a squirrel statement builder using the dialect placeholders.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.placeholder)
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// poolSettings sizes the connection pool of a driver.
type poolSettings struct {
	maxOpen int
	maxIdle int
}

// openDB opens and pings a connection pool for driverName.
func openDB(ctx context.Context, driverName, dsn string, pool poolSettings, d dialect, classificator ErrorClassificator, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		log.Err(err).Str("driver", driverName).Msg("error opening database connection")
		return nil, fmt.Errorf("error opening %s connection: %w", driverName, err)
	}

	conn.SetMaxOpenConns(pool.maxOpen)
	if pool.maxIdle > 0 {
		conn.SetMaxIdleConns(pool.maxIdle)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("driver", driverName).Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	log.Info().Str("driver", driverName).Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		dialect:            d,
		errorClassificator: classificator,
		logger:             log,
	}, nil
}
