package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/utils"
	"github.com/MKhiriev/book-collections/internal/validators"
)

// idGenerator produces identifiers for new records.
type idGenerator interface {
	Generate() string
}

// Backend names a document store implementation selected by the DSN scheme.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendMemory   Backend = "memory"
)

// Storages bundles every store the services depend on.
type Storages struct {
	BookRepository BookRepository
	UserRepository UserRepository
	TokenDenylist  TokenDenylist

	// Sweeper is set when the denylist needs periodic cleanup.
	Sweeper Sweeper

	db    *DB
	redis *redis.Client
}

// ParseDSN maps a DSN to its backend and the connection string the driver
// expects.
//
//	postgres://... , postgresql://...  → postgres, unchanged
//	sqlite://books.db                  → sqlite, "books.db"
//	file:books.db?cache=shared         → sqlite, unchanged
//	memory://                          → memory
func ParseDSN(dsn string) (Backend, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
		}
		return BackendSQLite, path, nil
	case strings.HasPrefix(dsn, "file:"):
		return BackendSQLite, dsn, nil
	case strings.HasPrefix(dsn, "memory://"):
		return BackendMemory, "", nil
	default:
		return "", "", ErrUnsupportedDSN
	}
}

// NewStorages connects the configured backends, applies migrations for SQL
// backends and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	backend, conn, err := ParseDSN(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	ids := utils.NewUUIDGenerator()
	validator := validators.NewPayloadValidator()
	s := &Storages{}

	switch backend {
	case BackendMemory:
		s.BookRepository = NewBookRepository(NewMemoryBookStore(ids, log), validator, log)
		s.UserRepository = NewMemoryUserRepository(ids, log)
	default:
		if backend == BackendPostgres {
			s.db, err = NewConnectPostgres(ctx, conn, log)
		} else {
			s.db, err = NewConnectSQLite(ctx, conn, log)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		if err = s.db.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}

		s.BookRepository = NewBookRepository(NewSQLBookStore(s.db, ids, log), validator, log)
		s.UserRepository = NewUserRepository(s.db, ids, log)
	}

	if cfg.Redis.URL != "" {
		s.redis, err = ConnectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.TokenDenylist = NewRedisDenylist(s.redis, log)
	} else {
		denylist := NewMemoryDenylist(log)
		s.TokenDenylist = denylist
		s.Sweeper = denylist
	}

	log.Info().Str("backend", string(backend)).Bool("redis", s.redis != nil).Msg("storages initialized")
	return s, nil
}

// Ping checks the document store.
func (s *Storages) Ping(ctx context.Context) error {
	return s.BookRepository.Ping(ctx)
}

// Close releases the database and Redis connections.
func (s *Storages) Close() error {
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	return errors.Join(errs...)
}
