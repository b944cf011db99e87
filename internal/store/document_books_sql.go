package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/models"
)

// sqlBookStore is the [BookStore] backed by the "books" table of PostgreSQL
// or SQLite. The collection titles live in the JSON "book" column.
type sqlBookStore struct {
	db     *DB
	ids    idGenerator
	logger *logger.Logger
}

func NewSQLBookStore(db *DB, ids idGenerator, logger *logger.Logger) BookStore {
	logger.Debug().Str("dialect", db.dialect.name).Msg("creating sql book store")
	return &sqlBookStore{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

func (s *sqlBookStore) Find(ctx context.Context, filters models.FilterSet) (iter.Seq2[models.Book, error], error) {
	query, args, err := buildFindBooksQuery(s.db.builder(), s.db.dialect, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return func(yield func(models.Book, error) bool) {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			s.logFailure(ctx, err, "*sqlBookStore.Find")
			yield(models.Book{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			book, err := scanBook(rows)
			if err != nil {
				s.logFailure(ctx, err, "*sqlBookStore.Find")
				yield(models.Book{}, fmt.Errorf("%w: %w", ErrScanningRows, err))
				return
			}
			if !yield(book, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			s.logFailure(ctx, err, "*sqlBookStore.Find")
			yield(models.Book{}, fmt.Errorf("%w: %w", ErrScanningRows, err))
		}
	}, nil
}

func (s *sqlBookStore) InsertOne(ctx context.Context, book models.Book) (string, error) {
	if book.ID == "" {
		book.ID = s.ids.Generate()
	}

	query, args, err := buildInsertBookQuery(s.db.builder(), book)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logFailure(ctx, err, "*sqlBookStore.InsertOne")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return book.ID, nil
}

// UpdateOne replaces the content of the record in a transaction. The current
// row is read first so that an update with identical values is reported as
// matched but not modified.
func (s *sqlBookStore) UpdateOne(ctx context.Context, id string, book models.Book) (models.UpdateResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logFailure(ctx, err, "*sqlBookStore.UpdateOne")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Err(rbErr).Str("func", "*sqlBookStore.UpdateOne").Msg("rollback failed")
		}
	}()

	query, args, err := buildSelectBookContentQuery(s.db.builder(), s.db.dialect, id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	current, err := scanBookContent(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.UpdateResult{}, nil
	}
	if err != nil {
		s.logFailure(ctx, err, "*sqlBookStore.UpdateOne")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if current.SameContent(book) {
		if err = tx.Commit(); err != nil {
			return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return models.UpdateResult{MatchedCount: 1}, nil
	}

	query, args, err = buildUpdateBookQuery(s.db.builder(), id, book)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		s.logFailure(ctx, err, "*sqlBookStore.UpdateOne")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	modified, err := res.RowsAffected()
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		s.logFailure(ctx, err, "*sqlBookStore.UpdateOne")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (s *sqlBookStore) DeleteOne(ctx context.Context, id string) (models.DeleteResult, error) {
	query, args, err := buildDeleteBookQuery(s.db.builder(), id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logFailure(ctx, err, "*sqlBookStore.DeleteOne")
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.DeleteResult{DeletedCount: deleted}, nil
}

func (s *sqlBookStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlBookStore) logFailure(ctx context.Context, err error, fn string) {
	logger.FromContext(ctx).Err(err).
		Str("func", fn).
		Stringer("class", s.db.classify(err)).
		Msg("book store operation failed")
}
