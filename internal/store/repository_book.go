package store

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/validators"
	"github.com/MKhiriev/book-collections/models"
)

// bookRepository validates payloads before they reach the [BookStore] and
// reports every store failure as [ErrStoreUnavailable].
type bookRepository struct {
	store     BookStore
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

// NewBookRepository constructs a [BookRepository] on top of store.
func NewBookRepository(store BookStore, validator validators.Validator, logger *logger.Logger) BookRepository {
	logger.Debug().Msg("creating book repository")
	return &bookRepository{
		store:     store,
		validator: validator,
		now:       time.Now,
		logger:    logger,
	}
}

// List returns the records matching every criterion of filters. An empty
// FilterSet yields all records.
func (r *bookRepository) List(ctx context.Context, filters models.FilterSet) (iter.Seq2[models.Book, error], error) {
	books, err := r.store.Find(ctx, filters)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFilter) {
			return nil, err
		}
		return nil, unavailable("find", err)
	}

	return func(yield func(models.Book, error) bool) {
		for book, err := range books {
			if err != nil {
				yield(models.Book{}, unavailable("find", err))
				return
			}
			if !yield(book, nil) {
				return
			}
		}
	}, nil
}

// Create validates payload (title first, then description) and inserts it.
// Nothing is written when validation fails.
func (r *bookRepository) Create(ctx context.Context, payload models.BookPayload) (models.Book, error) {
	if err := r.validator.Validate(ctx, payload); err != nil {
		return models.Book{}, err
	}

	now := truncateTime(r.now())
	book := payload.ToBook(now)
	book.PublishedAt = truncateTime(book.PublishedAt)
	book.CreatedAt = now
	book.UpdatedAt = now

	id, err := r.store.InsertOne(ctx, book)
	if err != nil {
		return models.Book{}, unavailable("insert", err)
	}
	book.ID = id

	logger.FromContext(ctx).Debug().Str("book_id", id).Msg("book collection created")
	return book, nil
}

// Update replaces the content of the record identified by id. An unknown id
// is reported as a zero UpdateResult, not as an error.
func (r *bookRepository) Update(ctx context.Context, id string, payload models.BookPayload) (models.UpdateResult, error) {
	if err := r.validator.Validate(ctx, payload); err != nil {
		return models.UpdateResult{}, err
	}

	now := truncateTime(r.now())
	book := payload.ToBook(now)
	book.PublishedAt = truncateTime(book.PublishedAt)
	book.UpdatedAt = now

	result, err := r.store.UpdateOne(ctx, id, book)
	if err != nil {
		return models.UpdateResult{}, unavailable("update", err)
	}

	return result, nil
}

// Remove deletes the record identified by id.
func (r *bookRepository) Remove(ctx context.Context, id string) (models.DeleteResult, error) {
	result, err := r.store.DeleteOne(ctx, id)
	if err != nil {
		return models.DeleteResult{}, unavailable("delete", err)
	}

	return result, nil
}

func (r *bookRepository) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
