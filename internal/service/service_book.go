package service

import (
	"context"
	"net/url"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/query"
	"github.com/MKhiriev/book-collections/internal/store"
	"github.com/MKhiriev/book-collections/models"
)

type bookService struct {
	repository store.BookRepository
	logger     *logger.Logger
}

func NewBookService(repository store.BookRepository, logger *logger.Logger) BookService {
	return &bookService{
		repository: repository,
		logger:     logger,
	}
}

// List builds the filter set from params and collects every matching
// record. The result is never nil.
func (s *bookService) List(ctx context.Context, params url.Values) ([]models.Book, error) {
	filters, err := query.Build(params)
	if err != nil {
		return nil, err
	}

	books, err := s.repository.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	collected := make([]models.Book, 0)
	for book, err := range books {
		if err != nil {
			logger.FromContext(ctx).Err(err).Msg("listing book collections failed")
			return nil, err
		}
		collected = append(collected, book)
	}

	logger.FromContext(ctx).Debug().Int("criteria", len(filters)).Int("found", len(collected)).Msg("book collections listed")
	return collected, nil
}

func (s *bookService) Create(ctx context.Context, payload models.BookPayload) (models.Book, error) {
	return s.repository.Create(ctx, payload)
}

func (s *bookService) Update(ctx context.Context, id string, payload models.BookPayload) (models.UpdateResult, error) {
	return s.repository.Update(ctx, id, payload)
}

func (s *bookService) Remove(ctx context.Context, id string) (models.DeleteResult, error) {
	return s.repository.Remove(ctx, id)
}

func (s *bookService) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}
