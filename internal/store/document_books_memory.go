package store

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/models"
)

// memoryBookStore keeps records in process memory, in insertion order.
type memoryBookStore struct {
	mu    sync.RWMutex
	books map[string]models.Book
	order []string
	ids   idGenerator
}

func NewMemoryBookStore(ids idGenerator, logger *logger.Logger) BookStore {
	logger.Debug().Msg("creating in-memory book store")
	return &memoryBookStore{
		books: make(map[string]models.Book),
		ids:   ids,
	}
}

// Find evaluates the filters against a snapshot taken under the read lock;
// writes after the call do not affect the returned sequence.
func (s *memoryBookStore) Find(ctx context.Context, filters models.FilterSet) (iter.Seq2[models.Book, error], error) {
	s.mu.RLock()
	matched := make([]models.Book, 0, len(s.order))
	for _, id := range s.order {
		book := s.books[id]
		if filters.Matches(book) {
			book.Book = slices.Clone(book.Book)
			matched = append(matched, book)
		}
	}
	s.mu.RUnlock()

	return func(yield func(models.Book, error) bool) {
		for _, book := range matched {
			if err := ctx.Err(); err != nil {
				yield(models.Book{}, err)
				return
			}
			if !yield(book, nil) {
				return
			}
		}
	}, nil
}

func (s *memoryBookStore) InsertOne(ctx context.Context, book models.Book) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if book.ID == "" {
		book.ID = s.ids.Generate()
	}
	book.Book = slices.Clone(book.Book)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[book.ID]; !exists {
		s.order = append(s.order, book.ID)
	}
	s.books[book.ID] = book

	return book.ID, nil
}

func (s *memoryBookStore) UpdateOne(ctx context.Context, id string, book models.Book) (models.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return models.UpdateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.books[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	if current.SameContent(book) {
		return models.UpdateResult{MatchedCount: 1}, nil
	}

	current.Title = book.Title
	current.Description = book.Description
	current.PublishedAt = book.PublishedAt
	current.Book = slices.Clone(book.Book)
	current.UpdatedAt = book.UpdatedAt
	s.books[id] = current

	return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *memoryBookStore) DeleteOne(ctx context.Context, id string) (models.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return models.DeleteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return models.DeleteResult{}, nil
	}
	delete(s.books, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })

	return models.DeleteResult{DeletedCount: 1}, nil
}

func (s *memoryBookStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
