// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"
	"iter"
	"time"

	"github.com/MKhiriev/book-collections/models"
)

// BookStore is the document store holding book collection records.
//
// Find returns a lazy, single-pass sequence. The query runs when the
// sequence is first ranged over; a failure during iteration is yielded as the
// error element and ends the sequence.
type BookStore interface {
	Find(ctx context.Context, filters models.FilterSet) (iter.Seq2[models.Book, error], error)
	InsertOne(ctx context.Context, book models.Book) (string, error)
	UpdateOne(ctx context.Context, id string, book models.Book) (models.UpdateResult, error)
	DeleteOne(ctx context.Context, id string) (models.DeleteResult, error)
	Ping(ctx context.Context) error
}

// BookRepository validates client payloads and executes filter-based reads
// and id-scoped writes against a [BookStore].
type BookRepository interface {
	List(ctx context.Context, filters models.FilterSet) (iter.Seq2[models.Book, error], error)
	Create(ctx context.Context, payload models.BookPayload) (models.Book, error)
	Update(ctx context.Context, id string, payload models.BookPayload) (models.UpdateResult, error)
	Remove(ctx context.Context, id string) (models.DeleteResult, error)
	Ping(ctx context.Context) error
}

// UserRepository stores credentials.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByIdentity(ctx context.Context, identity string) (models.User, error)
}

// TokenDenylist records revoked session tokens until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Sweeper is implemented by stores that must drop expired entries
// themselves.
type Sweeper interface {
	Sweep(now time.Time) int
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
