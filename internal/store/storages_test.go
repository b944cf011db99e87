// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/models"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn         string
		wantBackend Backend
		wantConn    string
		wantErr     bool
	}{
		{dsn: "postgres://u:p@localhost:5432/books", wantBackend: BackendPostgres, wantConn: "postgres://u:p@localhost:5432/books"},
		{dsn: "postgresql://localhost/books", wantBackend: BackendPostgres, wantConn: "postgresql://localhost/books"},
		{dsn: "sqlite://books.db", wantBackend: BackendSQLite, wantConn: "books.db"},
		{dsn: "file:books.db?cache=shared", wantBackend: BackendSQLite, wantConn: "file:books.db?cache=shared"},
		{dsn: "memory://", wantBackend: BackendMemory},
		{dsn: "sqlite://", wantErr: true},
		{dsn: "mongodb://localhost/books", wantErr: true},
		{dsn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			backend, conn, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDSN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBackend, backend)
			assert.Equal(t, tt.wantConn, conn)
		})
	}
}

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), config.Storage{DB: config.DB{DSN: "memory://"}}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.BookRepository)
	assert.NotNil(t, s.UserRepository)
	assert.NotNil(t, s.TokenDenylist)
	assert.NotNil(t, s.Sweeper)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestNewStorages_UnsupportedDSN(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{DSN: "mongodb://x"}}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestNewStorages_UnreachableRedis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewStorages(ctx, config.Storage{
		DB:    config.DB{DSN: "memory://"},
		Redis: config.Redis{URL: "127.0.0.1:1"},
	}, logger.Nop())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// TestNewStorages_SQLite runs the store against a real SQLite file with the
// embedded migrations applied.
func TestNewStorages_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "books.db")

	s, err := NewStorages(ctx, config.Storage{DB: config.DB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	repo := s.BookRepository
	money, err := repo.Create(ctx, models.BookPayload{Title: "Finance", Description: "The Psychology of Money", Book: []string{"Dune", "Emma"}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.BookPayload{Title: "Habits", Description: "Atomic Habits 100%"})
	require.NoError(t, err)

	list := func(filters models.FilterSet) []models.Book {
		seq, err := repo.List(ctx, filters)
		require.NoError(t, err)
		return drain(t, seq)
	}

	assert.Len(t, list(models.FilterSet{}), 2)

	byDescription := list(models.FilterSet{
		models.FieldDescription: {Field: models.FieldDescription, Predicate: models.RegexCaseInsensitive, Value: "MONEY"},
	})
	require.Len(t, byDescription, 1)
	assert.Equal(t, money.ID, byDescription[0].ID)
	assert.Equal(t, []string{"Dune", "Emma"}, byDescription[0].Book)

	// % is matched literally
	assert.Len(t, list(models.FilterSet{
		models.FieldDescription: {Field: models.FieldDescription, Predicate: models.RegexCaseInsensitive, Value: "100%"},
	}), 1)
	// so is _
	assert.Empty(t, list(models.FilterSet{
		models.FieldDescription: {Field: models.FieldDescription, Predicate: models.RegexCaseInsensitive, Value: "Hab_ts"},
	}))

	school, err := repo.Create(ctx, models.BookPayload{Title: "Histoire de l'ÉCOLE", Description: "Ζωή"})
	require.NoError(t, err)
	foldCases := []struct {
		field string
		value string
	}{
		{models.FieldTitle, "école"},
		{models.FieldTitle, "L'éCOLE"},
		{models.FieldDescription, "ΖΩΉ"},
	}
	for _, tc := range foldCases {
		found := list(models.FilterSet{tc.field: {Field: tc.field, Predicate: models.RegexCaseInsensitive, Value: tc.value}})
		require.Len(t, found, 1, tc.value)
		assert.Equal(t, school.ID, found[0].ID)
	}
	_, err = repo.Remove(ctx, school.ID)
	require.NoError(t, err)

	byBook := list(models.FilterSet{
		models.FieldBook: {Field: models.FieldBook, Predicate: models.Membership, Value: []string{"Emma"}},
	})
	require.Len(t, byBook, 1)
	assert.Equal(t, money.ID, byBook[0].ID)

	res, err := repo.Update(ctx, money.ID, models.BookPayload{Title: "Finance", Description: "The Psychology of Money", PublishedAt: &money.PublishedAt, Book: []string{"Dune", "Emma"}})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{MatchedCount: 1, ModifiedCount: 0}, res)

	res, err = repo.Update(ctx, money.ID, models.BookPayload{Title: "Finance 2", Description: "changed"})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, res)

	res, err = repo.Update(ctx, "missing", models.BookPayload{Title: "t", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{}, res)

	del, err := repo.Remove(ctx, money.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
	assert.Len(t, list(models.FilterSet{}), 1)

	users := s.UserRepository
	_, err = users.CreateUser(ctx, models.User{Identity: "a@b.com", SecretHash: "h", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, models.User{Identity: "a@b.com", SecretHash: "h", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)

	found, err := users.FindUserByIdentity(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "h", found.SecretHash)
}
