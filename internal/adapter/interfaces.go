// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the book-collections HTTP API.
//
// [ServerAdapter] decouples the CLI from the transport. Error values defined
// in errors.go are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized]
// for 401).
package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

import (
	"context"
	"net/url"

	"github.com/MKhiriev/book-collections/models"
)

// ServerAdapter defines communication with the book-collections server.
// Implementations attach the stored bearer token to authenticated requests.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	Register(ctx context.Context, credentials models.Credentials) (models.RegisterResponse, error)

	// Login authenticates and stores the returned token via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (string, error)

	Profile(ctx context.Context) (models.Claims, error)

	// Logout revokes the stored token on the server and forgets it locally.
	Logout(ctx context.Context) error

	// ListBooks passes filters to GET /book-collections unchanged.
	ListBooks(ctx context.Context, filters url.Values) ([]models.Book, error)
	CreateBook(ctx context.Context, payload models.BookPayload) (models.Book, error)
	UpdateBook(ctx context.Context, id string, payload models.BookPayload) (models.UpdateResult, error)
	DeleteBook(ctx context.Context, id string) (models.DeleteResult, error)

	Version(ctx context.Context) (string, error)
}
