// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/book-collections/internal/service"
	"github.com/MKhiriev/book-collections/models"
)

func gzipString(t *testing.T, s string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.String()
}

func TestDecodeJSON_BodyLimit(t *testing.T) {
	oversized := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `","description":"d"}`
	oversizedCredentials := `{"identity":"a@b.com","secret":"` + strings.Repeat("p", maxBodyBytes) + `"}`

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		gzipped  bool
		wantCode int
	}{
		{name: "create within limit", method: http.MethodPost, target: "/book-collections", body: `{"title":"` + strings.Repeat("a", maxBodyBytes/2) + `","description":"d"}`, wantCode: http.StatusCreated},
		{name: "create", method: http.MethodPost, target: "/book-collections", body: oversized, wantCode: http.StatusRequestEntityTooLarge},
		{name: "update", method: http.MethodPut, target: "/book-collections/id-1", body: oversized, wantCode: http.StatusRequestEntityTooLarge},
		{name: "register", method: http.MethodPost, target: "/user", body: oversizedCredentials, wantCode: http.StatusRequestEntityTooLarge},
		{name: "login", method: http.MethodPost, target: "/login", body: oversizedCredentials, wantCode: http.StatusRequestEntityTooLarge},
		{name: "gzip expands past limit", method: http.MethodPost, target: "/book-collections", body: oversized, gzipped: true, wantCode: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := newTestHandler(&service.Services{
				BookService: &mockBookService{
					createFn: func(_ context.Context, p models.BookPayload) (models.Book, error) {
						called = true
						return models.Book{ID: "new-id", Title: p.Title}, nil
					},
					updateFn: func(context.Context, string, models.BookPayload) (models.UpdateResult, error) {
						called = true
						return models.UpdateResult{}, nil
					},
				},
				AuthService: &mockAuthService{
					registerFn: func(context.Context, models.Credentials) (models.User, error) {
						called = true
						return models.User{}, nil
					},
					loginFn: func(context.Context, models.Credentials) (models.User, error) {
						called = true
						return models.User{}, service.ErrWrongCredentials
					},
				},
			})

			body := tt.body
			var headers map[string]string
			if tt.gzipped {
				body = gzipString(t, body)
				headers = map[string]string{"Content-Encoding": "gzip"}
			}

			rr := serve(h, tt.method, tt.target, body, headers)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantCode < http.StatusBadRequest, called)
			if tt.wantCode == http.StatusRequestEntityTooLarge {
				assert.Contains(t, rr.Body.String(), "request body too large")
			}
		})
	}
}
