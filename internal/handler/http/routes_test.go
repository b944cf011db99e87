package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/service"
	"github.com/MKhiriev/book-collections/internal/store"
	"github.com/MKhiriev/book-collections/models"
)

// newMemoryHandler wires the real services on top of in-memory storages.
func newMemoryHandler(t *testing.T) *Handler {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.Storage{DB: config.DB{DSN: "memory://"}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services, err := service.NewServices(storages, &config.StructuredConfig{App: config.App{
		TokenSignKey:     "e2e-sign-key",
		TokenIssuer:      "book-collections",
		TokenDuration:    time.Hour,
		PasswordHashCost: 4,
		Version:          "test",
	}}, logger.Nop())
	require.NoError(t, err)

	return NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())
}

func TestEndToEnd_RegisterLoginProfileLogout(t *testing.T) {
	h := newMemoryHandler(t)
	credentials := `{"identity":"a@b.com","secret":"pw"}`

	rr := serve(h, http.MethodPost, "/user", credentials, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = serve(h, http.MethodPost, "/user", credentials, nil)
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = serve(h, http.MethodPost, "/login", credentials, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	bearer := map[string]string{"Authorization": "Bearer " + login.AccessToken}

	rr = serve(h, http.MethodGet, "/profile", "", bearer)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var profile models.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, "a@b.com", profile.Claims.SubjectIdentity)

	rr = serve(h, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Login required to access this route"}`, rr.Body.String())

	rr = serve(h, http.MethodPost, "/logout", "", bearer)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h, http.MethodGet, "/profile", "", bearer)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "token_revoked", decodeError(t, rr).Code)

	rr = serve(h, http.MethodPost, "/login", `{"identity":"a@b.com","secret":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEndToEnd_BookCollections(t *testing.T) {
	h := newMemoryHandler(t)

	for _, body := range []string{
		`{"title":"The Psychology of Money","description":"Timeless lessons on wealth","book":["The Psychology of Money"],"publishedAt":"2020-09-08T00:00:00Z"}`,
		`{"title":"Atomic Habits","description":"Tiny changes, remarkable results","book":["Atomic Habits"]}`,
	} {
		rr := serve(h, http.MethodPost, "/book-collections", body, nil)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	list := func(target string) []models.Book {
		rr := serve(h, http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var body models.ListBooksResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		return body.Collections
	}

	assert.Len(t, list("/book-collections"), 2)

	found := list("/book-collections?description=WEALTH")
	require.Len(t, found, 1)
	assert.Equal(t, "The Psychology of Money", found[0].Title)

	found = list("/book-collections?booktitle=Atomic%20Habits")
	require.Len(t, found, 1)
	id := found[0].ID

	assert.Empty(t, list("/book-collections?description=.*"))

	rr := serve(h, http.MethodPut, "/book-collections/does-not-exist", `{"title":"x","description":"y"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"matchedCount":0,"modifiedCount":0}`, rr.Body.String())

	rr = serve(h, http.MethodPut, "/book-collections/"+id, `{"title":"Atomic Habits","description":"Revised"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"matchedCount":1,"modifiedCount":1}`, rr.Body.String())

	rr = serve(h, http.MethodPost, "/book-collections", `{"description":"no title"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"title is required"}`, rr.Body.String())

	rr = serve(h, http.MethodDelete, "/book-collections/"+id, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deletedCount":1}`, rr.Body.String())

	assert.Len(t, list("/book-collections"), 1)

	rr = serve(h, http.MethodPatch, "/book-collections", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rr.Body.String())

	rr = serve(h, http.MethodGet, "/shelves", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rr.Body.String())
}
