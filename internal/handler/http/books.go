// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/book-collections/internal/utils"
	"github.com/MKhiriev/book-collections/models"
)

// listBooks replies with every collection matching the query string.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.services.BookService.List(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ListBooksResponse{Collections: books}, http.StatusOK)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var payload models.BookPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	book, err := h.services.BookService.Create(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.BookResponse{Collection: book}, http.StatusCreated)
}

// updateBook replaces the collection content. A missing id is not an error:
// the reply carries matchedCount 0.
func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	var payload models.BookPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.BookService.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.BookService.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
