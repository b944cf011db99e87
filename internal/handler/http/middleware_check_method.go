// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/book-collections/internal/app"
	"github.com/MKhiriev/book-collections/internal/utils"
	"github.com/MKhiriev/book-collections/models"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// Chi answers a known path requested with an unregistered method with 405.
// This handler answers 404 instead, so unsupported methods are
// indistinguishable from unknown paths. Routes are matched by their exact
// pattern; parameterised patterns never match a concrete path and therefore
// always produce 404.
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[r.Method]; !ok {
			notFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}

// notFound answers unknown paths with a JSON error body.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgNotFound}, http.StatusNotFound)
}
