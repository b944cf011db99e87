package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip, middleware.StripSlashes)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Post("/user", h.register)
		r.Post("/login", h.login)

		r.Get("/book-collections", h.listBooks)
		r.Post("/book-collections", h.createBook)
		r.Put("/book-collections/{id}", h.updateBook)
		r.Delete("/book-collections/{id}", h.deleteBook)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/profile", h.profile)
		r.Post("/logout", h.logout)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
