// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing and compression are
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/service"
	"github.com/MKhiriev/book-collections/internal/utils"
)

// auth is an HTTP middleware that admits only requests carrying a valid,
// unrevoked session token.
//
// It reads the "Authorization: Bearer <token>" header and verifies the token
// via [service.AuthService.ParseToken]. On success the claims are stored in
// the request context under [utils.ClaimsCtxKey] and next is invoked exactly
// once. Otherwise the request is answered here and next is never called:
//   - no header: 400 with "Login required to access this route".
//   - unparsable header or failed verification: 400 with a token error code.
//   - denylist unavailable: 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, utils.ErrInvalidAuthorizationHeader) {
				err = fmt.Errorf("%w: %w", service.ErrTokenMalformed, err)
			}
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Debug().Str("user_id", claims.SubjectID).Msg("request authenticated")

		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, claims)
		ctx = context.WithValue(ctx, utils.TokenCtxKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
