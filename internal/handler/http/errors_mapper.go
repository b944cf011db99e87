package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/book-collections/internal/app"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/query"
	"github.com/MKhiriev/book-collections/internal/service"
	"github.com/MKhiriev/book-collections/internal/store"
	"github.com/MKhiriev/book-collections/internal/utils"
	"github.com/MKhiriev/book-collections/internal/validators"
	"github.com/MKhiriev/book-collections/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:        http.StatusBadRequest,
	ErrBodyTooLarge:       http.StatusRequestEntityTooLarge,
	query.ErrInvalidQuery: http.StatusBadRequest,

	utils.ErrNoAuthorizationHeader:      http.StatusBadRequest,
	utils.ErrInvalidAuthorizationHeader: http.StatusBadRequest,
	service.ErrAuth:                     http.StatusBadRequest,
	service.ErrWrongCredentials:         http.StatusUnauthorized,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrUnsupportedFilter:  http.StatusBadRequest,
	store.ErrStoreUnavailable:   http.StatusInternalServerError,
}

// tokenErrorCodes is checked in order: the first match wins.
var tokenErrorCodes = []struct {
	err  error
	code string
}{
	{service.ErrTokenRevoked, app.CodeTokenRevoked},
	{service.ErrTokenExpired, app.CodeTokenExpired},
	{service.ErrTokenSignatureInvalid, app.CodeTokenSignatureInvalid},
	{service.ErrTokenMalformed, app.CodeTokenMalformed},
	{utils.ErrInvalidAuthorizationHeader, app.CodeTokenMalformed},
}

func statusFromError(err error) int {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the client-visible body for err. Server-side failures
// never expose their details.
func errorResponse(err error, status int) models.ErrorResponse {
	if status >= http.StatusInternalServerError {
		return models.ErrorResponse{Error: app.MsgInternalServerError}
	}
	if errors.Is(err, utils.ErrNoAuthorizationHeader) {
		return models.ErrorResponse{Error: app.MsgLoginRequired}
	}

	response := models.ErrorResponse{Error: err.Error()}
	for _, candidate := range tokenErrorCodes {
		if errors.Is(err, candidate.err) {
			response.Code = candidate.code
			break
		}
	}
	return response
}

// writeError logs err and replies with the mapped status and body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, errorResponse(err, status), status)
}
