package handler

import (
	"errors"
	"net/http"

	"campuslink/backend/internal/apperr"
	"campuslink/backend/internal/chat"
	"campuslink/backend/internal/chathub"
	"campuslink/backend/internal/moderation"
	"campuslink/backend/internal/storage"
)

// Handler bundles the dependencies of the HTTP layer.
type Handler struct {
	Hub        *chathub.ManagerService
	Chat       *chat.Service
	Moderation *moderation.Service
	Storage    storage.Storage
	JWTSecret  []byte
}

func NewHandler(hub *chathub.ManagerService, chatSvc *chat.Service, mod *moderation.Service, s storage.Storage, jwtSecret []byte) *Handler {
	return &Handler{
		Hub:        hub,
		Chat:       chatSvc,
		Moderation: mod,
		Storage:    s,
		JWTSecret:  jwtSecret,
	}
}

// errStatus maps the service error taxonomy to HTTP statuses. Anything
// unrecognized (store failures included) surfaces as a 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errMessage hides internal detail for server-side failures.
func errMessage(err error) string {
	if errStatus(err) == http.StatusInternalServerError {
		return "server error"
	}
	return err.Error()
}
