package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/scriba-server/internal/model"
)

// handleError maps a service error to a status code and a message safe to show.
// fallback is used for 5xx responses; internal causes are never exposed.
func handleError(err error, fallback string) (int, string) {
	var violation *model.PolicyViolationError
	switch {
	case errors.As(err, &violation):
		return http.StatusBadRequest, violation.Reason
	case errors.Is(err, model.ErrPasswordMismatch):
		return http.StatusBadRequest, "passwords do not match"
	case errors.Is(err, model.ErrInvalidEmail):
		return http.StatusBadRequest, "invalid email format"
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, model.ErrInvalidOrExpiredToken):
		return http.StatusUnauthorized, "the link has expired or is not valid"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, model.ErrEmailTaken):
		return http.StatusConflict, "email is already taken"
	default:
		return http.StatusInternalServerError, fallback
	}
}
