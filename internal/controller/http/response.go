package http

import (
	"errors"
	"net/http"

	"cliphub/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every non-2xx answer uses.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError && !knownInternal(err) {
		// Whatever this is, it does not belong in a response body.
		message = "internal server error"
	}
	c.JSON(status, ErrorResponse{StatusCode: status, Message: message})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrMissingFields),
		errors.Is(err, usecase.ErrFileRequired),
		errors.Is(err, usecase.ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrChannelNotFound),
		errors.Is(err, usecase.ErrVideoNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func knownInternal(err error) bool {
	return errors.Is(err, usecase.ErrTokenGeneration) ||
		errors.Is(err, usecase.ErrUploadFailed) ||
		errors.Is(err, usecase.ErrInternal)
}
