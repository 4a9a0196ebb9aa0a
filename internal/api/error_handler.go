package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openjournal/diary-system/internal/core/domain"
)

// errorResponse is the envelope for errors that escape the handlers, matching
// the handler-level shape: status plus a generic message.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to their HTTP status codes, logs unexpected errors internally, and
// never leaks internal error text to clients.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Status: "fail", Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (middleware rejections, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User does not exist."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusAccepted, "User already exists. Please Log in."
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, "A diary with this id does not exist."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusUnauthorized, "Authorization failed."
	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenSignatureInvalid):
		return http.StatusUnauthorized, "Provide a valid auth token."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Try again"
}
