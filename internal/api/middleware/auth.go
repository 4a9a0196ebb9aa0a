package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
	"github.com/openjournal/diary-system/internal/metrics"
)

// ContextUserID is the echo context key Auth sets for downstream handlers.
const ContextUserID = "user_id"

// Auth validates the session token and injects the subject user id into the
// echo context. The whole Authorization header value is the token; the
// upstream clients do not send a "Bearer " prefix.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Provide a valid auth token.")
			}

			userID, err := tokens.Validate(c.Request().Context(), token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, rejectionMessage(err))
			}

			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	default:
		return "other"
	}
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "Signature expired. Please log in again."
	case errors.Is(err, domain.ErrTokenRevoked):
		return "Token blacklisted. Please log in again."
	case errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "Invalid token. Please log in again."
	default:
		return "Provide a valid auth token."
	}
}
