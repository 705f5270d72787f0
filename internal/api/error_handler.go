package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/api/response"
	"github.com/primstrade/platform/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and messages.
//   - Logs unexpected errors with the request id without leaking details in production.
//   - Renders the failure envelope: {"success": false, "message": "...", "error": ...}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		code, msg, detail := resolveError(err)

		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")

			body := response.Envelope{Success: false, Message: msg, RequestID: requestID}
			if !production {
				body.Error = err.Error()
			}
			_ = c.JSON(code, body)
			return
		}

		log.Warn().
			Err(err).
			Int("status", code).
			Str("request_id", requestID).
			Msg("request failed")

		_ = response.Fail(c, code, msg, detail)
	}
}

func resolveError(err error) (int, string, any) {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, httpErrorMessage(he), nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation failed", ve.Fields
	}

	var fe *domain.ForbiddenError
	if errors.As(err, &fe) {
		return http.StatusForbidden, capitalize(fe.Reason), nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "Invalid ID or data format", nil
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, "Invalid status transition", nil

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Access token is required", nil
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, "Invalid or expired token", nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password", nil
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return http.StatusUnauthorized, "User not found", nil

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied", nil

	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrSignalNotFound):
		return http.StatusNotFound, "Trade signal not found", nil
	case errors.Is(err, domain.ErrDiscussionNotFound):
		return http.StatusNotFound, "Discussion not found", nil
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "Comment not found", nil

	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "Email already registered", nil
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Resource already exists", nil
	}

	return http.StatusInternalServerError, "Internal server error", nil
}

func httpErrorMessage(he *echo.HTTPError) string {
	if s, ok := he.Message.(string); ok {
		return s
	}
	if e, ok := he.Message.(error); ok {
		return e.Error()
	}
	return fmt.Sprintf("%v", he.Message)
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
