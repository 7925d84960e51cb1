package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

type errorClass struct {
	status   int
	sentinel []error
}

// errorClasses is ordered; the first class with a matching sentinel wins.
var errorClasses = []errorClass{
	{http.StatusUnauthorized, []error{domain.ErrUnauthorized, domain.ErrInvalidToken, domain.ErrExpiredToken, domain.ErrInvalidCredentials}},
	{http.StatusForbidden, []error{domain.ErrForbidden}},
	{http.StatusNotFound, []error{domain.ErrUserNotFound, domain.ErrProfileNotFound, domain.ErrPostNotFound, domain.ErrEntryNotFound, domain.ErrCommentNotFound}},
	{http.StatusBadRequest, []error{domain.ErrValidation}},
	{http.StatusConflict, []error{domain.ErrUserExists, domain.ErrProfileExists, domain.ErrAlreadyLiked, domain.ErrNotLiked}},
	{http.StatusServiceUnavailable, []error{domain.ErrStoreUnavailable}},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth gate rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, class := range errorClasses {
		for _, s := range class.sentinel {
			if !errors.Is(err, s) {
				continue
			}
			switch class.status {
			case http.StatusBadRequest:
				return class.status, err.Error()
			case http.StatusServiceUnavailable:
				log.Warn().Err(err).Str("path", c.Path()).Msg("store unavailable")
			}
			return class.status, s.Error()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
