package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/metrics"
)

const (
	// TokenHeader carries the raw identity token.
	TokenHeader = "x-auth-token"
	// IdentityKey is the echo context key holding the verified identity id.
	IdentityKey = "identity_id"
)

// Auth verifies the request token and injects the identity id into context.
// A missing token and a rejected token both short-circuit with 401.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c.Request())
			if raw == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error()).
					SetInternal(domain.ErrUnauthorized)
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error()).SetInternal(err)
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// extractToken reads x-auth-token first and falls back to a Bearer header.
func extractToken(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get(TokenHeader)); raw != "" {
		return raw
	}
	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
