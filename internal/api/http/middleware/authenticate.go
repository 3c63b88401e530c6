package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/model"
)

const claimsKey = "identity_claims"

// Authenticator resolves identity claims from session tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.IdentityClaims, error)
}

// Authenticate validates bearer tokens and stores identity claims in the echo context.
type Authenticate struct {
	authenticator Authenticator
	logger        *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, logger: logger}
}

// Handle rejects requests without a valid bearer token.
func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization token"})
		}

		claims, err := m.authenticator.Authenticate(c.Request().Context(), token)
		if errors.Is(err, model.ErrInvalidOrExpiredToken) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization token"})
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to authenticate", "error", err.Error())
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(c echo.Context) (model.IdentityClaims, bool) {
	claims, ok := c.Get(claimsKey).(model.IdentityClaims)
	return claims, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
