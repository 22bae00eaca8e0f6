package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"horse.fit/fanyi/internal/auth"
)

const apiKeyHeader = "X-API-Key"

// requireAPIKey checks X-API-Key against the configured bcrypt hash. It is a
// no-op when no hash is configured.
func (s *Server) requireAPIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.TrimSpace(s.opts.APIKeyHash) == "" {
				return next(c)
			}
			if !auth.VerifyAPIKey(c.Request().Header.Get(apiKeyHeader), s.opts.APIKeyHash) {
				return unauthorizedResponse(c)
			}
			return next(c)
		}
	}
}

func unauthorizedResponse(c echo.Context) error {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return fail(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	return c.String(http.StatusUnauthorized, "Unauthorized")
}
