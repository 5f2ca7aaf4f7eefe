package middleware

import (
	"net/http"
	"strings"

	"recipebox/internal/cache"
	"recipebox/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var resolveToken = service.ResolveToken

func extractIdentity(c echo.Context, cch cache.Cache) (*service.TokenIdentity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "token") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	identity, err := resolveToken(c.Request().Context(), cch, parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return identity, nil
}

// RequireAuth resolves the `Token <value>` header against the token
// store and rejects the request before the handler runs otherwise.
func RequireAuth(cch cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := extractIdentity(c, cch)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, identity)
			return next(c)
		}
	}
}
