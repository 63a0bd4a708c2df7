package http

import (
	"net/http"
	"strings"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/account"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const accountContextKey = "authenticated_account"

// AuthMiddleware validates the Bearer API key (sk_live_... or sk_test_...)
// and attaches the resolved account to the request context. Authentication
// failures never reveal whether the key exists.
func AuthMiddleware(resolver ports.AccountResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, newErrorBody(
					codeAuthenticationError,
					`Missing or invalid Authorization header. Expected "Bearer sk_..."`,
				))
			}

			token := strings.TrimPrefix(header, "Bearer ")
			ref, err := resolver.ResolveAccount(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, newErrorBody(
					codeAuthenticationError,
					"Invalid API Key provided.",
				))
			}

			c.Set(accountContextKey, ref)
			return next(c)
		}
	}
}

func authenticatedAccount(c echo.Context) account.Ref {
	ref, _ := c.Get(accountContextKey).(account.Ref)
	return ref
}
