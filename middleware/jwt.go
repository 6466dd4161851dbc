package middleware

import (
	"CasaFacil/utils"
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error)
}

func bearerToken(c echo.Context) (string, bool) {
	tokenParts := strings.Split(c.Request().Header.Get("Authorization"), " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
		return "", false
	}
	return tokenParts[1], true
}

func setClaims(c echo.Context, claims *utils.JWTClaims) {
	c.Set("claims", claims)
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_role", claims.Role)
	c.Set("session_id", claims.SessionID())
}

func JWTMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"error":   "Authorization header is required",
				})
			}

			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"error":   "Invalid authorization header format",
				})
			}

			claims, err := auth.Authenticate(c.Request().Context(), tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"error":   "Invalid token",
				})
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalJWT attaches the caller's claims when a valid token is sent and
// lets anonymous requests through otherwise.
func OptionalJWT(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenString, ok := bearerToken(c); ok {
				if claims, err := auth.Authenticate(c.Request().Context(), tokenString); err == nil {
					setClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}
