package middleware

import (
	"CasaFacil/models"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("user_role").(models.Role)
			if !slices.Contains(roles, role) {
				return c.JSON(http.StatusForbidden, map[string]any{
					"success": false,
					"error":   "Access denied",
				})
			}
			return next(c)
		}
	}
}
