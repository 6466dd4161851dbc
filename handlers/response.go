package handlers

import (
	"github.com/labstack/echo/v4"
)

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func ok(c echo.Context, status int, key string, v any) error {
	return c.JSON(status, map[string]any{
		"success": true,
		key:       v,
	})
}

// logFailure records the collaborator error; callers answer with a generic
// message so the underlying detail never reaches the client.
func logFailure(c echo.Context, what string, err error) {
	c.Logger().Errorf("%s %s: %s: %v", c.Request().Method, c.Path(), what, err)
}
