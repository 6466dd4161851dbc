package handlers

import (
	"CasaFacil/models"
	"CasaFacil/store"

	"github.com/labstack/echo/v4"
)

func currentUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func currentRole(c echo.Context) models.Role {
	role, _ := c.Get("user_role").(models.Role)
	return role
}

// sessionStore returns the caller's application store, or nil for anonymous
// requests.
func sessionStore(c echo.Context, sessions SessionStores) (*store.Store, error) {
	sessionID, _ := c.Get("session_id").(string)
	userID := currentUserID(c)
	if sessionID == "" || userID == "" {
		return nil, nil
	}
	return sessions.Get(c.Request().Context(), sessionID, userID)
}
