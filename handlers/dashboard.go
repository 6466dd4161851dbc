package handlers

import (
	"CasaFacil/models"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DashboardController struct {
	properties *PropertyController
}

func NewDashboardController(properties *PropertyController) *DashboardController {
	return &DashboardController{properties: properties}
}

// Show returns the signed-in user, their own listings when they are a
// landlord, and the most recent available listings.
func (dc *DashboardController) Show(c echo.Context) error {
	s, err := sessionStore(c, dc.properties.sessions)
	if err != nil {
		logFailure(c, "load session", err)
		return fail(c, http.StatusInternalServerError, "Failed to load session")
	}
	if s == nil || s.Snapshot().User == nil {
		return fail(c, http.StatusUnauthorized, "Session not found")
	}
	user := s.Snapshot().User

	mine := []models.Property{}
	if user.Role == models.RoleLandlord {
		mine, err = dc.properties.properties.ListByOwner(c.Request().Context(), user.ID)
		if err != nil {
			logFailure(c, "list own properties", err)
			return fail(c, http.StatusInternalServerError, "Failed to fetch properties")
		}
		if mine == nil {
			mine = []models.Property{}
		}
	}

	recent, err := dc.properties.available(c, recentListings)
	if err != nil {
		logFailure(c, "recent properties", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch properties")
	}
	if recent == nil {
		recent = []models.Property{}
	}

	return ok(c, http.StatusOK, "dashboard", map[string]any{
		"user":             user,
		"myProperties":     mine,
		"recentProperties": recent,
	})
}
