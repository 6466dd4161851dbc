package handlers

import (
	"CasaFacil/models"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type PropertyCounter interface {
	Counter
	CountAvailable(ctx context.Context) (int64, error)
}

type AdminController struct {
	users      Counter
	properties PropertyCounter
	searches   Counter
}

func NewAdminController(users Counter, properties PropertyCounter, searches Counter) *AdminController {
	return &AdminController{users: users, properties: properties, searches: searches}
}

func (ac *AdminController) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	var stats models.Stats
	var err error
	if stats.TotalUsers, err = ac.users.Count(ctx); err != nil {
		logFailure(c, "count users", err)
		return fail(c, http.StatusInternalServerError, "Failed to compute stats")
	}
	if stats.TotalProperties, err = ac.properties.Count(ctx); err != nil {
		logFailure(c, "count properties", err)
		return fail(c, http.StatusInternalServerError, "Failed to compute stats")
	}
	if stats.ActiveProperties, err = ac.properties.CountAvailable(ctx); err != nil {
		logFailure(c, "count active properties", err)
		return fail(c, http.StatusInternalServerError, "Failed to compute stats")
	}
	if stats.TotalSearches, err = ac.searches.Count(ctx); err != nil {
		logFailure(c, "count searches", err)
		return fail(c, http.StatusInternalServerError, "Failed to compute stats")
	}
	return ok(c, http.StatusOK, "stats", stats)
}
