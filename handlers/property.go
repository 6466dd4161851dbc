package handlers

import (
	"CasaFacil/listing"
	"CasaFacil/models"
	"CasaFacil/mq"
	"CasaFacil/repository"
	"CasaFacil/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	browseLimit    = 100
	maxImages      = 10
	recentListings = 6
)

type PropertyController struct {
	properties PropertyStore
	cache      ListingCache
	sessions   SessionStores
	searches   SearchCounter
	events     mq.Publisher
}

func NewPropertyController(properties PropertyStore, cache ListingCache, sessions SessionStores, searches SearchCounter, events mq.Publisher) *PropertyController {
	return &PropertyController{
		properties: properties,
		cache:      cache,
		sessions:   sessions,
		searches:   searches,
		events:     events,
	}
}

// available returns the newest available listings, going through the
// Redis cache first. Cache failures fall back to the database.
func (pc *PropertyController) available(c echo.Context, limit int64) ([]models.Property, error) {
	ctx := c.Request().Context()
	if props, hit, err := pc.cache.GetAvailable(ctx, limit); err != nil {
		c.Logger().Warnf("listing cache read: %v", err)
	} else if hit {
		return props, nil
	}

	props, err := pc.properties.ListAvailable(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := pc.cache.SetAvailable(ctx, limit, props); err != nil {
		c.Logger().Warnf("listing cache write: %v", err)
	}
	return props, nil
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	filters, err := listing.ParseFilters(c.QueryParams())
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	props, err := pc.available(c, browseLimit)
	if err != nil {
		logFailure(c, "list properties", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch properties")
	}

	s, err := sessionStore(c, pc.sessions)
	if err != nil {
		logFailure(c, "load session", err)
	}
	if s != nil {
		s.SetProperties(props)
		props = s.Snapshot().Properties
	}

	view := listing.NewView(props)
	results := view.Apply(filters)
	if !filters.IsEmpty() {
		if err := pc.searches.Incr(c.Request().Context()); err != nil {
			c.Logger().Warnf("search counter: %v", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"properties": results,
		"filters":    view.Filters(),
		"shown":      view.Shown(),
		"total":      view.Total(),
	})
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return fail(c, http.StatusBadRequest, "Invalid property ID")
	}
	property, err := pc.properties.Get(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "Property not found")
	}
	if err != nil {
		logFailure(c, "get property", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch property")
	}
	return ok(c, http.StatusOK, "property", property)
}

func validateCreate(req models.CreatePropertyRequest) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return errors.New("title is required")
	case req.Price <= 0:
		return errors.New("price must be greater than zero")
	case !req.PropertyType.Valid():
		return errors.New("propertyType must be apartment, house, room or commercial")
	case strings.TrimSpace(req.Location.City) == "":
		return errors.New("location.city is required")
	case req.Bedrooms < 0 || req.Bathrooms < 0 || req.Area < 0:
		return errors.New("bedrooms, bathrooms and area cannot be negative")
	case len(req.Images) > maxImages:
		return fmt.Errorf("at most %d images are allowed", maxImages)
	}
	for _, img := range req.Images {
		if strings.TrimSpace(img) == "" {
			return errors.New("image URLs cannot be empty")
		}
	}
	return nil
}

func cleanFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	var req models.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validateCreate(req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s, err := sessionStore(c, pc.sessions)
	if err != nil || s == nil || s.Snapshot().User == nil {
		if err != nil {
			logFailure(c, "load session", err)
		}
		return fail(c, http.StatusUnauthorized, "Session not found")
	}
	owner := s.Snapshot().User

	now := time.Now().UTC()
	property := models.Property{
		ID:           utils.NewID(),
		OwnerID:      owner.ID,
		OwnerName:    owner.DisplayName,
		OwnerEmail:   owner.Email,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		Features:     cleanFeatures(req.Features),
		Images:       append([]string{}, req.Images...),
		Available:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := pc.properties.Create(c.Request().Context(), property); err != nil {
		logFailure(c, "create property", err)
		return fail(c, http.StatusInternalServerError, "Failed to create property")
	}

	s.AddProperty(property)
	pc.afterWrite(c, mq.PropertyPublished, property)
	return ok(c, http.StatusCreated, "property", property)
}

// owned loads a property and checks that the caller may modify it. On a nil
// property the error response has already been written.
func (pc *PropertyController) owned(c echo.Context, allowAdmin bool) (*models.Property, error) {
	id := c.Param("id")
	if !utils.IsValidID(id) {
		return nil, fail(c, http.StatusBadRequest, "Invalid property ID")
	}
	property, err := pc.properties.Get(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(c, http.StatusNotFound, "Property not found")
	}
	if err != nil {
		logFailure(c, "get property", err)
		return nil, fail(c, http.StatusInternalServerError, "Failed to fetch property")
	}
	isAdmin := allowAdmin && currentRole(c) == models.RoleAdmin
	if property.OwnerID != currentUserID(c) && !isAdmin {
		return nil, fail(c, http.StatusForbidden, "You are not authorized to modify this property")
	}
	return property, nil
}

func validatePatch(p models.PropertyPatch) error {
	switch {
	case p.Title != nil && strings.TrimSpace(*p.Title) == "":
		return errors.New("title cannot be empty")
	case p.Price != nil && *p.Price <= 0:
		return errors.New("price must be greater than zero")
	case p.PropertyType != nil && !p.PropertyType.Valid():
		return errors.New("propertyType must be apartment, house, room or commercial")
	case p.Location != nil && strings.TrimSpace(p.Location.City) == "":
		return errors.New("location.city is required")
	case p.Bedrooms != nil && *p.Bedrooms < 0, p.Bathrooms != nil && *p.Bathrooms < 0, p.Area != nil && *p.Area < 0:
		return errors.New("bedrooms, bathrooms and area cannot be negative")
	case len(p.Images) > maxImages:
		return fmt.Errorf("at most %d images are allowed", maxImages)
	}
	return nil
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	var patch models.PropertyPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	patch.UpdatedAt = nil
	if patch.Empty() {
		return fail(c, http.StatusBadRequest, "No fields to update")
	}
	if err := validatePatch(patch); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	current, resp := pc.owned(c, false)
	if current == nil {
		return resp
	}

	now := time.Now().UTC()
	patch.UpdatedAt = &now
	updated, err := pc.properties.Update(c.Request().Context(), current.ID, patch)
	if err != nil {
		logFailure(c, "update property", err)
		return fail(c, http.StatusInternalServerError, "Failed to update property")
	}

	pc.applyToSession(c, func(s sessionMutator) { s.UpdateProperty(current.ID, patch) })
	pc.afterWrite(c, mq.PropertyUpdated, *updated)
	return ok(c, http.StatusOK, "property", updated)
}

// WithdrawProperty removes a listing from circulation. The document is kept
// with available=false.
func (pc *PropertyController) WithdrawProperty(c echo.Context) error {
	current, resp := pc.owned(c, true)
	if current == nil {
		return resp
	}

	now := time.Now().UTC()
	available := false
	patch := models.PropertyPatch{Available: &available, UpdatedAt: &now}
	updated, err := pc.properties.Update(c.Request().Context(), current.ID, patch)
	if err != nil {
		logFailure(c, "withdraw property", err)
		return fail(c, http.StatusInternalServerError, "Failed to delete property")
	}

	pc.applyToSession(c, func(s sessionMutator) { s.DeleteProperty(current.ID) })
	pc.afterWrite(c, mq.PropertyWithdrawn, *updated)
	return ok(c, http.StatusOK, "message", "Property deleted successfully")
}

type sessionMutator interface {
	UpdateProperty(id string, patch models.PropertyPatch)
	DeleteProperty(id string)
}

func (pc *PropertyController) applyToSession(c echo.Context, fn func(sessionMutator)) {
	s, err := sessionStore(c, pc.sessions)
	if err != nil {
		logFailure(c, "load session", err)
		return
	}
	if s != nil {
		fn(s)
	}
}

// afterWrite runs the side effects of a persisted change. Neither is allowed
// to fail the request.
func (pc *PropertyController) afterWrite(c echo.Context, event string, property models.Property) {
	ctx := c.Request().Context()
	if err := pc.cache.Invalidate(ctx); err != nil {
		c.Logger().Warnf("listing cache invalidate: %v", err)
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := pc.events.PublishJSON(pubCtx, event, mq.NewPropertyEvent(property)); err != nil {
		c.Logger().Warnf("publish %s: %v", event, err)
	}
}
