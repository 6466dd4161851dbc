package handlers

import (
	"CasaFacil/ai"
	"CasaFacil/models"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AIController serves the assistant routes. Routes that need a different
// provider get their own controller with another gateway.
type AIController struct {
	gateway ai.Gateway
}

func NewAIController(gateway ai.Gateway) *AIController {
	return &AIController{gateway: gateway}
}

func (ac *AIController) Chat(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fail(c, http.StatusBadRequest, "Message is required")
	}

	response, err := ac.gateway.Chat(c.Request().Context(), req.Message, ai.FormatHistory(req.History))
	if err != nil {
		logFailure(c, "chat", err)
		return fail(c, http.StatusInternalServerError, "Failed to process the request")
	}
	return ok(c, http.StatusOK, "response", response)
}

func (ac *AIController) GenerateDescription(c echo.Context) error {
	var facts models.PropertyFacts
	if err := c.Bind(&facts); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(facts.Type) == "" || strings.TrimSpace(facts.Location) == "" {
		return fail(c, http.StatusBadRequest, "Incomplete property data: type and location are required")
	}

	description, err := ac.gateway.GenerateDescription(c.Request().Context(), facts)
	if err != nil {
		logFailure(c, "generate description", err)
		return fail(c, http.StatusInternalServerError, "Failed to generate description")
	}
	return ok(c, http.StatusOK, "description", description)
}

func (ac *AIController) Recommendations(c echo.Context) error {
	var req models.RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.UserPreferences == nil || req.AvailableProperties == nil {
		return fail(c, http.StatusBadRequest, "Incomplete data: userPreferences and availableProperties are required")
	}

	recommendations, err := ac.gateway.GetRecommendations(c.Request().Context(), *req.UserPreferences, req.AvailableProperties)
	if err != nil {
		logFailure(c, "recommendations", err)
		return fail(c, http.StatusInternalServerError, "Failed to get recommendations")
	}
	return ok(c, http.StatusOK, "recommendations", recommendations)
}
