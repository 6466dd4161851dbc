package routes

import (
	"CasaFacil/handlers"
	"CasaFacil/middleware"
	"CasaFacil/models"

	"github.com/labstack/echo/v4"
)

type Controllers struct {
	Auth       *handlers.AuthController
	Properties *handlers.PropertyController
	Dashboard  *handlers.DashboardController
	Assistant  *handlers.AssistantController
	Images     *handlers.ImageController
	Admin      *handlers.AdminController
	// AI serves chat, recommendations and /api/generate-description.
	AI *handlers.AIController
	// PublishAI serves the description route of the publish form.
	PublishAI *handlers.AIController
}

func RegisterRoutes(e *echo.Echo, auth middleware.Authenticator, h Controllers) {
	e.GET("/health", handlers.HealthCheck)

	requireAuth := middleware.JWTMiddleware(auth)
	landlord := middleware.RequireRole(models.RoleLandlord)

	api := e.Group("/api")

	api.POST("/chat", h.AI.Chat)
	api.POST("/generate-description", h.AI.GenerateDescription)
	api.POST("/recommendations", h.AI.Recommendations)
	api.POST("/properties/generate-description", h.PublishAI.GenerateDescription)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout, requireAuth)
	authGroup.GET("/me", h.Auth.Me, requireAuth)

	properties := api.Group("/properties")
	properties.GET("", h.Properties.ListProperties, middleware.OptionalJWT(auth))
	properties.GET("/:id", h.Properties.GetProperty)
	properties.POST("", h.Properties.CreateProperty, requireAuth, landlord)
	properties.PATCH("/:id", h.Properties.UpdateProperty, requireAuth, landlord)
	properties.DELETE("/:id", h.Properties.WithdrawProperty, requireAuth, middleware.RequireRole(models.RoleLandlord, models.RoleAdmin))

	api.GET("/dashboard", h.Dashboard.Show, requireAuth)

	assistant := api.Group("/assistant", requireAuth)
	assistant.GET("", h.Assistant.Get)
	assistant.POST("/messages", h.Assistant.Send)
	assistant.DELETE("/messages", h.Assistant.Clear)
	assistant.POST("/toggle", h.Assistant.Toggle)

	api.POST("/images", h.Images.Upload, requireAuth, landlord)
	api.GET("/images/:key", h.Images.Download)

	api.GET("/admin/stats", h.Admin.Stats, requireAuth, middleware.RequireRole(models.RoleAdmin))
}
