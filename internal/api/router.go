package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	_ "github.com/legalaid/practice-api/docs" // registers the OpenAPI document
	"github.com/legalaid/practice-api/internal/api/handler"
	"github.com/legalaid/practice-api/internal/api/middleware"
	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
	infrahttp "github.com/legalaid/practice-api/internal/infrastructure/http"
	"github.com/legalaid/practice-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services and probes the router mounts.
type Dependencies struct {
	Auth     ports.AuthService
	Clients  ports.ClientService
	Events   ports.EventService
	Feedback ports.FeedbackService
	Settings ports.SettingsService

	// Checks back /health/ready.
	Checks []handlers.Check
	// Registerer receives the HTTP request metrics. Nil uses the default registry.
	Registerer prometheus.Registerer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "legalaid",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no auth required) ---
	infrahttp.RegisterOpsRoutes(e, deps.Checks...)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	clientHandler := handler.NewClientHandler(deps.Clients)
	eventHandler := handler.NewEventHandler(deps.Events)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback, deps.Log)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)

	authMiddleware := middleware.Auth(deps.Auth)
	staff := middleware.RBAC(domain.RoleLawyer, domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", authHandler.Me, authMiddleware, middleware.RBAC())

	// --- Clients (lawyer, admin) ---
	clients := api.Group("/clients", authMiddleware, staff)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Add)
	clients.PUT("/:id", clientHandler.Edit)
	clients.DELETE("/:id", clientHandler.Delete)
	clients.PATCH("/:id/hold", clientHandler.Hold)

	// --- Events (lawyer, admin; scoped to the caller) ---
	events := api.Group("/events", authMiddleware, staff)
	events.POST("", eventHandler.Create)
	events.GET("", eventHandler.List)
	events.PUT("/:id", eventHandler.Update)
	events.DELETE("/:id", eventHandler.Delete)

	// --- Feedback ---
	feedback := api.Group("/feedback", authMiddleware)
	feedback.POST("/case", feedbackHandler.Submit, middleware.RBAC(domain.RoleLawyer))
	feedback.GET("/stats", feedbackHandler.Stats, middleware.RBAC(domain.RoleAdmin))
	feedback.GET("/all", feedbackHandler.All, middleware.RBAC(domain.RoleAdmin))

	// --- Settings (any authenticated account) ---
	settings := api.Group("/settings", authMiddleware, middleware.RBAC())
	settings.POST("/change-password", settingsHandler.ChangePassword)
	settings.POST("/change-email", settingsHandler.ChangeEmail)

	return e
}
