package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkwell/blog/docs"
	"github.com/inkwell/blog/internal/api/handler"
	"github.com/inkwell/blog/internal/api/middleware"
	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
	"github.com/inkwell/blog/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Accounts ports.AccountService
	Profiles ports.ProfileService
	Posts    ports.PostService
	Mail     ports.MailQueue

	MailConfig handler.MailConfig
	// Readiness lists the dependency checks behind /health/ready.
	Readiness map[string]handlers.Check
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "blog",
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Mail, deps.MailConfig)
	profileHandler := handler.NewProfileHandler(deps.Profiles, deps.Posts)
	postHandler := handler.NewPostHandler(deps.Posts)

	authenticated := middleware.RequireAuthenticated()
	confirmed := middleware.RequireConfirmed()

	// --- Identity-aware routes ---
	app := e.Group("", middleware.Auth(deps.Accounts, deps.Log))

	auth := app.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authenticated)
	auth.GET("/confirm/:token", authHandler.Confirm, authenticated)
	auth.POST("/confirm", authHandler.ResendConfirmation, authenticated)
	auth.POST("/reset", authHandler.RequestPasswordReset)
	auth.POST("/reset/:token", authHandler.ResetPassword)
	auth.POST("/change-password", authHandler.ChangePassword, authenticated)
	auth.POST("/change-email", authHandler.RequestEmailChange, authenticated)
	auth.GET("/change-email/:token", authHandler.ChangeEmail, authenticated)

	app.GET("/users/:username", profileHandler.Get)
	app.PUT("/profile", profileHandler.Update, confirmed)
	app.PUT("/admin/users/:username", profileHandler.AdminUpdate, confirmed, middleware.RequireAdmin())

	app.POST("/posts", postHandler.Create, confirmed, middleware.RequirePermission(domain.PermissionWrite))
	app.GET("/posts/:sid", postHandler.Get)
	app.PUT("/posts/:sid", postHandler.Edit, confirmed)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
