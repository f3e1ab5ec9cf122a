package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/accounthub/accounts-api/internal/api/handler"
	"github.com/accounthub/accounts-api/internal/api/middleware"
	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/core/service"
	"github.com/accounthub/accounts-api/internal/infrastructure/db/sqlite"
	"github.com/accounthub/accounts-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *bun.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	userService := service.NewUserService(userRepo, service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	}, log)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.Auth(cfg.JWT.Secret)
	adminOnly := middleware.RBAC(domain.RoleAdministrator)

	// --- User resource ---
	users := e.Group("/api/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("", userHandler.List, auth, adminOnly)
	users.GET("/:id", userHandler.GetByID, auth)
	users.POST("", userHandler.Create, auth, adminOnly)
	users.PUT("/:id", userHandler.Update, auth, adminOnly)
	users.DELETE("/:id", userHandler.Delete, auth, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
