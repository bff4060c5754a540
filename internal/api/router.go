package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siteflow/dashboard-gateway/internal/api/handler"
	"github.com/siteflow/dashboard-gateway/internal/api/middleware"
	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
	"github.com/siteflow/dashboard-gateway/internal/infrastructure/config"
)

// Dependencies carries the wired services the router mounts. The activity
// pipeline is constructed in main because its dispatcher owns goroutines
// tied to the process lifetime.
type Dependencies struct {
	Sessions  ports.SessionService
	Resources ports.ResourceService
	Activity  ports.ActivityFeed
	Mongo     *mongo.Database
	Redis     *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("siteflow_gateway"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	menuHandler := handler.NewMenuHandler()
	pageHandler := handler.NewPageHandler(deps.Resources, deps.Activity, log)
	activityHandler := handler.NewActivityHandler(deps.Activity)
	resourceHandler := handler.NewResourceHandler(deps.Resources)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	requireAuth := middleware.Auth(deps.Sessions)
	signInLimit := middleware.NewRateLimiter(cfg.SignIn.RatePerMinute, cfg.SignIn.Burst).Middleware()

	// --- Auth routes ---
	e.POST("/api/auth/sign-in", authHandler.SignIn, signInLimit)
	e.POST("/api/auth/sign-out", authHandler.SignOut, requireAuth)

	// --- Session routes ---
	e.GET("/api/session", authHandler.Session, requireAuth)
	e.PATCH("/api/session/profile", authHandler.UpdateProfile, requireAuth)

	// --- Dashboard routes ---
	e.GET("/api/menu", menuHandler.Menu, requireAuth)
	e.GET("/api/pages/:page", pageHandler.Page, requireAuth)
	e.GET("/api/activity", activityHandler.Recent, requireAuth, middleware.Capability(domain.Role.IsStaff))

	// --- Generic resource routes ---
	resources := e.Group("/api/resources", requireAuth, middleware.ResourceGate())
	resources.GET("/:resource", resourceHandler.List)
	resources.POST("/:resource", resourceHandler.Create)
	resources.GET("/:resource/:id", resourceHandler.Get)
	resources.PATCH("/:resource/:id", resourceHandler.Update)
	resources.DELETE("/:resource/:id", resourceHandler.Destroy)
	resources.POST("/:resource/:id/actions/:action", resourceHandler.Action)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
