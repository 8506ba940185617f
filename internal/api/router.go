package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cargotrack/tracking-api/internal/api/handler"
	"github.com/cargotrack/tracking-api/internal/api/middleware"
	"github.com/cargotrack/tracking-api/internal/core/ports"
)

// Deps carries everything the router needs. Redis may be nil (dedup
// disabled); JWTSecret empty leaves the API open.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Shipments ports.ShipmentService
	Auth      ports.AuthService
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cargotrack"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Shipment routes ---
	// Mutations require a bearer token when a JWT secret is configured;
	// reads are always public.
	shipmentHandler := handler.NewShipmentHandler(deps.Shipments)
	guard := passthrough
	if deps.JWTSecret != "" {
		guard = middleware.Auth(deps.JWTSecret)
	}

	shipments := e.Group("/api/shipments")
	shipments.GET("", shipmentHandler.List)
	shipments.POST("", shipmentHandler.Create, guard)
	shipments.GET("/:id", shipmentHandler.Get)
	shipments.POST("/:id/update-location", shipmentHandler.UpdateLocation, guard)
	shipments.GET("/:id/eta", shipmentHandler.GetETA)

	return e
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}
