package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/truck-garage-allocation/internal/config"
	"github.com/iliyamo/truck-garage-allocation/internal/handler"
	"github.com/iliyamo/truck-garage-allocation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("DISPATCHER", "VIEWER"))
	auth.GET("/me", a.Me)
}

// RegisterAllocation wires the availability views and the assignment write
// path.  Availability is readable by both roles and sits behind the Redis
// response cache; assignments require the DISPATCHER role.  Everything shares
// the token-bucket rate limiter.
func RegisterAllocation(e *echo.Echo, av *handler.AvailabilityHandler, as *handler.AssignmentHandler, tr *handler.TruckHandler, cfg config.Config, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	read := e.Group("/v1", rl)
	read.Use(middleware.JWTAuth(cfg.JWTSecret))
	read.Use(middleware.RequireRole("DISPATCHER", "VIEWER"))
	// Availability answers are advisory snapshots; a short-TTL cache in
	// front of them is safe.
	read.GET("/garages/availability", av.GetAllGarages, cache)
	read.GET("/garages/:code/availability", av.GetGarage, cache)
	read.GET("/trucks/:id", tr.GetTruck)

	write := e.Group("/v1", rl)
	write.Use(middleware.JWTAuth(cfg.JWTSecret))
	write.Use(middleware.RequireRole("DISPATCHER"))
	write.PUT("/trucks/:id/spot", as.UpdateSpot)
	write.POST("/spots/batch", as.BatchAssign)
}
