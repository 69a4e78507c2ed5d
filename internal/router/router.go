package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/ruta593/fleet-console/internal/handler"    // handlers that implement the endpoints
	"github.com/ruta593/fleet-console/internal/middleware" // JWT identity and role enforcement
	"github.com/ruta593/fleet-console/internal/model"
)

// RegisterRoutes registers routes that do not require authentication:
// liveness and, when a ReadyHandler is given, readiness.
func RegisterRoutes(e *echo.Echo, ready *handler.ReadyHandler) {
	e.GET("/healthz", handler.Health)
	if ready != nil {
		e.GET("/readyz", ready.Ready)
	}
}

// protected returns a /v1 group that authenticates the bearer token, rate
// limits per operator and admits only the given roles.
func protected(e *echo.Echo, jwtSecret string, limiter echo.MiddlewareFunc, roles ...string) *echo.Group {
	return e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		limiter,
		middleware.RequireRole(roles...),
	)
}

// RegisterCatalog registers the read-only catalogs.  Both roles may read
// them; responses go through the Redis cache.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, limiter, cache echo.MiddlewareFunc) {
	g := protected(e, jwtSecret, limiter, model.RoleAdmin, model.RoleClerk)
	g.GET("/bus-structures", h.ListBusStructures, cache)
	g.GET("/bus-structures/:id", h.GetBusStructure, cache)
	g.GET("/seat-types", h.ListSeatTypes, cache)
	g.GET("/seat-types/:code", h.GetSeatType, cache)
}
