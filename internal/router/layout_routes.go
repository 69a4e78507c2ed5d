package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ruta593/fleet-console/internal/handler"
	"github.com/ruta593/fleet-console/internal/model"
)

// RegisterLayouts registers the layout editor under /v1.  Only ADMIN
// operators author bus structures.
func RegisterLayouts(e *echo.Echo, h *handler.LayoutHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := protected(e, jwtSecret, limiter, model.RoleAdmin)

	// ---- Sessions ----
	g.POST("/layouts/sessions", h.OpenEditor)
	g.POST("/bus-structures/:id/edit", h.EditSaved)
	g.GET("/layouts/sessions/:sid", h.GetEditor)
	g.DELETE("/layouts/sessions/:sid", h.CloseEditor)
	g.POST("/layouts/sessions/:sid/save", h.Save)

	// ---- Floors and elements ----
	g.PUT("/layouts/sessions/:sid/floors", h.SetFloors)
	g.POST("/layouts/sessions/:sid/elements", h.AddElement)
	g.DELETE("/layouts/sessions/:sid/elements/:eid", h.RemoveElement)

	// ---- Pointer ----
	g.POST("/layouts/sessions/:sid/drag/start", h.DragStart)
	g.POST("/layouts/sessions/:sid/drag/move", h.DragMove)
	g.POST("/layouts/sessions/:sid/drag/end", h.DragEnd)
	g.POST("/layouts/sessions/:sid/armed", h.Arm)
	g.DELETE("/layouts/sessions/:sid/armed", h.RemoveArmed)
}
