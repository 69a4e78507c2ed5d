package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ruta593/fleet-console/internal/handler"
	"github.com/ruta593/fleet-console/internal/model"
)

// RegisterSales registers the point-of-sale endpoints under /v1.  Counter
// clerks and admins can view seat maps, run sale sessions and look up the
// tickets of sold seats.
func RegisterSales(e *echo.Echo, h *handler.SalesHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := protected(e, jwtSecret, limiter, model.RoleClerk, model.RoleAdmin)

	g.GET("/trips/:id/seats", h.SeatMap)
	g.GET("/trips/:id/seats/:seat_id/ticket", h.SeatTicket)
	g.GET("/trips/:id/tickets", h.Clients)

	g.POST("/trips/:id/sales", h.OpenSale)
	g.GET("/sales/:sid", h.GetSale)
	g.POST("/sales/:sid/refresh", h.Refresh)
	g.POST("/sales/:sid/seats/:seat_id/click", h.Click)
	g.POST("/sales/:sid/complete", h.Complete)
	g.DELETE("/sales/:sid", h.CancelSale)
}
