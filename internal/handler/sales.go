package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing query parameters

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/ruta593/fleet-console/internal/seatmap"
	"github.com/ruta593/fleet-console/internal/service"
	"github.com/ruta593/fleet-console/internal/session"
)

// SalesHandler serves trip seat maps and the sale sessions built on them.
// Ticket issuance happens elsewhere; completing a sale here only clears the
// selection and reloads the seat map.
type SalesHandler struct {
	Sales    *service.SalesService
	Sessions *session.Registry
}

// NewSalesHandler constructs a SalesHandler.  All dependencies must be non-nil.
func NewSalesHandler(sales *service.SalesService, sessions *session.Registry) *SalesHandler {
	if sales == nil || sessions == nil {
		panic("nil dependency passed to NewSalesHandler")
	}
	return &SalesHandler{Sales: sales, Sessions: sessions}
}

// SeatMap handles GET /v1/trips/:id/seats.
func (h *SalesHandler) SeatMap(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Sales.SeatMap(c.Request().Context(), id, tripID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// SeatTicket handles GET /v1/trips/:id/seats/:seat_id/ticket.  A seat with
// no ticket answers 404 "no ticket found for this seat".
func (h *SalesHandler) SeatTicket(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.Sales.Ticket(c.Request().Context(), id, tripID, c.Param("seat_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Clients handles GET /v1/trips/:id/tickets?page=n.
func (h *SalesHandler) Clients(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
		}
	}
	out, err := h.Sales.Clients(c.Request().Context(), id, tripID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// OpenSale handles POST /v1/trips/:id/sales and starts a sale session on the
// trip's current seat map.
func (h *SalesHandler) OpenSale(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Sales.SeatMap(c.Request().Context(), id, tripID)
	if err != nil {
		return respondError(c, err)
	}
	sale := h.Sessions.OpenSale(id, seatmap.NewSession(tripID, p, h.Sales))
	return c.JSON(http.StatusCreated, saleView(sale))
}

type saleResponse struct {
	SessionID string `json:"session_id"`
	seatmap.View
}

func saleView(s *session.Sale) saleResponse {
	return saleResponse{SessionID: s.ID, View: s.View()}
}

func (h *SalesHandler) sale(c echo.Context) (*session.Sale, error) {
	id, err := identity(c)
	if err != nil {
		return nil, err
	}
	return h.Sessions.Sale(id, c.Param("sid"))
}

// GetSale handles GET /v1/sales/:sid.
func (h *SalesHandler) GetSale(c echo.Context) error {
	s, err := h.sale(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, saleView(s))
}

// Refresh handles POST /v1/sales/:sid/refresh.  The seat map is refetched;
// the selection survives except for seats sold in the meantime.
func (h *SalesHandler) Refresh(c echo.Context) error {
	s, err := h.sale(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reload(c, s); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, saleView(s))
}

func (h *SalesHandler) reload(c echo.Context, s *session.Sale) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	p, err := h.Sales.SeatMap(c.Request().Context(), id, s.TripID)
	if err != nil {
		return err
	}
	s.ApplyProjection(p)
	return nil
}

// Click handles POST /v1/sales/:sid/seats/:seat_id/click.  A reserved seat
// answers with its ticket; a free seat toggles in the selection.
func (h *SalesHandler) Click(c echo.Context) error {
	s, err := h.sale(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := s.Click(c.Request().Context(), c.Param("seat_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Complete handles POST /v1/sales/:sid/complete after the tickets were
// issued: the selection is cleared and the seat map reloaded.
func (h *SalesHandler) Complete(c echo.Context) error {
	s, err := h.sale(c)
	if err != nil {
		return respondError(c, err)
	}
	s.Complete()
	if err := h.reload(c, s); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, saleView(s))
}

// CancelSale handles DELETE /v1/sales/:sid.
func (h *SalesHandler) CancelSale(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.Sessions.CloseSale(id, c.Param("sid")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
