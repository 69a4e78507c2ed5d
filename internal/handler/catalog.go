package handler // handler package contains catalog listing handlers

import (
	"context"
	"net/http" // http defines status code constants
	"strings"

	"github.com/labstack/echo/v4" // echo provides request context and JSON helpers

	"github.com/ruta593/fleet-console/internal/model"
)

// StructureCatalog lists and loads bus structures.
type StructureCatalog interface {
	ListByCooperative(ctx context.Context, cooperativeID uint64) ([]model.BusStructureSummary, error)
	GetByIDAndCooperative(ctx context.Context, id, cooperativeID uint64) (*model.BusStructure, error)
}

// SeatTypeCatalog lists seat types and looks one up by code.
type SeatTypeCatalog interface {
	ListByCooperative(ctx context.Context, cooperativeID uint64) ([]model.SeatType, error)
	GetByCode(ctx context.Context, cooperativeID uint64, code string) (*model.SeatType, error)
}

// CatalogHandler serves the read-only catalogs other screens pick from.
// Responses are scoped to the caller's cooperative and cached in Redis by
// the router.
type CatalogHandler struct {
	Structures StructureCatalog
	SeatTypes  SeatTypeCatalog
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(structures StructureCatalog, seatTypes SeatTypeCatalog) *CatalogHandler {
	return &CatalogHandler{Structures: structures, SeatTypes: seatTypes}
}

// ListBusStructures handles GET /v1/bus-structures.
func (h *CatalogHandler) ListBusStructures(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	items, err := h.Structures.ListByCooperative(c.Request().Context(), id.CooperativeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count": len(items),
		"items": items,
	})
}

// GetBusStructure handles GET /v1/bus-structures/:id and returns the saved
// layout as authored (no seat statuses).
func (h *CatalogHandler) GetBusStructure(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	structureID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	st, err := h.Structures.GetByIDAndCooperative(c.Request().Context(), structureID, id.CooperativeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// ListSeatTypes handles GET /v1/seat-types.
func (h *CatalogHandler) ListSeatTypes(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	types, err := h.SeatTypes.ListByCooperative(c.Request().Context(), id.CooperativeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count": len(types),
		"items": types,
	})
}

// GetSeatType handles GET /v1/seat-types/:code.  The sale form uses it to
// show the surcharge of the seat type a seat was named after.
func (h *CatalogHandler) GetSeatType(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}
	st, err := h.SeatTypes.GetByCode(c.Request().Context(), id.CooperativeID, code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
