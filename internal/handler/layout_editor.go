package handler // handler package contains the layout editor handlers

import (
	"net/http" // http defines status code constants

	"github.com/labstack/echo/v4" // echo framework supplies request context

	"github.com/ruta593/fleet-console/internal/layout"
	"github.com/ruta593/fleet-console/internal/service"
	"github.com/ruta593/fleet-console/internal/session"
)

// LayoutHandler serves editor sessions.  Each request resolves the
// operator's session, applies one model operation under the session lock
// and returns the result.
type LayoutHandler struct {
	Layouts  *service.LayoutService
	Sessions *session.Registry
}

// NewLayoutHandler constructs a LayoutHandler and panics if any dependency is nil.
func NewLayoutHandler(layouts *service.LayoutService, sessions *session.Registry) *LayoutHandler {
	if layouts == nil || sessions == nil {
		panic("nil dependency passed to NewLayoutHandler")
	}
	return &LayoutHandler{Layouts: layouts, Sessions: sessions}
}

type openEditorRequest struct {
	Floors int `json:"floors"`
}

type floorsRequest struct {
	Floors int `json:"floors"`
}

type addElementRequest struct {
	Floor        int    `json:"floor"`
	Type         string `json:"type" validate:"required"`
	SeatTypeCode string `json:"seat_type_code" validate:"max=16"`
}

type elementRefRequest struct {
	Floor     int    `json:"floor"`
	ElementID string `json:"element_id" validate:"required"`
}

type dragStartRequest struct {
	Floor      int          `json:"floor"`
	ElementID  string       `json:"element_id" validate:"required"`
	Pointer    layout.Point `json:"pointer"`
	ElementBox layout.Rect  `json:"element_box"`
}

type dragMoveRequest struct {
	Pointer   layout.Point `json:"pointer"`
	Container layout.Rect  `json:"container"`
}

type saveRequest struct {
	Name string `json:"name" validate:"max=120"`
}

// editor resolves the :sid editor session of the caller.
func (h *LayoutHandler) editor(c echo.Context) (*session.Editor, error) {
	id, err := identity(c)
	if err != nil {
		return nil, err
	}
	return h.Sessions.Editor(id, c.Param("sid"))
}

// OpenEditor handles POST /v1/layouts/sessions and starts an empty layout.
// floors defaults to 1.
func (h *LayoutHandler) OpenEditor(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req openEditorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Floors == 0 {
		req.Floors = 1
	}
	plan, err := h.Layouts.NewPlan(c.Request().Context(), id, req.Floors)
	if err != nil {
		return respondError(c, err)
	}
	ed := h.Sessions.OpenEditor(id, session.NewEditor(plan, 0))
	return c.JSON(http.StatusCreated, ed.View())
}

// EditSaved handles POST /v1/bus-structures/:id/edit and opens a session on
// a copy of a saved layout.  Saving it creates a new structure.
func (h *LayoutHandler) EditSaved(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	structureID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	plan, st, err := h.Layouts.OpenSaved(c.Request().Context(), id, structureID)
	if err != nil {
		return respondError(c, err)
	}
	ed := h.Sessions.OpenEditor(id, session.NewEditor(plan, st.ID))
	return c.JSON(http.StatusCreated, ed.View())
}

// GetEditor handles GET /v1/layouts/sessions/:sid.
func (h *LayoutHandler) GetEditor(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ed.View())
}

// SetFloors handles PUT /v1/layouts/sessions/:sid/floors.
func (h *LayoutHandler) SetFloors(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req floorsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := ed.Do(func(plan *layout.FloorPlan, _ *layout.DragController) error {
		return plan.SetFloorCount(req.Floors)
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ed.View())
}

// AddElement handles POST /v1/layouts/sessions/:sid/elements.  The element
// is placed at the default position with a generated name and id.
func (h *LayoutHandler) AddElement(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req addElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var el layout.Element
	err = ed.Do(func(plan *layout.FloorPlan, _ *layout.DragController) error {
		var err error
		el, err = plan.AddElement(req.Floor, layout.ElementType(req.Type), req.SeatTypeCode)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"floor": req.Floor, "element": el})
}

// RemoveElement handles DELETE /v1/layouts/sessions/:sid/elements/:eid?floor=n.
// Removing an absent element succeeds with removed=false.
func (h *LayoutHandler) RemoveElement(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var q struct {
		Floor int `query:"floor"`
	}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil || q.Floor < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
	}
	eid := c.Param("eid")
	var removed bool
	_ = ed.Do(func(plan *layout.FloorPlan, drag *layout.DragController) error {
		if ref, ok := drag.Armed(); ok && ref.Floor == q.Floor && ref.ID == eid {
			drag.Disarm()
		}
		if ref, ok := drag.Target(); ok && ref.Floor == q.Floor && ref.ID == eid {
			drag.PointerUp()
		}
		removed = plan.RemoveElement(q.Floor, eid)
		return nil
	})
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

// DragStart handles POST /v1/layouts/sessions/:sid/drag/start.  The element
// is also armed for removal.
func (h *LayoutHandler) DragStart(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dragStartRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := ed.Do(func(_ *layout.FloorPlan, drag *layout.DragController) error {
		return drag.PointerDown(req.Floor, req.ElementID, req.Pointer, req.ElementBox)
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ed.View())
}

// DragMove handles POST /v1/layouts/sessions/:sid/drag/move and returns the
// committed position of the dragged element.
func (h *LayoutHandler) DragMove(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dragMoveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var (
		pos layout.Position
		ref layout.ElementRef
	)
	err = ed.Do(func(_ *layout.FloorPlan, drag *layout.DragController) error {
		ref, _ = drag.Target()
		var err error
		pos, err = drag.PointerMove(req.Pointer, req.Container)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"floor": ref.Floor, "element_id": ref.ID, "position": pos})
}

// DragEnd handles POST /v1/layouts/sessions/:sid/drag/end.
func (h *LayoutHandler) DragEnd(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	_ = ed.Do(func(_ *layout.FloorPlan, drag *layout.DragController) error {
		drag.PointerUp()
		return nil
	})
	return c.JSON(http.StatusOK, ed.View())
}

// Arm handles POST /v1/layouts/sessions/:sid/armed.
func (h *LayoutHandler) Arm(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req elementRefRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := ed.Do(func(_ *layout.FloorPlan, drag *layout.DragController) error {
		return drag.Arm(req.Floor, req.ElementID)
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ed.View())
}

// RemoveArmed handles DELETE /v1/layouts/sessions/:sid/armed and removes the
// armed element, if any.
func (h *LayoutHandler) RemoveArmed(c echo.Context) error {
	ed, err := h.editor(c)
	if err != nil {
		return respondError(c, err)
	}
	var removed bool
	_ = ed.Do(func(_ *layout.FloorPlan, drag *layout.DragController) error {
		removed = drag.RemoveArmed()
		return nil
	})
	return c.JSON(http.StatusOK, echo.Map{"removed": removed, "session": ed.View()})
}

// Save handles POST /v1/layouts/sessions/:sid/save.  The session stays
// open so the operator can keep editing after a rejected save.
func (h *LayoutHandler) Save(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	ed, err := h.Sessions.Editor(id, c.Param("sid"))
	if err != nil {
		return respondError(c, err)
	}
	var req saveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var saved struct {
		ID        uint64 `json:"id"`
		Name      string `json:"name"`
		SeatCount int    `json:"seat_count"`
	}
	err = ed.Do(func(plan *layout.FloorPlan, _ *layout.DragController) error {
		st, err := h.Layouts.Save(c.Request().Context(), id, req.Name, plan)
		if err != nil {
			return err
		}
		saved.ID, saved.Name, saved.SeatCount = st.ID, st.Name, st.SeatCount
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// CloseEditor handles DELETE /v1/layouts/sessions/:sid.
func (h *LayoutHandler) CloseEditor(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.Sessions.CloseEditor(id, c.Param("sid")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
