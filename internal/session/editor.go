package session

import (
	"sync"

	"github.com/ruta593/fleet-console/internal/layout"
)

// Editor is one operator's layout authoring session: the plan being built
// and the pointer state acting on it.  All access goes through Do so that
// operations on one session apply in arrival order.
type Editor struct {
	ID string
	// SourceID is the saved structure being edited, zero for a new layout.
	SourceID uint64

	mu   sync.Mutex
	plan *layout.FloorPlan
	drag *layout.DragController
}

// NewEditor wraps plan in an editor session.  The session is not
// registered until passed to Registry.OpenEditor.
func NewEditor(plan *layout.FloorPlan, sourceID uint64) *Editor {
	return &Editor{SourceID: sourceID, plan: plan, drag: layout.NewDragController(plan)}
}

// Do runs fn with exclusive access to the plan and its drag controller.
func (e *Editor) Do(fn func(plan *layout.FloorPlan, drag *layout.DragController) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.plan, e.drag)
}

// EditorView is what clients render for an editor session.
type EditorView struct {
	SessionID string             `json:"session_id"`
	SourceID  uint64             `json:"source_id,omitempty"`
	Floors    int                `json:"floors"`
	Layout    layout.Layout      `json:"layout"`
	SeatCount int                `json:"seat_count"`
	Armed     *layout.ElementRef `json:"armed"`
	Dragging  *layout.ElementRef `json:"dragging"`
	Drag      string             `json:"drag_state"`
}

// View returns a snapshot of the session.
func (e *Editor) View() EditorView {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := EditorView{
		SessionID: e.ID,
		SourceID:  e.SourceID,
		Floors:    e.plan.FloorCount(),
		Layout:    e.plan.Serialize(),
		SeatCount: e.plan.SeatCount(),
		Drag:      e.drag.State().String(),
	}
	if ref, ok := e.drag.Armed(); ok {
		v.Armed = &ref
	}
	if ref, ok := e.drag.Target(); ok {
		v.Dragging = &ref
	}
	return v
}
