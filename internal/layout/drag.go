package layout

// DragState is the state of the drag controller.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// ElementRef addresses one element of a plan.
type ElementRef struct {
	Floor int    `json:"floor"`
	ID    string `json:"element_id"`
}

type dragTarget struct {
	ref  ElementRef
	grab Point // pointer offset from the element's top-left corner
	size Size  // element pixel size captured at pointer-down
}

// DragController turns a pointer gesture on one element into a sequence of
// reposition calls on a FloorPlan.  The element being dragged and the
// element armed for removal are tracked separately: a pointer-down sets
// both, but arming can also happen without a drag (keyboard, touch).
type DragController struct {
	plan   *FloorPlan
	state  DragState
	target dragTarget
	armed  *ElementRef
}

// NewDragController binds a controller to plan.
func NewDragController(plan *FloorPlan) *DragController {
	return &DragController{plan: plan}
}

// State returns the current state.
func (d *DragController) State() DragState { return d.state }

// Target returns the element being dragged, if any.
func (d *DragController) Target() (ElementRef, bool) {
	if d.state != Dragging {
		return ElementRef{}, false
	}
	return d.target.ref, true
}

// PointerDown starts dragging id on floor.  pointer is the pointer
// location and box the element's rendered bounding box, both in viewport
// pixels.  A pointer-down while already dragging restarts the gesture on
// the new element.
func (d *DragController) PointerDown(floor int, id string, pointer Point, box Rect) error {
	if _, ok := d.plan.Element(floor, id); !ok {
		return ErrElementNotFound
	}
	ref := ElementRef{Floor: floor, ID: id}
	d.target = dragTarget{
		ref:  ref,
		grab: Point{X: pointer.X - box.Left, Y: pointer.Y - box.Top},
		size: box.Size(),
	}
	d.state = Dragging
	d.armed = &ref
	return nil
}

// PointerMove repositions the dragged element so that it stays under the
// pointer, clamped to container.  Every move is committed immediately.
func (d *DragController) PointerMove(pointer Point, container Rect) (Position, error) {
	if d.state != Dragging {
		return Position{}, ErrNotDragging
	}
	offset := Point{
		X: pointer.X - container.Left - d.target.grab.X,
		Y: pointer.Y - container.Top - d.target.grab.Y,
	}
	pos, ok := d.plan.RepositionElement(d.target.ref.Floor, d.target.ref.ID, offset, container, d.target.size)
	if !ok {
		// element vanished mid-gesture
		d.state = Idle
		return Position{}, ErrElementNotFound
	}
	return pos, nil
}

// PointerUp ends the gesture wherever the pointer is released.  The last
// computed position stays; there is no rollback.
func (d *DragController) PointerUp() {
	d.state = Idle
	d.target = dragTarget{}
}

// Arm marks an element for removal without dragging it.
func (d *DragController) Arm(floor int, id string) error {
	if _, ok := d.plan.Element(floor, id); !ok {
		return ErrElementNotFound
	}
	d.armed = &ElementRef{Floor: floor, ID: id}
	return nil
}

// Disarm clears the removal target.
func (d *DragController) Disarm() { d.armed = nil }

// Armed returns the element armed for removal, if any.
func (d *DragController) Armed() (ElementRef, bool) {
	if d.armed == nil {
		return ElementRef{}, false
	}
	return *d.armed, true
}

// RemoveArmed removes the armed element from the plan and disarms.  It
// reports whether an element was removed.
func (d *DragController) RemoveArmed() bool {
	if d.armed == nil {
		return false
	}
	ref := *d.armed
	d.armed = nil
	if d.state == Dragging && d.target.ref == ref {
		d.PointerUp()
	}
	return d.plan.RemoveElement(ref.Floor, ref.ID)
}
