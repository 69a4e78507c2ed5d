package layout

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SeatStatus is the sale-time state of a seat.  It is empty while a layout
// is being authored.
type SeatStatus string

const (
	StatusFree     SeatStatus = "free"
	StatusReserved SeatStatus = "reserved"
)

// ParseSeatStatus accepts the long form as well as the single-letter codes
// ("f", "r") the sales backend emits.  Anything unrecognised is free.
func ParseSeatStatus(s string) SeatStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "reserved":
		return StatusReserved
	}
	return StatusFree
}

// UnmarshalJSON normalises statuses read from stored or fetched layouts, so
// "r" decodes as reserved.  An empty status stays empty.
func (s *SeatStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*s = ""
		return nil
	}
	*s = ParseSeatStatus(raw)
	return nil
}

// Element is one placed object on a floor.
type Element struct {
	ID             string      `json:"id"`
	Type           ElementType `json:"type"`
	Name           string      `json:"name"`
	Position       Position    `json:"position"`
	AdditionalCost float64     `json:"additionalCost,omitempty"`
	Status         SeatStatus  `json:"status,omitempty"`
}

// IsSeat reports whether the element is a seat.
func (e Element) IsSeat() bool { return e.Type == TypeSeat }

// Layout is the serialized shape of a floor plan: floor number to the
// ordered elements on that floor.  It round-trips through JSON with string
// keys ("1", "2").
type Layout map[int][]Element

// Floors returns the floor numbers present in l in ascending order.
func (l Layout) Floors() []int {
	floors := make([]int, 0, len(l))
	for f := range l {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

// Clone returns a deep copy of l.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for f, elements := range l {
		out[f] = append([]Element(nil), elements...)
	}
	return out
}

// MaxFloors is the largest floor count a bus layout may have.
const MaxFloors = 2

// FloorPlan is the authoritative in-memory layout being authored.  The zero
// value is not usable; construct one with NewFloorPlan or FromLayout.
type FloorPlan struct {
	floorCount int
	elements   map[int][]Element
	alloc      *Allocator
	seatCosts  map[string]float64
}

// NewFloorPlan returns an empty single-floor plan.
func NewFloorPlan() *FloorPlan {
	return &FloorPlan{
		floorCount: 1,
		elements:   map[int][]Element{1: {}},
		alloc:      NewAllocator(),
	}
}

// FromLayout rebuilds an editable plan from a persisted layout.  Sale-time
// statuses are dropped and the name counters continue after the highest
// existing names.
//
// Stored positions are only clamped to [0,100]; the element size is not
// known here.  Full containment of the element box holds for positions the
// mapper produced, not for hand-edited layouts.
func FromLayout(l Layout) (*FloorPlan, error) {
	p := NewFloorPlan()
	seen := make(map[string]struct{})
	for _, f := range l.Floors() {
		if f < 1 || f > MaxFloors {
			return nil, fmt.Errorf("floor %d: %w", f, ErrFloorOutOfRange)
		}
		if f > p.floorCount {
			p.floorCount = f
		}
		elements := make([]Element, 0, len(l[f]))
		for _, el := range l[f] {
			if !el.Type.Valid() {
				return nil, fmt.Errorf("element %q: %w", el.ID, ErrInvalidType)
			}
			if _, dup := seen[el.ID]; dup {
				return nil, fmt.Errorf("id %q: %w", el.ID, ErrDuplicateID)
			}
			seen[el.ID] = struct{}{}
			el.Status = ""
			el.Position = Clamp(el.Position, Size{})
			elements = append(elements, el)
		}
		p.elements[f] = elements
	}
	for f := 1; f <= p.floorCount; f++ {
		if p.elements[f] == nil {
			p.elements[f] = []Element{}
		}
	}
	p.alloc.Restore(l)
	return p, nil
}

// SetSeatTypes installs the seat-type catalog as code -> surcharge.  Once
// a catalog is installed, seats can only be added with a listed code.
func (p *FloorPlan) SetSeatTypes(costs map[string]float64) {
	p.seatCosts = make(map[string]float64, len(costs))
	for code, cost := range costs {
		if cost < 0 {
			cost = 0
		}
		p.seatCosts[code] = cost
	}
}

// FloorCount returns the number of floors (1 or 2).
func (p *FloorPlan) FloorCount() int { return p.floorCount }

func (p *FloorPlan) hasFloor(floor int) bool { return floor >= 1 && floor <= p.floorCount }

func (p *FloorPlan) floorNumbers() []int {
	floors := make([]int, 0, p.floorCount)
	for f := 1; f <= p.floorCount; f++ {
		floors = append(floors, f)
	}
	return floors
}

// Elements returns a copy of the elements on floor.
func (p *FloorPlan) Elements(floor int) []Element {
	return append([]Element(nil), p.elements[floor]...)
}

// Element looks up id on floor.
func (p *FloorPlan) Element(floor int, id string) (Element, bool) {
	if i := p.indexOf(floor, id); i >= 0 {
		return p.elements[floor][i], true
	}
	return Element{}, false
}

func (p *FloorPlan) indexOf(floor int, id string) int {
	for i, el := range p.elements[floor] {
		if el.ID == id {
			return i
		}
	}
	return -1
}

// AddElement places a new element of type t on floor at DefaultPosition.
// Seats need a seat-type code.  The counter is only consumed when the add
// succeeds, so a rejected attempt leaves both the plan and the numbering
// unchanged.
func (p *FloorPlan) AddElement(floor int, t ElementType, seatTypeCode string) (Element, error) {
	if !t.Valid() {
		return Element{}, ErrInvalidType
	}
	if !p.hasFloor(floor) {
		return Element{}, fmt.Errorf("floor %d: %w", floor, ErrFloorOutOfRange)
	}
	code := strings.TrimSpace(seatTypeCode)
	el := Element{Type: t, Position: DefaultPosition}
	if t == TypeSeat {
		if code == "" {
			return Element{}, ErrSeatTypeRequired
		}
		if p.seatCosts != nil {
			cost, ok := p.seatCosts[code]
			if !ok {
				return Element{}, fmt.Errorf("seat type %q: %w", code, ErrUnknownSeatType)
			}
			el.AdditionalCost = cost
		}
	} else {
		code = ""
	}
	el.Name = p.alloc.peekName(t, code)
	el.ID = AllocateID(t, code, el.Name)
	if !IsUnique(el.ID, p) {
		return Element{}, fmt.Errorf("id %q: %w", el.ID, ErrDuplicateID)
	}
	p.alloc.advance(t, code)
	p.elements[floor] = append(p.elements[floor], el)
	return el, nil
}

// RemoveElement deletes id from floor.  It reports whether anything was
// removed; removing an absent id is not an error.
func (p *FloorPlan) RemoveElement(floor int, id string) bool {
	i := p.indexOf(floor, id)
	if i < 0 {
		return false
	}
	elements := p.elements[floor]
	p.elements[floor] = append(elements[:i:i], elements[i+1:]...)
	return true
}

// RepositionElement moves id on floor to the percentage position derived
// from a pixel offset inside container.  size is the element's rendered
// pixel size, used for clamping.  It is a no-op when id is not on floor.
func (p *FloorPlan) RepositionElement(floor int, id string, offset Point, container Rect, size Size) (Position, bool) {
	i := p.indexOf(floor, id)
	if i < 0 {
		return Position{}, false
	}
	pos := ToPercent(container, size, offset)
	p.elements[floor][i].Position = pos
	return pos, true
}

// SetFloorCount switches between one and two floors.  The count is frozen
// once the first floor holds an element; shrinking is also refused while
// the second floor holds elements so that no authored data is discarded.
func (p *FloorPlan) SetFloorCount(n int) error {
	if n < 1 || n > MaxFloors {
		return ErrInvalidFloorCount
	}
	if n == p.floorCount {
		return nil
	}
	if len(p.elements[1]) > 0 {
		return ErrFloorCountLocked
	}
	if n < p.floorCount {
		for f := n + 1; f <= p.floorCount; f++ {
			if len(p.elements[f]) > 0 {
				return ErrFloorCountLocked
			}
			delete(p.elements, f)
		}
	} else {
		for f := p.floorCount + 1; f <= n; f++ {
			if p.elements[f] == nil {
				p.elements[f] = []Element{}
			}
		}
	}
	p.floorCount = n
	return nil
}

// Serialize returns a value snapshot of the plan suitable for persistence.
func (p *FloorPlan) Serialize() Layout {
	out := make(Layout, p.floorCount)
	for _, f := range p.floorNumbers() {
		out[f] = p.Elements(f)
	}
	return out
}

// ValidateForSave checks the conditions required before a layout may be
// handed to persistence.
func (p *FloorPlan) ValidateForSave(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(p.elements[1]) == 0 {
		return ErrEmptyFirstFloor
	}
	return nil
}

// SeatCount returns the number of seats across all floors.
func (p *FloorPlan) SeatCount() int {
	n := 0
	for _, f := range p.floorNumbers() {
		for _, el := range p.elements[f] {
			if el.IsSeat() {
				n++
			}
		}
	}
	return n
}
