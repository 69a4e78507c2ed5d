package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementType identifies the kind of object placed on a floor.
type ElementType string

const (
	TypeSeat     ElementType = "seat"
	TypeBathroom ElementType = "bathroom"
	TypeStairs   ElementType = "stairs"
)

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	switch t {
	case TypeSeat, TypeBathroom, TypeStairs:
		return true
	}
	return false
}

// Display name prefixes for non-seat elements.
const (
	BathroomPrefix = "Baño "
	StairsPrefix   = "Escalera "
)

// Allocator hands out display names and identifiers.  Seat counters are
// kept per seat-type code; bathroom and stairs each have one counter.  All
// counters are scoped to the whole layout, not to a floor, and start at 1.
type Allocator struct {
	seats    map[string]int
	bathroom int
	stairs   int
}

// NewAllocator returns an allocator with every counter at 1.
func NewAllocator() *Allocator {
	return &Allocator{seats: make(map[string]int), bathroom: 1, stairs: 1}
}

func (a *Allocator) seatCounter(code string) int {
	if n, ok := a.seats[code]; ok {
		return n
	}
	return 1
}

// NextSeatName returns "<code><n>" and advances the counter for code.
func (a *Allocator) NextSeatName(code string) string {
	name := a.peekName(TypeSeat, code)
	a.advance(TypeSeat, code)
	return name
}

// NextBathroomName returns "Baño <n>" and advances the bathroom counter.
func (a *Allocator) NextBathroomName() string {
	name := a.peekName(TypeBathroom, "")
	a.advance(TypeBathroom, "")
	return name
}

// NextStairsName returns "Escalera <n>" and advances the stairs counter.
func (a *Allocator) NextStairsName() string {
	name := a.peekName(TypeStairs, "")
	a.advance(TypeStairs, "")
	return name
}

// peekName returns the name the next allocation of t would produce without
// consuming the counter.
func (a *Allocator) peekName(t ElementType, code string) string {
	switch t {
	case TypeSeat:
		return code + strconv.Itoa(a.seatCounter(code))
	case TypeBathroom:
		return BathroomPrefix + strconv.Itoa(a.bathroom)
	case TypeStairs:
		return StairsPrefix + strconv.Itoa(a.stairs)
	}
	return ""
}

func (a *Allocator) advance(t ElementType, code string) {
	switch t {
	case TypeSeat:
		a.seats[code] = a.seatCounter(code) + 1
	case TypeBathroom:
		a.bathroom++
	case TypeStairs:
		a.stairs++
	}
}

// AllocateID derives the deterministic element id from its type and name:
// seat-<code>-<name>, bath-<n> or stairs-<n>, all lower-cased.  Seat-type
// codes differing only by case therefore map to the same id space.
func AllocateID(t ElementType, code, name string) string {
	switch t {
	case TypeSeat:
		return fmt.Sprintf("seat-%s-%s", strings.ToLower(code), strings.ToLower(name))
	case TypeBathroom:
		return "bath-" + strings.ToLower(strings.TrimPrefix(name, BathroomPrefix))
	case TypeStairs:
		return "stairs-" + strings.ToLower(strings.TrimPrefix(name, StairsPrefix))
	}
	return strings.ToLower(string(t) + "-" + name)
}

// IsUnique reports whether id is absent from every floor of plan.
func IsUnique(id string, plan *FloorPlan) bool {
	if plan == nil {
		return true
	}
	for _, floor := range plan.floorNumbers() {
		for _, el := range plan.elements[floor] {
			if el.ID == id {
				return false
			}
		}
	}
	return true
}

// Restore advances the counters past every name already present in
// layout so that re-opening a saved layout keeps numbering monotonic.
// Names that do not follow the generated pattern are ignored.
func (a *Allocator) Restore(l Layout) {
	for _, elements := range l {
		for _, el := range elements {
			switch el.Type {
			case TypeSeat:
				code, n, ok := seatCodeAndNumber(el)
				if ok && n >= a.seatCounter(code) {
					a.seats[code] = n + 1
				}
			case TypeBathroom:
				if n, err := strconv.Atoi(strings.TrimPrefix(el.Name, BathroomPrefix)); err == nil && n >= a.bathroom {
					a.bathroom = n + 1
				}
			case TypeStairs:
				if n, err := strconv.Atoi(strings.TrimPrefix(el.Name, StairsPrefix)); err == nil && n >= a.stairs {
					a.stairs = n + 1
				}
			}
		}
	}
}

// seatCodeAndNumber recovers the seat-type code and running number of a
// generated seat.  The code is read from the id (seat-<code>-<name>) so
// codes ending in a digit ("A2" -> "A21") split correctly; its casing is
// taken from the name.  Seats whose id does not follow the pattern fall
// back to splitting the name at its trailing digits.
func seatCodeAndNumber(el Element) (string, int, bool) {
	rest, ok := strings.CutPrefix(el.ID, "seat-")
	lowerName := strings.ToLower(el.Name)
	if ok && strings.HasSuffix(rest, "-"+lowerName) {
		lowerCode := rest[:len(rest)-len(lowerName)-1]
		if len(lowerCode) < len(el.Name) && strings.ToLower(el.Name[:len(lowerCode)]) == lowerCode {
			code := el.Name[:len(lowerCode)]
			if n, err := strconv.Atoi(el.Name[len(lowerCode):]); err == nil && code != "" {
				return code, n, true
			}
		}
	}
	return splitSeatName(el.Name)
}

// splitSeatName splits "VIP12" into ("VIP", 12).
func splitSeatName(name string) (string, int, bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(name) {
		return "", 0, false
	}
	n, err := strconv.Atoi(name[i:])
	if err != nil {
		return "", 0, false
	}
	return name[:i], n, true
}
