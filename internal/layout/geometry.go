// Package layout implements the bus floor-plan authoring model: the
// coordinate mapper, the identity allocator, the floor-plan itself and the
// drag controller that moves elements around a floor container.  Everything
// in this package is in-memory and synchronous; callers own locking.
package layout

import "math"

// Point is a pixel coordinate in the host UI's viewport space.
type Point struct {
	X float64 `json:"x" validate:"min=-100000,max=100000"`
	Y float64 `json:"y" validate:"min=-100000,max=100000"`
}

// Size is a pixel width/height pair.
type Size struct {
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

// Rect is a pixel bounding box (left/top in viewport space).
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

// TopLeft returns the rectangle origin.
func (r Rect) TopLeft() Point { return Point{X: r.Left, Y: r.Top} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

func (r Rect) degenerate() bool { return !(r.Width > 0) || !(r.Height > 0) }

// Position is a resolution-independent location inside a floor container,
// expressed as percentages of the container width (X) and height (Y) with a
// top-left origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultPosition is where newly added elements are dropped.
var DefaultPosition = Position{X: 5, Y: 5}

// SizePercent returns the element size as a percentage of the container.
// A degenerate container yields a zero size.
func SizePercent(container Rect, element Size) Size {
	if container.degenerate() {
		return Size{}
	}
	return Size{
		Width:  element.Width / container.Width * 100,
		Height: element.Height / container.Height * 100,
	}
}

// Clamp keeps p inside [0, 100-size] on both axes so that an element of the
// given percentage size never renders outside its container.  When the
// element is larger than the container the position collapses to 0.
func Clamp(p Position, size Size) Position {
	return Position{
		X: clampAxis(p.X, size.Width),
		Y: clampAxis(p.Y, size.Height),
	}
}

func clampAxis(v, size float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 100-size))
}

// ToPercent converts a pixel offset, measured from the container's top-left
// corner to the element's top-left corner, into a clamped percentage
// position.  It never fails: a degenerate container maps to the origin.
func ToPercent(container Rect, element Size, offset Point) Position {
	if container.degenerate() {
		return Position{}
	}
	raw := Position{
		X: offset.X / container.Width * 100,
		Y: offset.Y / container.Height * 100,
	}
	return Clamp(raw, SizePercent(container, element))
}

// ToPixels converts a percentage position back into the pixel offset used
// to render the element inside a container of the given size.
func ToPixels(container Rect, p Position) Point {
	if container.degenerate() {
		return Point{}
	}
	return Point{
		X: p.X / 100 * container.Width,
		Y: p.Y / 100 * container.Height,
	}
}
