package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPercent_Clamping(t *testing.T) {
	container := Rect{Left: 100, Top: 50, Width: 220, Height: 500}
	seat := Size{Width: 22, Height: 50} // 10% x 10%

	tests := []struct {
		name   string
		offset Point
		want   Position
	}{
		{name: "inside", offset: Point{X: 44, Y: 100}, want: Position{X: 20, Y: 20}},
		{name: "far right and above", offset: Point{X: 330, Y: -50}, want: Position{X: 90, Y: 0}},
		{name: "negative both", offset: Point{X: -1000, Y: -1}, want: Position{X: 0, Y: 0}},
		{name: "beyond bottom", offset: Point{X: 0, Y: 10000}, want: Position{X: 0, Y: 90}},
		{name: "exact max edge", offset: Point{X: 198, Y: 450}, want: Position{X: 90, Y: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPercent(container, seat, tt.offset)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestToPercent_AlwaysInBounds(t *testing.T) {
	container := Rect{Width: 300, Height: 600}
	size := Size{Width: 24, Height: 24}
	pct := SizePercent(container, size)
	for x := -2000.0; x <= 2000; x += 37 {
		for y := -2000.0; y <= 2000; y += 41 {
			p := ToPercent(container, size, Point{X: x, Y: y})
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.LessOrEqual(t, p.X, 100-pct.Width+1e-9)
			assert.LessOrEqual(t, p.Y, 100-pct.Height+1e-9)
		}
	}
}

func TestToPercent_DegenerateContainer(t *testing.T) {
	assert.Equal(t, Position{}, ToPercent(Rect{Width: 0, Height: 100}, Size{}, Point{X: 10, Y: 10}))
	assert.Equal(t, Point{}, ToPixels(Rect{Width: 100, Height: -1}, Position{X: 50, Y: 50}))
}

func TestClamp_OversizedElementCollapsesToOrigin(t *testing.T) {
	got := Clamp(Position{X: 40, Y: 40}, Size{Width: 120, Height: 150})
	assert.Equal(t, Position{X: 0, Y: 0}, got)
	assert.Equal(t, Position{}, Clamp(Position{X: math.NaN(), Y: 0}, Size{}))
}

func TestToPixels_RoundTrip(t *testing.T) {
	container := Rect{Width: 220, Height: 500}
	p := Position{X: 25, Y: 40}
	px := ToPixels(container, p)
	assert.InDelta(t, 55, px.X, 1e-9)
	assert.InDelta(t, 200, px.Y, 1e-9)

	back := ToPercent(container, Size{}, px)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}
