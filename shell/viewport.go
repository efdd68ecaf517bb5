package shell

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Guc10/bounce"
)

// Viewport maps the NDC arena onto the largest centred square that fits a
// Width x Height screen. NDC y points up, screen y points down.
type Viewport struct {
	Width, Height int
}

// Side returns the edge length of the arena square in pixels.
func (v Viewport) Side() float64 {
	return float64(max(min(v.Width, v.Height), 0))
}

// Origin returns the top-left corner of the arena square.
func (v Viewport) Origin() (x, y float64) {
	s := v.Side()
	return (float64(v.Width) - s) / 2, (float64(v.Height) - s) / 2
}

// ToScreen converts an NDC point to screen pixels.
func (v Viewport) ToScreen(p mgl64.Vec2) (x, y float64) {
	e := bounce.ArenaExtent
	s := v.Side()
	ox, oy := v.Origin()
	return ox + (p[0]+e)/(2*e)*s, oy + (e-p[1])/(2*e)*s
}

// ToNDC converts screen pixels to NDC. Points outside the arena square map
// outside [-1, 1]. An empty viewport maps everything to the origin.
func (v Viewport) ToNDC(x, y float64) mgl64.Vec2 {
	s := v.Side()
	if s == 0 {
		return mgl64.Vec2{}
	}
	e := bounce.ArenaExtent
	ox, oy := v.Origin()
	return mgl64.Vec2{(x-ox)/s*2*e - e, e - (y-oy)/s*2*e}
}

// Scale converts an NDC length to pixels.
func (v Viewport) Scale(d float64) float64 {
	return d / (2 * bounce.ArenaExtent) * v.Side()
}
