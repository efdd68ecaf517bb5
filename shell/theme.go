package shell

import (
	"image/color"

	"github.com/Guc10/bounce"
)

// Theme is a palette for the window.
type Theme struct {
	Name       string
	Background bounce.Color
	Wall       bounce.Color
	Ball       bounce.Color
	Flash      bounce.Color
	Drag       bounce.Color
	Panel      bounce.Color
}

// Themes lists the palettes T cycles through. The first is the default.
var Themes = []Theme{
	{
		Name:       "dark",
		Background: bounce.Color{R: 0.06, G: 0.06, B: 0.09, A: 1},
		Wall:       bounce.Color{R: 0.35, G: 0.37, B: 0.45, A: 1},
		Ball:       bounce.Color{R: 0.95, G: 0.55, B: 0.2, A: 1},
		Flash:      bounce.ColorWhite,
		Drag:       bounce.Color{R: 0.55, G: 0.8, B: 1, A: 0.8},
		Panel:      bounce.Color{R: 0, G: 0, B: 0, A: 0.5},
	},
	{
		Name:       "light",
		Background: bounce.Color{R: 0.92, G: 0.92, B: 0.9, A: 1},
		Wall:       bounce.Color{R: 0.4, G: 0.42, B: 0.5, A: 1},
		Ball:       bounce.Color{R: 0.85, G: 0.25, B: 0.2, A: 1},
		Flash:      bounce.Color{R: 1, G: 0.85, B: 0.2, A: 1},
		Drag:       bounce.Color{R: 0.2, G: 0.4, B: 0.8, A: 0.8},
		Panel:      bounce.Color{R: 0.1, G: 0.1, B: 0.15, A: 0.7},
	},
}

// toRGBA converts a straight-alpha Color to an 8-bit premultiplied color.
func toRGBA(c bounce.Color) color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
