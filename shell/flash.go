package shell

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Guc10/bounce"
)

// flashDuration is how long the ball tint takes to settle after a bounce.
const flashDuration = 0.25

// colorTween animates the four components of a Color. Call Update(dt) each
// frame and read Color.
type colorTween struct {
	tweens [4]*gween.Tween
	Color  bounce.Color
	Done   bool
}

// tweenColor creates a tween from one color to another over duration seconds.
func tweenColor(from, to bounce.Color, duration float32, fn ease.TweenFunc) *colorTween {
	g := &colorTween{Color: from}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	return g
}

// Update advances all channels by dt seconds.
func (g *colorTween) Update(dt float32) {
	if g.Done {
		return
	}
	fields := [4]*float64{&g.Color.R, &g.Color.G, &g.Color.B, &g.Color.A}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// bounceFlash starts a flash from the hit colour back to the resting ball
// colour.
func bounceFlash(th Theme) *colorTween {
	return tweenColor(th.Flash, th.Ball, flashDuration, ease.OutQuad)
}
