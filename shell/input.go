package shell

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Guc10/bounce"
)

// Parameter step sizes for the G, R and A keys.
const (
	gravityStep     = 1.0
	reflectanceStep = 0.1
	radiusStep      = 0.01
)

// readPointer samples the first active touch, falling back to the mouse.
func (g *Game) readPointer() (x, y float64, pressed bool) {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		tx, ty := ebiten.TouchPosition(g.touches[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (g *Game) processPointer() {
	x, y, pressed := g.readPointer()
	if cmd, ok := g.pointer.Track(g.vp.ToNDC(x, y), pressed); ok {
		g.sim.Enqueue(cmd)
	}
}

func shiftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftRight)
}

func (g *Game) processKeys() error {
	shift := shiftPressed()
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if err := g.handleKey(k, shift); err != nil {
			return err
		}
	}
	return nil
}

// nudge steps v up, or down when shift is held.
func nudge(v, step float64, shift bool) float64 {
	if shift {
		return v - step
	}
	return v + step
}

// handleKey maps one key press to simulation commands or shell state.
// Esc returns ebiten.Termination.
func (g *Game) handleKey(k ebiten.Key, shift bool) error {
	b := g.sim.Ball()
	switch k {
	case ebiten.KeySpace:
		g.sim.Enqueue(bounce.Command{Type: bounce.CommandToggle})
	case ebiten.KeyG:
		g.sim.Enqueue(bounce.Command{Type: bounce.CommandSetGravity, Value: nudge(b.Gravity(), gravityStep, shift)})
	case ebiten.KeyR:
		g.sim.Enqueue(bounce.Command{Type: bounce.CommandSetReflectance, Value: nudge(b.Reflectance(), reflectanceStep, shift)})
	case ebiten.KeyA:
		g.sim.Enqueue(bounce.Command{Type: bounce.CommandSetRadius, Value: nudge(b.Radius(), radiusStep, shift)})
	case ebiten.KeyBackspace:
		g.sim.Enqueue(bounce.Command{Type: bounce.CommandReset})
	case ebiten.KeyP:
		next := bounce.PolicyWedges
		if g.sim.Boundaries().Kind() == bounce.PolicyWedges {
			next = bounce.PolicyBox
		}
		g.sim.Enqueue(bounce.Command{Type: bounce.CommandSetPolicy, Policy: next})
	case ebiten.KeyT:
		g.theme = (g.theme + 1) % len(Themes)
	case ebiten.KeyF12:
		g.Screenshot("manual")
	case ebiten.KeyEscape:
		return ebiten.Termination
	}
	return nil
}
