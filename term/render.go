package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Guc10/bounce"
)

const (
	wallRune  = '▒'
	ballRune  = '█'
	trailRune = '·'
)

// palette holds the cell styles for one theme.
type palette struct {
	name   string
	bg     tcell.Style
	wall   tcell.Style
	ball   tcell.Style
	flash  tcell.Style
	drag   tcell.Style
	status tcell.Style
}

var palettes = []palette{
	{
		name:   "dark",
		bg:     tcell.StyleDefault.Background(tcell.ColorBlack),
		wall:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 95, 115)).Background(tcell.ColorBlack),
		ball:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(242, 140, 51)).Background(tcell.ColorBlack),
		flash:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		drag:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 204, 255)).Background(tcell.ColorBlack),
		status: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(90, 95, 115)),
	},
	{
		name:   "light",
		bg:     tcell.StyleDefault.Background(tcell.NewRGBColor(235, 235, 230)),
		wall:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 107, 128)).Background(tcell.NewRGBColor(235, 235, 230)),
		ball:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(217, 64, 51)).Background(tcell.NewRGBColor(235, 235, 230)),
		flash:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.NewRGBColor(235, 235, 230)),
		drag:   tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.NewRGBColor(235, 235, 230)),
		status: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(100, 107, 128)),
	},
}

// cellWriter is the part of tcell.Screen the renderer draws through.
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// drawArena paints walls and the ball into the arena rectangle of grid.
func drawArena(w cellWriter, grid Grid, sim *bounce.Simulation, pal palette, flashing bool) {
	x0, y0, aw, ah := grid.Arena()
	verts, inds := sim.Boundaries().Mesh()
	b := sim.Ball()
	c, r2 := b.Position(), b.Radius()*b.Radius()

	ballStyle := pal.ball
	if flashing {
		ballStyle = pal.flash
	}

	for row := y0; row < y0+ah; row++ {
		for col := x0; col < x0+aw; col++ {
			p := grid.CellCenter(col, row)
			d := p.Sub(c)
			switch {
			case d.Dot(d) <= r2:
				w.SetContent(col, row, ballRune, nil, ballStyle)
			case bounce.MeshContains(verts, inds, p):
				w.SetContent(col, row, wallRune, nil, pal.wall)
			default:
				w.SetContent(col, row, ' ', nil, pal.bg)
			}
		}
	}

	if sim.Dragging() {
		drawDrag(w, grid, c.Sub(sim.DragVector()), c, pal.drag)
	}

	// A ball smaller than one cell still shows up.
	col, row := grid.ToCell(c)
	if col >= x0 && col < x0+aw && row >= y0 && row < y0+ah {
		w.SetContent(col, row, ballRune, nil, ballStyle)
	}
}

// drawDrag marks the cells between the press point and the pointer.
func drawDrag(w cellWriter, grid Grid, from, to mgl64.Vec2, style tcell.Style) {
	_, _, aw, _ := grid.Arena()
	n := max(aw, 1)
	for i := 0; i < n; i++ {
		p := from.Add(to.Sub(from).Mul(float64(i) / float64(n)))
		col, row := grid.ToCell(p)
		w.SetContent(col, row, trailRune, nil, style)
	}
}

// statusText returns the status line contents.
func statusText(sim *bounce.Simulation, theme string) string {
	b := sim.Ball()
	state := "stopped"
	if sim.Running() {
		state = "running"
	}
	if sim.Dragging() {
		state = "dragging"
	}
	return fmt.Sprintf(" %s | g %.2f | refl %.2f | r %.2f | %s | %s | space g/r/a(+shift) bksp p t esc",
		state, b.Gravity(), b.Reflectance(), b.Radius(), sim.Boundaries().Kind(), theme)
}

// drawStatus writes text on the last row, padded to width.
func drawStatus(w cellWriter, grid Grid, text string, style tcell.Style) {
	row := grid.Height - 1
	if row < 0 {
		return
	}
	col := 0
	for _, r := range text {
		if col >= grid.Width {
			return
		}
		w.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < grid.Width; col++ {
		w.SetContent(col, row, ' ', nil, style)
	}
}
