package term

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Guc10/bounce"
)

// Grid maps the NDC arena onto terminal cells. Cells are about twice as
// tall as they are wide, so the arena spans twice as many columns as rows.
// The bottom row is reserved for the status line.
type Grid struct {
	Width, Height int
}

// Arena returns the cell rectangle holding the arena.
func (g Grid) Arena() (x, y, w, h int) {
	h = max(min(g.Height-1, g.Width/2), 0)
	w = 2 * h
	return (g.Width - w) / 2, (g.Height - 1 - h) / 2, w, h
}

// CellCenter returns the NDC point at the centre of a cell.
func (g Grid) CellCenter(col, row int) mgl64.Vec2 {
	x, y, w, h := g.Arena()
	if w == 0 || h == 0 {
		return mgl64.Vec2{}
	}
	e := bounce.ArenaExtent
	return mgl64.Vec2{
		(float64(col-x)+0.5)/float64(w)*2*e - e,
		e - (float64(row-y)+0.5)/float64(h)*2*e,
	}
}

// ToCell returns the cell containing an NDC point.
func (g Grid) ToCell(p mgl64.Vec2) (col, row int) {
	x, y, w, h := g.Arena()
	e := bounce.ArenaExtent
	fx := (p[0] + e) / (2 * e) * float64(w)
	fy := (e - p[1]) / (2 * e) * float64(h)
	return x + int(math.Floor(fx)), y + int(math.Floor(fy))
}
