package shell

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Guc10/bounce"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for solid-colour triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// appendTriangles converts NDC triangles to screen-space vertices tinted by c
// (premultiplied) and appends them to verts/inds. Indices are rebased on the
// vertices already present.
func appendTriangles(verts []ebiten.Vertex, inds []uint16, points []mgl64.Vec2, indices []uint16, vp Viewport, c bounce.Color) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for _, p := range points {
		x, y := vp.ToScreen(p)
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for _, i := range indices {
		inds = append(inds, base+i)
	}
	return verts, inds
}

// meshBuilder accumulates the frame's triangles so they go out in one
// DrawTriangles call. Buffers are reused across frames.
type meshBuilder struct {
	verts []ebiten.Vertex
	inds  []uint16
	// fan caches bounce.FanIndices for the last vertex count.
	fan      []uint16
	fanCount int
}

func (m *meshBuilder) reset() {
	m.verts = m.verts[:0]
	m.inds = m.inds[:0]
}

func (m *meshBuilder) addBoundaries(bd *bounce.Boundaries, vp Viewport, c bounce.Color) {
	pts, idx := bd.Mesh()
	m.verts, m.inds = appendTriangles(m.verts, m.inds, pts, idx, vp, c)
}

func (m *meshBuilder) addBall(b *bounce.Ball, vp Viewport, c bounce.Color) {
	if n := b.VertexCount(); n != m.fanCount {
		m.fan = bounce.FanIndices(n)
		m.fanCount = n
	}
	m.verts, m.inds = appendTriangles(m.verts, m.inds, b.Vertices(), m.fan, vp, c)
}

// addLine appends a quad of the given pixel width from a to b (NDC).
func (m *meshBuilder) addLine(a, b mgl64.Vec2, width float64, vp Viewport, c bounce.Color) {
	ax, ay := vp.ToScreen(a)
	bx, by := vp.ToScreen(b)
	d := mgl64.Vec2{bx - ax, by - ay}
	l := d.Len()
	if l == 0 {
		return
	}
	n := mgl64.Vec2{-d[1] / l, d[0] / l}.Mul(width / 2)
	m.addQuad([4]mgl64.Vec2{
		{ax + n[0], ay + n[1]},
		{bx + n[0], by + n[1]},
		{bx - n[0], by - n[1]},
		{ax - n[0], ay - n[1]},
	}, c)
}

// addRect appends a screen-space rectangle.
func (m *meshBuilder) addRect(x, y, w, h float64, c bounce.Color) {
	m.addQuad([4]mgl64.Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, c)
}

// addQuad appends four screen-space corners in winding order.
func (m *meshBuilder) addQuad(q [4]mgl64.Vec2, c bounce.Color) {
	base := uint16(len(m.verts))
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for _, p := range q {
		m.verts = append(m.verts, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	m.inds = append(m.inds, base, base+1, base+2, base, base+2, base+3)
}

func (m *meshBuilder) draw(screen *ebiten.Image) {
	if len(m.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles(m.verts, m.inds, ensureWhitePixel(), &op)
}
