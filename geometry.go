package bounce

import "github.com/go-gl/mathgl/mgl64"

// Segment is a finite line segment from A to B.
type Segment struct {
	A, B mgl64.Vec2
}

// Triangle is a solid triangular wall piece.
type Triangle struct {
	A, B, C mgl64.Vec2
}

// Edges returns the three edges AB, BC and CA, in that order.
func (t Triangle) Edges() [3]Segment {
	return [3]Segment{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

// opposite returns the vertex not on edge i.
func (t Triangle) opposite(i int) mgl64.Vec2 {
	switch i {
	case 0:
		return t.C
	case 1:
		return t.A
	default:
		return t.B
	}
}

// ClosestPointOnSegment projects p onto the segment ab, clamped to its
// endpoints. A zero-length segment returns a.
func ClosestPointOnSegment(p, a, b mgl64.Vec2) mgl64.Vec2 {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return a
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/den, 0, 1)
	return a.Add(ab.Mul(t))
}

// ClosestPoint is ClosestPointOnSegment for s.
func (s Segment) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	return ClosestPointOnSegment(p, s.A, s.B)
}

// perpendicular returns the unit left-perpendicular of the segment from a
// to b, or the zero vector for a degenerate segment.
func perpendicular(a, b mgl64.Vec2) mgl64.Vec2 {
	d := b.Sub(a)
	ln := d.Len()
	if ln < 1e-12 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{-d[1] / ln, d[0] / ln}
}

// Contains reports whether p lies inside or on t, for either winding.
func (t Triangle) Contains(p mgl64.Vec2) bool {
	d1 := cross(t.A, t.B, p)
	d2 := cross(t.B, t.C, p)
	d3 := cross(t.C, t.A, p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p mgl64.Vec2) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// MeshContains reports whether p lies in any triangle of an indexed mesh as
// returned by CollisionPolicy.Mesh.
func MeshContains(verts []mgl64.Vec2, inds []uint16, p mgl64.Vec2) bool {
	for i := 0; i+2 < len(inds); i += 3 {
		a, b, c := int(inds[i]), int(inds[i+1]), int(inds[i+2])
		if a >= len(verts) || b >= len(verts) || c >= len(verts) {
			continue
		}
		if (Triangle{verts[a], verts[b], verts[c]}).Contains(p) {
			return true
		}
	}
	return false
}
