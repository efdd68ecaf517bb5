package bounce

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyState is the part of a Ball that collision resolution reads and writes.
type BodyState struct {
	Position    mgl64.Vec2
	Velocity    mgl64.Vec2
	Radius      float64
	Reflectance float64
}

// CollisionPolicy resolves a circular body against static geometry.
// Implementations are stateless and never retain the body.
type CollisionPolicy interface {
	// Resolve returns the corrected state and the number of contacts found.
	Resolve(s BodyState) (BodyState, int)
	// Mesh returns the wall geometry as triangles for drawing.
	Mesh() ([]mgl64.Vec2, []uint16)
	Kind() PolicyKind
}

// --- Box ---

// Box keeps the ball inside an axis-aligned rectangle.
type Box struct {
	MinX, MaxX, MinY, MaxY float64
}

// DefaultBox returns the ±0.9 arena box.
func DefaultBox() Box {
	return Box{MinX: -0.9, MaxX: 0.9, MinY: -0.9, MaxY: 0.9}
}

// Kind implements CollisionPolicy.
func (Box) Kind() PolicyKind { return PolicyBox }

// Resolve clamps each axis independently, X first and then Y against the
// X-corrected state. A contact points that axis' velocity away from the wall
// at |v|*reflectance and scales the other axis by reflectance.
func (bx Box) Resolve(s BodyState) (BodyState, int) {
	contacts := 0
	r, refl := s.Radius, s.Reflectance

	if s.Position[0]-r < bx.MinX {
		s.Position[0] = bx.MinX + r
		s.Velocity[0] = math.Abs(s.Velocity[0]) * refl
		s.Velocity[1] *= refl
		contacts++
	} else if s.Position[0]+r > bx.MaxX {
		s.Position[0] = bx.MaxX - r
		s.Velocity[0] = -math.Abs(s.Velocity[0]) * refl
		s.Velocity[1] *= refl
		contacts++
	}

	if s.Position[1]-r < bx.MinY {
		s.Position[1] = bx.MinY + r
		s.Velocity[1] = math.Abs(s.Velocity[1]) * refl
		s.Velocity[0] *= refl
		contacts++
	} else if s.Position[1]+r > bx.MaxY {
		s.Position[1] = bx.MaxY - r
		s.Velocity[1] = -math.Abs(s.Velocity[1]) * refl
		s.Velocity[0] *= refl
		contacts++
	}

	return s, contacts
}

// Mesh returns the frame between the arena edge and the box as 8 triangles.
func (bx Box) Mesh() ([]mgl64.Vec2, []uint16) {
	e := ArenaExtent
	verts := []mgl64.Vec2{
		{-e, -e}, {e, -e}, {e, e}, {-e, e}, // outer, counter-clockwise
		{bx.MinX, bx.MinY}, {bx.MaxX, bx.MinY}, {bx.MaxX, bx.MaxY}, {bx.MinX, bx.MaxY},
	}
	inds := make([]uint16, 0, 24)
	for i := uint16(0); i < 4; i++ {
		j := (i + 1) % 4
		inds = append(inds, i, j, 4+i, j, 4+j, 4+i)
	}
	return verts, inds
}

// --- Polygon ---

// Polygon is a fixed set of solid triangles. Indices holds one triple per
// triangle into Vertices.
type Polygon struct {
	Vertices []mgl64.Vec2
	Indices  []uint16
}

// DefaultWedges returns the beveled corner wedges and the floor ramp.
func DefaultWedges() Polygon {
	return Polygon{
		Vertices: []mgl64.Vec2{
			{-1.0, -1.0},
			{-0.9, -0.9},
			{1.0, 1.0},
			{0.9, 0.9},
			{-1.0, 1.0},
			{-0.9, 0.9},
			{1.0, -1.0},
			{0.9, -0.9},
			{0.3, 0.0},
		},
		Indices: []uint16{
			0, 1, 5,
			0, 4, 5,
			0, 1, 7,
			0, 6, 7,
			2, 3, 4,
			2, 3, 6,
			3, 6, 7,
			3, 4, 5,
			1, 7, 8,
		},
	}
}

// Kind implements CollisionPolicy.
func (Polygon) Kind() PolicyKind { return PolicyWedges }

// Triangles returns the triangles described by Vertices and Indices.
// Out-of-range triples are skipped.
func (p Polygon) Triangles() []Triangle {
	tris := make([]Triangle, 0, len(p.Indices)/3)
	for i := 0; i+2 < len(p.Indices); i += 3 {
		a, b, c := int(p.Indices[i]), int(p.Indices[i+1]), int(p.Indices[i+2])
		if a >= len(p.Vertices) || b >= len(p.Vertices) || c >= len(p.Vertices) {
			continue
		}
		tris = append(tris, Triangle{p.Vertices[a], p.Vertices[b], p.Vertices[c]})
	}
	return tris
}

// contactTolerance is the relative slack on the squared-distance test. A
// push-out leaves the ball at the radius give or take rounding, and an edge
// shared by two triangles must not see that as a second overlap.
const contactTolerance = 1e-9

// Resolve visits every edge of every triangle. An edge whose closest point
// lies strictly closer than the radius pushes the ball out along the contact
// normal, reflects the velocity about the normal, scales it by reflectance
// and counts one contact. Later edges see the already-corrected position.
func (p Polygon) Resolve(s BodyState) (BodyState, int) {
	contacts := 0
	r := s.Radius
	r2 := r * r
	limit := r2 * (1 - contactTolerance)

	for _, tri := range p.Triangles() {
		for i, e := range tri.Edges() {
			closest := e.ClosestPoint(s.Position)
			diff := s.Position.Sub(closest)
			dist2 := diff.Dot(diff)
			if dist2 >= limit {
				continue
			}

			var normal mgl64.Vec2
			if dist2 > 0 {
				normal = diff.Mul(1 / math.Sqrt(dist2))
			} else {
				// Centre on the edge: push away from the triangle body.
				normal = perpendicular(e.A, e.B)
				if normal.Dot(tri.opposite(i).Sub(e.A)) > 0 {
					normal = normal.Mul(-1)
				}
				if normal == (mgl64.Vec2{}) {
					continue
				}
			}

			s.Position = closest.Add(normal.Mul(r))
			vn := s.Velocity.Dot(normal)
			s.Velocity = s.Velocity.Sub(normal.Mul(2 * vn))
			s.Velocity = s.Velocity.Mul(s.Reflectance)
			contacts++
		}
	}
	return s, contacts
}

// Mesh returns copies of Vertices and Indices.
func (p Polygon) Mesh() ([]mgl64.Vec2, []uint16) {
	verts := make([]mgl64.Vec2, len(p.Vertices))
	copy(verts, p.Vertices)
	inds := make([]uint16, len(p.Indices))
	copy(inds, p.Indices)
	return verts, inds
}

// --- Boundaries ---

// Boundaries holds the static arena geometry for the lifetime of a run.
type Boundaries struct {
	policy CollisionPolicy
}

// NewBoundaries wraps a collision policy. A nil policy uses DefaultBox.
func NewBoundaries(policy CollisionPolicy) *Boundaries {
	if policy == nil {
		policy = DefaultBox()
	}
	return &Boundaries{policy: policy}
}

// DefaultBoundaries returns boundaries with the default geometry for kind.
func DefaultBoundaries(kind PolicyKind) *Boundaries {
	if kind == PolicyWedges {
		return NewBoundaries(DefaultWedges())
	}
	return NewBoundaries(DefaultBox())
}

// Policy returns the active collision policy.
func (bd *Boundaries) Policy() CollisionPolicy { return bd.policy }

// Kind returns the active policy kind.
func (bd *Boundaries) Kind() PolicyKind { return bd.policy.Kind() }

// ResolveCollision corrects the ball's position and velocity against the
// geometry and returns the number of impacts resolved.
func (bd *Boundaries) ResolveCollision(b *Ball) int {
	s, n := bd.policy.Resolve(b.State())
	b.setState(s.Position, s.Velocity)
	return n
}

// Mesh returns the drawable wall triangles.
func (bd *Boundaries) Mesh() ([]mgl64.Vec2, []uint16) {
	return bd.policy.Mesh()
}
