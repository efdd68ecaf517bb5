package bounce

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- ClosestPointOnSegment ---

func TestClosestPointOnSegment(t *testing.T) {
	a, b := mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}
	tests := []struct {
		name string
		p    mgl64.Vec2
		want mgl64.Vec2
	}{
		{"interior", mgl64.Vec2{0.5, 1}, mgl64.Vec2{0.5, 0}},
		{"before a", mgl64.Vec2{-3, 1}, a},
		{"past b", mgl64.Vec2{5, -1}, b},
		{"on segment", mgl64.Vec2{1.5, 0}, mgl64.Vec2{1.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, a, b)
			if !vecApproxEqual(got, tt.want, epsilon) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClosestPointOnDegenerateSegment(t *testing.T) {
	a := mgl64.Vec2{0.3, -0.4}
	got := ClosestPointOnSegment(mgl64.Vec2{1, 1}, a, a)
	if got != a {
		t.Errorf("got %v, want endpoint %v", got, a)
	}
}

func TestTriangleEdges(t *testing.T) {
	tri := Triangle{mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}}
	e := tri.Edges()
	if e[0] != (Segment{tri.A, tri.B}) || e[1] != (Segment{tri.B, tri.C}) || e[2] != (Segment{tri.C, tri.A}) {
		t.Errorf("edges = %v", e)
	}
}

// --- Box ---

func TestBoxInsideIsNoop(t *testing.T) {
	box := DefaultBox()
	positions := []mgl64.Vec2{{0, 0}, {-0.79, -0.79}, {0.79, 0.79}, {0.5, -0.3}}
	for _, p := range positions {
		in := BodyState{Position: p, Velocity: mgl64.Vec2{1.5, -2}, Radius: 0.1, Reflectance: 0.8}
		out, n := box.Resolve(in)
		if n != 0 || out != in {
			t.Errorf("pos %v: contacts=%d out=%+v, want untouched", p, n, out)
		}
	}
}

func TestBoxLeftWall(t *testing.T) {
	box := DefaultBox()
	v := 2.0
	in := BodyState{Position: mgl64.Vec2{-0.85, 0}, Velocity: mgl64.Vec2{-v, 0}, Radius: 0.1, Reflectance: 0.8}

	out, n := box.Resolve(in)

	if n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if out.Position[0] != box.MinX+0.1 {
		t.Errorf("x = %v, want %v", out.Position[0], box.MinX+0.1)
	}
	if out.Velocity[0] != v*0.8 {
		t.Errorf("vx = %v, want %v", out.Velocity[0], v*0.8)
	}
	if out.Velocity[1] != 0 {
		t.Errorf("vy = %v, want 0", out.Velocity[1])
	}
}

func TestBoxWalls(t *testing.T) {
	box := DefaultBox()
	tests := []struct {
		name    string
		pos     mgl64.Vec2
		vel     mgl64.Vec2
		wantPos mgl64.Vec2
		wantVel mgl64.Vec2
	}{
		{"right", mgl64.Vec2{0.85, 0}, mgl64.Vec2{2, 1}, mgl64.Vec2{0.8, 0}, mgl64.Vec2{-1, 0.5}},
		{"floor", mgl64.Vec2{0, -0.95}, mgl64.Vec2{1, -4}, mgl64.Vec2{0, -0.8}, mgl64.Vec2{0.5, 2}},
		{"ceiling", mgl64.Vec2{0, 0.85}, mgl64.Vec2{-1, 4}, mgl64.Vec2{0, 0.8}, mgl64.Vec2{-0.5, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := BodyState{Position: tt.pos, Velocity: tt.vel, Radius: 0.1, Reflectance: 0.5}
			out, n := box.Resolve(in)
			if n != 1 {
				t.Fatalf("contacts = %d, want 1", n)
			}
			if !vecApproxEqual(out.Position, tt.wantPos, epsilon) {
				t.Errorf("pos = %v, want %v", out.Position, tt.wantPos)
			}
			if !vecApproxEqual(out.Velocity, tt.wantVel, epsilon) {
				t.Errorf("vel = %v, want %v", out.Velocity, tt.wantVel)
			}
		})
	}
}

func TestBoxCornerResolvesBothAxes(t *testing.T) {
	box := DefaultBox()
	in := BodyState{Position: mgl64.Vec2{-0.95, -0.95}, Velocity: mgl64.Vec2{-1, -2}, Radius: 0.1, Reflectance: 0.5}

	out, n := box.Resolve(in)

	if n != 2 {
		t.Fatalf("contacts = %d, want 2", n)
	}
	if !vecApproxEqual(out.Position, mgl64.Vec2{-0.8, -0.8}, epsilon) {
		t.Errorf("pos = %v, want (-0.8, -0.8)", out.Position)
	}
	// X contact: vx=0.5, vy=-1. Y contact: vy=0.5, vx=0.25.
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{0.25, 0.5}, epsilon) {
		t.Errorf("vel = %v, want (0.25, 0.5)", out.Velocity)
	}
}

func TestBoxPenetratingButLeavingStaysOutward(t *testing.T) {
	box := DefaultBox()
	in := BodyState{Position: mgl64.Vec2{-0.85, 0}, Velocity: mgl64.Vec2{1, 0}, Radius: 0.1, Reflectance: 0.5}
	out, _ := box.Resolve(in)
	if out.Velocity[0] <= 0 {
		t.Errorf("vx = %v, want positive (away from the left wall)", out.Velocity[0])
	}
}

func TestBoxMesh(t *testing.T) {
	verts, inds := DefaultBox().Mesh()
	if len(verts) != 8 {
		t.Errorf("vertices = %d, want 8", len(verts))
	}
	if len(inds) != 24 {
		t.Errorf("indices = %d, want 24", len(inds))
	}
	for _, i := range inds {
		if int(i) >= len(verts) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

// --- Polygon ---

func floorTriangle() Polygon {
	return Polygon{
		Vertices: []mgl64.Vec2{{-1, 0}, {1, 0}, {0, -1}},
		Indices:  []uint16{0, 1, 2},
	}
}

func TestPolygonTangencyIsNotContact(t *testing.T) {
	in := BodyState{Position: mgl64.Vec2{0, 0.25}, Velocity: mgl64.Vec2{0, -1}, Radius: 0.25, Reflectance: 0.5}
	out, n := floorTriangle().Resolve(in)
	if n != 0 || out != in {
		t.Errorf("tangent ball: contacts=%d out=%+v, want untouched", n, out)
	}
}

func TestPolygonPenetration(t *testing.T) {
	in := BodyState{Position: mgl64.Vec2{0, 0.2}, Velocity: mgl64.Vec2{1, -2}, Radius: 0.25, Reflectance: 0.5}

	out, n := floorTriangle().Resolve(in)

	if n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if !vecApproxEqual(out.Position, mgl64.Vec2{0, 0.25}, epsilon) {
		t.Errorf("pos = %v, want (0, 0.25)", out.Position)
	}
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{0.5, 1}, epsilon) {
		t.Errorf("vel = %v, want (0.5, 1)", out.Velocity)
	}
}

func TestPolygonReflectsBallLeavingTheEdge(t *testing.T) {
	in := BodyState{Position: mgl64.Vec2{0, 0.2}, Velocity: mgl64.Vec2{0, 1}, Radius: 0.25, Reflectance: 0.5}

	out, n := floorTriangle().Resolve(in)

	if n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if !vecApproxEqual(out.Position, mgl64.Vec2{0, 0.25}, epsilon) {
		t.Errorf("pos = %v, want (0, 0.25)", out.Position)
	}
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{0, -0.5}, epsilon) {
		t.Errorf("vel = %v, want (0, -0.5)", out.Velocity)
	}
}

func TestPolygonCentreOnEdgePushesAwayFromTriangle(t *testing.T) {
	in := BodyState{Position: mgl64.Vec2{0, 0}, Velocity: mgl64.Vec2{0, -1}, Radius: 0.25, Reflectance: 1}

	out, n := floorTriangle().Resolve(in)

	if n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if !vecApproxEqual(out.Position, mgl64.Vec2{0, 0.25}, epsilon) {
		t.Errorf("pos = %v, want (0, 0.25)", out.Position)
	}
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{0, 1}, epsilon) {
		t.Errorf("vel = %v, want (0, 1)", out.Velocity)
	}
}

func TestPolygonSkipsBadIndices(t *testing.T) {
	p := Polygon{
		Vertices: []mgl64.Vec2{{-1, 0}, {1, 0}, {0, -1}},
		Indices:  []uint16{0, 1, 2, 0, 1, 9},
	}
	if got := len(p.Triangles()); got != 1 {
		t.Errorf("triangles = %d, want 1", got)
	}
}

func TestDefaultWedges(t *testing.T) {
	w := DefaultWedges()
	if got := len(w.Triangles()); got != 9 {
		t.Errorf("triangles = %d, want 9", got)
	}

	// The starting position clears every wedge and the ramp.
	in := BodyState{Position: mgl64.Vec2{0, 0}, Radius: 0.1, Reflectance: 0.8}
	if _, n := w.Resolve(in); n != 0 {
		t.Errorf("contacts at origin = %d, want 0", n)
	}
}

// The floor edge belongs to both the corner wedge and the ramp. The second
// visit finds the ball already at the radius and must not reflect again.
func TestDefaultWedgesSharedFloorEdge(t *testing.T) {
	in := BodyState{Position: mgl64.Vec2{0.6, -0.85}, Velocity: mgl64.Vec2{0, -1}, Radius: 0.1, Reflectance: 0.8}

	out, n := DefaultWedges().Resolve(in)

	if n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if !vecApproxEqual(out.Position, mgl64.Vec2{0.6, -0.8}, epsilon) {
		t.Errorf("pos = %v, want (0.6, -0.8)", out.Position)
	}
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{0, 0.8}, epsilon) {
		t.Errorf("vel = %v, want (0, 0.8)", out.Velocity)
	}
}

func TestDefaultWedgesCorner(t *testing.T) {
	// Wedged into the top-left inner corner: the left wall (triangle 0,1,5)
	// is visited before the ceiling (triangle 3,4,5).
	in := BodyState{Position: mgl64.Vec2{-0.85, 0.85}, Velocity: mgl64.Vec2{-1, 1}, Radius: 0.1, Reflectance: 0.5}

	out, n := DefaultWedges().Resolve(in)

	// The bevel 4-5 would also overlap the uncorrected centre. It lies
	// between the two walls in visit order and misses the corrected one.
	if n != 2 {
		t.Fatalf("contacts = %d, want 2", n)
	}
	// The ceiling sees x already pushed to -0.8; from the raw centre it
	// would have left x at -0.85.
	if !vecApproxEqual(out.Position, mgl64.Vec2{-0.8, 0.8}, epsilon) {
		t.Errorf("pos = %v, want (-0.8, 0.8)", out.Position)
	}
	// (-1, 1) -> wall -> (0.5, 0.5) -> ceiling -> (0.25, -0.25).
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{0.25, -0.25}, epsilon) {
		t.Errorf("vel = %v, want (0.25, -0.25)", out.Velocity)
	}
}

func TestPolygonCornerAppliesEdgesInOrder(t *testing.T) {
	// Two triangles meeting at a right-angle corner at the origin: a floor
	// below y=0 visited first, then a wall left of x=0.
	p := Polygon{
		Vertices: []mgl64.Vec2{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, 1}, {0, 0}},
		Indices:  []uint16{0, 1, 2, 5, 3, 4},
	}
	in := BodyState{Position: mgl64.Vec2{0.1, 0.1}, Velocity: mgl64.Vec2{1, 0}, Radius: 0.25, Reflectance: 0.5}

	out, n := p.Resolve(in)

	if n != 2 {
		t.Fatalf("contacts = %d, want 2", n)
	}
	// Floor: y -> 0.25, (1, 0) slides along the floor and is only scaled.
	// Wall: x -> 0.25 from the corrected centre, (0.5, 0) is already
	// leaving the wall and is still reflected and scaled.
	if !vecApproxEqual(out.Position, mgl64.Vec2{0.25, 0.25}, epsilon) {
		t.Errorf("pos = %v, want (0.25, 0.25)", out.Position)
	}
	if !vecApproxEqual(out.Velocity, mgl64.Vec2{-0.25, 0}, epsilon) {
		t.Errorf("vel = %v, want (-0.25, 0)", out.Velocity)
	}
}

func TestPolygonMeshIsCopy(t *testing.T) {
	w := DefaultWedges()
	verts, _ := w.Mesh()
	verts[0] = mgl64.Vec2{5, 5}
	if w.Vertices[0] == (mgl64.Vec2{5, 5}) {
		t.Error("Mesh exposed the policy's vertex storage")
	}
}

// --- Boundaries ---

func TestBoundariesResolveCollisionWritesBack(t *testing.T) {
	bd := NewBoundaries(DefaultBox())
	b := NewBall(0.8, 0.1, 8, mgl64.Vec2{-0.85, 0})
	b.LaunchFromDrag(mgl64.Vec2{-0.5, 0}, 1) // velocity (-2, 0)

	n := bd.ResolveCollision(b)

	if n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if b.Position()[0] != -0.9+0.1 {
		t.Errorf("x = %v, want %v", b.Position()[0], -0.9+0.1)
	}
	if b.Velocity()[0] != 2*0.8 {
		t.Errorf("vx = %v, want %v", b.Velocity()[0], 2*0.8)
	}
}

func TestNewBoundariesNilUsesBox(t *testing.T) {
	if k := NewBoundaries(nil).Kind(); k != PolicyBox {
		t.Errorf("Kind = %v, want box", k)
	}
	if k := DefaultBoundaries(PolicyWedges).Kind(); k != PolicyWedges {
		t.Errorf("Kind = %v, want wedges", k)
	}
}

func TestParsePolicyKind(t *testing.T) {
	tests := []struct {
		in   string
		want PolicyKind
	}{
		{"box", PolicyBox},
		{"", PolicyBox},
		{"Wedges", PolicyWedges},
		{" polygon ", PolicyWedges},
	}
	for _, tt := range tests {
		got, err := ParsePolicyKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParsePolicyKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParsePolicyKind("sphere"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("err = %v, want ErrUnknownPolicy", err)
	}
}

func TestTriangleContains(t *testing.T) {
	tri := Triangle{mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}}
	rev := Triangle{tri.A, tri.C, tri.B}
	tests := []struct {
		p    mgl64.Vec2
		want bool
	}{
		{mgl64.Vec2{0.2, 0.2}, true},
		{mgl64.Vec2{0.5, 0}, true},
		{mgl64.Vec2{0.6, 0.6}, false},
		{mgl64.Vec2{-0.1, 0.5}, false},
	}
	for _, tt := range tests {
		if got := tri.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
		if got := rev.Contains(tt.p); got != tt.want {
			t.Errorf("reversed Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMeshContainsBoxFrame(t *testing.T) {
	verts, inds := DefaultBox().Mesh()
	if MeshContains(verts, inds, mgl64.Vec2{0, 0}) {
		t.Error("arena centre reported as wall")
	}
	if !MeshContains(verts, inds, mgl64.Vec2{0.95, 0}) {
		t.Error("frame cell not reported as wall")
	}
	if MeshContains(verts, []uint16{0, 1, 99}, mgl64.Vec2{0.95, 0}) {
		t.Error("out-of-range triple should be skipped")
	}
}
