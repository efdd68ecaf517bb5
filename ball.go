package bounce

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSegments is the rim resolution of the ball outline.
const DefaultSegments = 32

// Ball is a circular body integrated under gravity. All vectors are in NDC.
//
// A Ball is not safe for concurrent use; it is owned by the single frame loop.
type Ball struct {
	position mgl64.Vec2
	velocity mgl64.Vec2
	start    mgl64.Vec2

	radius      float64
	reflectance float64
	gravity     float64
	segments    int

	verts      []mgl64.Vec2 // reused outline buffer
	vertsDirty bool
}

// NewBall creates a ball at start with the given reflectance and radius.
// Gravity defaults to 9.81. Values are clamped to the parameter ranges.
func NewBall(reflectance, radius float64, segments int, start mgl64.Vec2) *Ball {
	if segments < 3 {
		segments = DefaultSegments
	}
	b := &Ball{
		position:    start,
		start:       start,
		radius:      RadiusRange.Clamp(radius),
		reflectance: ReflectanceRange.Clamp(reflectance),
		gravity:     9.81,
		segments:    segments,
		vertsDirty:  true,
	}
	return b
}

// UpdatePosition integrates one step of length dt seconds. Gravity is
// applied to the velocity first, then the position advances and the velocity
// is damped by AirDamping. dt <= 0 is ignored.
//
// force is accepted for future use and currently has no effect.
func (b *Ball) UpdatePosition(force mgl64.Vec2, dt float64) {
	_ = force
	if !(dt > 0) {
		return
	}
	b.velocity[1] -= b.gravity * dt
	b.position = b.position.Add(b.velocity.Mul(dt))
	b.velocity = b.velocity.Mul(AirDamping)
	b.vertsDirty = true
}

// LaunchFromDrag sets the velocity from a pointer drag vector (release point
// minus press point). The position is not changed.
func (b *Ball) LaunchFromDrag(drag mgl64.Vec2, power float64) {
	b.velocity = drag.Mul(LaunchSensitivity * power)
}

// SetPosition teleports the ball and zeroes its velocity.
func (b *Ball) SetPosition(pos mgl64.Vec2) {
	b.position = pos
	b.velocity = mgl64.Vec2{}
	b.vertsDirty = true
}

// ResetPosition restores the start position with zero velocity.
func (b *Ball) ResetPosition() {
	b.SetPosition(b.start)
}

// setState writes a resolved position and velocity back without the
// velocity reset SetPosition performs.
func (b *Ball) setState(pos, vel mgl64.Vec2) {
	if pos != b.position {
		b.vertsDirty = true
	}
	b.position = pos
	b.velocity = vel
}

// State returns a snapshot for collision resolution.
func (b *Ball) State() BodyState {
	return BodyState{
		Position:    b.position,
		Velocity:    b.velocity,
		Radius:      b.radius,
		Reflectance: b.reflectance,
	}
}

// Position returns the centre of the ball.
func (b *Ball) Position() mgl64.Vec2 { return b.position }

// Velocity returns the current velocity in NDC units per second.
func (b *Ball) Velocity() mgl64.Vec2 { return b.velocity }

// StartPosition returns the position ResetPosition restores.
func (b *Ball) StartPosition() mgl64.Vec2 { return b.start }

// Radius returns the ball radius.
func (b *Ball) Radius() float64 { return b.radius }

// Reflectance returns the fraction of speed kept after a bounce.
func (b *Ball) Reflectance() float64 { return b.reflectance }

// Gravity returns the downward acceleration magnitude.
func (b *Ball) Gravity() float64 { return b.gravity }

// Segments returns the number of rim segments in the outline.
func (b *Ball) Segments() int { return b.segments }

// VertexCount returns the number of outline vertices: the centre plus
// Segments+1 rim points.
func (b *Ball) VertexCount() int { return b.segments + 2 }

// SetReflectance sets the bounce reflectance, clamped to ReflectanceRange.
// NaN is ignored.
func (b *Ball) SetReflectance(v float64) {
	if math.IsNaN(v) {
		return
	}
	b.reflectance = ReflectanceRange.Clamp(v)
}

// SetRadius sets the radius, clamped to RadiusRange. NaN is ignored.
func (b *Ball) SetRadius(v float64) {
	if math.IsNaN(v) {
		return
	}
	r := RadiusRange.Clamp(v)
	if r != b.radius {
		b.vertsDirty = true
	}
	b.radius = r
}

// SetGravity sets the gravity magnitude, clamped to GravityRange. NaN is ignored.
func (b *Ball) SetGravity(v float64) {
	if math.IsNaN(v) {
		return
	}
	b.gravity = GravityRange.Clamp(v)
}

// KineticEnergy returns ½|v|² for a unit mass.
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.velocity.LenSqr()
}

// Vertices returns the triangle-fan outline of the ball: the centre followed
// by Segments+1 rim points, the first rim point repeated to close the fan.
// The returned slice is reused by later calls and MUST NOT be retained.
func (b *Ball) Vertices() []mgl64.Vec2 {
	if !b.vertsDirty && len(b.verts) == b.VertexCount() {
		return b.verts
	}
	n := b.VertexCount()
	if cap(b.verts) < n {
		b.verts = make([]mgl64.Vec2, n)
	}
	b.verts = b.verts[:n]

	cx, cy, r := b.position[0], b.position[1], b.radius
	b.verts[0] = mgl64.Vec2{cx, cy}
	for i := 0; i <= b.segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(b.segments)
		b.verts[i+1] = mgl64.Vec2{cx + r*math.Cos(theta), cy + r*math.Sin(theta)}
	}
	b.vertsDirty = false
	return b.verts
}

// FanIndices returns triangle indices for an outline of vertexCount
// vertices laid out as Vertices returns them.
func FanIndices(vertexCount int) []uint16 {
	if vertexCount < 3 {
		return nil
	}
	inds := make([]uint16, 0, (vertexCount-2)*3)
	for i := 1; i < vertexCount-1; i++ {
		inds = append(inds, 0, uint16(i), uint16(i+1))
	}
	return inds
}
