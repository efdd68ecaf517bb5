package bounce

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Lerp returns the color linearly interpolated from c to other by t.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return mgl64.Clamp(v, r.Min, r.Max)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Parameter ranges enforced by the Ball setters. These match the limits of
// the debug panel; a ball outside them would break collision resolution.
var (
	GravityRange     = Range{Min: 0, Max: 20}
	ReflectanceRange = Range{Min: 0.1, Max: 1}
	RadiusRange      = Range{Min: 0.06, Max: 0.5}
)

const (
	// AirDamping multiplies the velocity after every integration step.
	AirDamping = 0.9995
	// LaunchSensitivity converts an NDC drag vector into velocity.
	LaunchSensitivity = 4.0
	// ArenaExtent is the half-size of the NDC arena, [-1, 1] on both axes.
	ArenaExtent = 1.0
	// RestingSpeed is the impact speed below which a contact is the ball
	// settling against a wall rather than a bounce worth a flash or a sound.
	RestingSpeed = 0.5
)

// PolicyKind identifies a collision policy.
type PolicyKind uint8

const (
	PolicyBox    PolicyKind = iota // axis-aligned box clamp
	PolicyWedges                   // triangle-edge projection
)

// ErrUnknownPolicy is returned when a policy name cannot be parsed.
var ErrUnknownPolicy = errors.New("unknown collision policy")

func (k PolicyKind) String() string {
	switch k {
	case PolicyBox:
		return "box"
	case PolicyWedges:
		return "wedges"
	default:
		return fmt.Sprintf("PolicyKind(%d)", uint8(k))
	}
}

// ParsePolicyKind converts "box" or "wedges" (case-insensitive) to a PolicyKind.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "box", "":
		return PolicyBox, nil
	case "wedges", "wedge", "polygon":
		return PolicyWedges, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteVec reports whether both components of v are finite.
func finiteVec(v mgl64.Vec2) bool {
	return finite(v[0]) && finite(v[1])
}
