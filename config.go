package bounce

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Config describes a simulation. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	Gravity     float64    `json:"gravity"`
	Reflectance float64    `json:"reflectance"`
	Radius      float64    `json:"radius"`
	Segments    int        `json:"segments"`
	Start       mgl64.Vec2 `json:"start"`

	// Policy is "box" or "wedges".
	Policy string `json:"policy"`
	// Box overrides DefaultBox when Policy is "box".
	Box *Box `json:"box,omitempty"`

	// LaunchPower scales drag launches.
	LaunchPower float64 `json:"launchPower"`

	// FixedStep enables a fixed-timestep accumulator when > 0 (seconds).
	// Zero keeps one variable step per frame.
	FixedStep float64 `json:"fixedStep"`

	// Running starts the simulation immediately.
	Running bool `json:"running"`
}

// DefaultConfig returns the stock demo settings: ball at the
// origin, reflectance 0.8, radius 0.1, gravity 9.81, box arena.
func DefaultConfig() Config {
	return Config{
		Gravity:     9.81,
		Reflectance: 0.8,
		Radius:      0.1,
		Segments:    DefaultSegments,
		Policy:      PolicyBox.String(),
		LaunchPower: 1,
	}
}

// LoadConfig parses JSON over DefaultConfig, so omitted fields keep their
// defaults, and validates the result.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first field outside its allowed range.
func (c Config) Validate() error {
	if !GravityRange.Contains(c.Gravity) {
		return fmt.Errorf("config: gravity %v outside [%v, %v]", c.Gravity, GravityRange.Min, GravityRange.Max)
	}
	if !ReflectanceRange.Contains(c.Reflectance) {
		return fmt.Errorf("config: reflectance %v outside [%v, %v]", c.Reflectance, ReflectanceRange.Min, ReflectanceRange.Max)
	}
	if !RadiusRange.Contains(c.Radius) {
		return fmt.Errorf("config: radius %v outside [%v, %v]", c.Radius, RadiusRange.Min, RadiusRange.Max)
	}
	if c.Segments < 3 || c.Segments > 1<<15 {
		return fmt.Errorf("config: segments %d outside [3, 32768]", c.Segments)
	}
	if !finiteVec(c.Start) {
		return fmt.Errorf("config: start %v is not finite", c.Start)
	}
	if _, err := ParsePolicyKind(c.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Box != nil && (c.Box.MinX >= c.Box.MaxX || c.Box.MinY >= c.Box.MaxY) {
		return fmt.Errorf("config: box %+v is empty", *c.Box)
	}
	if !finite(c.LaunchPower) || c.LaunchPower < 0 {
		return fmt.Errorf("config: launchPower %v must be >= 0", c.LaunchPower)
	}
	if !finite(c.FixedStep) || c.FixedStep < 0 {
		return fmt.Errorf("config: fixedStep %v must be >= 0", c.FixedStep)
	}
	return nil
}

// boundaries builds the configured arena. Validate must have passed.
func (c Config) boundaries() *Boundaries {
	kind, _ := ParsePolicyKind(c.Policy)
	if kind == PolicyBox && c.Box != nil {
		return NewBoundaries(*c.Box)
	}
	return DefaultBoundaries(kind)
}
