package bounce

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// maxSubSteps caps fixed sub-steps per Advance so a long stall does not
// spiral.
const maxSubSteps = 8

// StepResult reports what happened during a Step or Advance.
type StepResult struct {
	// Stepped is true when the ball was integrated.
	Stepped bool
	// Contacts is the number of boundary contacts resolved.
	Contacts int
	// ImpactSpeed is the ball speed just before the first contact, or 0.
	ImpactSpeed float64
}

// Simulation owns a Ball and its Boundaries and runs them one frame at a
// time. Shells talk to it through queued commands and read the ball back for
// drawing. It is not safe for concurrent use.
type Simulation struct {
	ball   *Ball
	bounds *Boundaries
	cfg    Config

	running   bool
	dragging  bool
	dragStart mgl64.Vec2
	pointer   mgl64.Vec2

	queue       []Command
	accumulator float64

	debug bool
	steps uint64
}

// NewSimulation creates a simulation from cfg.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ball := NewBall(cfg.Reflectance, cfg.Radius, cfg.Segments, cfg.Start)
	ball.SetGravity(cfg.Gravity)
	return &Simulation{
		ball:    ball,
		bounds:  cfg.boundaries(),
		cfg:     cfg,
		running: cfg.Running,
	}, nil
}

// Ball returns the simulated ball.
func (s *Simulation) Ball() *Ball { return s.ball }

// Boundaries returns the active arena geometry.
func (s *Simulation) Boundaries() *Boundaries { return s.bounds }

// Config returns the configuration the simulation was created with.
func (s *Simulation) Config() Config { return s.cfg }

// Running reports whether the ball is being integrated.
func (s *Simulation) Running() bool { return s.running }

// Steps returns the number of integration steps taken so far.
func (s *Simulation) Steps() uint64 { return s.steps }

// Dragging reports whether a pointer drag is in progress.
func (s *Simulation) Dragging() bool { return s.dragging }

// DragVector returns the current pointer minus the press point, or zero
// when not dragging.
func (s *Simulation) DragVector() mgl64.Vec2 {
	if !s.dragging {
		return mgl64.Vec2{}
	}
	return s.pointer.Sub(s.dragStart)
}

// Step applies queued commands and advances one frame of length dt.
// While dragging, the ball follows the pointer with zero velocity. Otherwise,
// when running, the ball is integrated and then resolved against the
// boundaries.
func (s *Simulation) Step(dt float64) StepResult {
	s.applyCommands()

	var res StepResult
	switch {
	case s.dragging:
		s.ball.SetPosition(s.pointer)
	case s.running:
		res = s.integrate(dt)
	}
	return res
}

// Advance is Step driven by wall-clock elapsed time. Without a FixedStep it
// performs a single variable step. With one, elapsed time is accumulated and
// consumed in fixed sub-steps.
func (s *Simulation) Advance(elapsed float64) StepResult {
	if s.cfg.FixedStep <= 0 {
		return s.Step(elapsed)
	}

	s.applyCommands()
	if s.dragging {
		s.accumulator = 0
		s.ball.SetPosition(s.pointer)
		return StepResult{}
	}
	if !s.running {
		s.accumulator = 0
		return StepResult{}
	}
	if elapsed > 0 {
		s.accumulator += elapsed
	}

	var total StepResult
	h := s.cfg.FixedStep
	for n := 0; s.accumulator >= h; n++ {
		if n == maxSubSteps {
			s.accumulator = math.Mod(s.accumulator, h)
			break
		}
		s.accumulator -= h
		r := s.integrate(h)
		total.Stepped = true
		if r.Contacts > 0 && total.Contacts == 0 {
			total.ImpactSpeed = r.ImpactSpeed
		}
		total.Contacts += r.Contacts
	}
	return total
}

func (s *Simulation) integrate(dt float64) StepResult {
	if !(dt > 0) {
		return StepResult{}
	}
	s.ball.UpdatePosition(mgl64.Vec2{}, dt)
	speed := s.ball.Velocity().Len()
	n := s.bounds.ResolveCollision(s.ball)
	res := StepResult{Stepped: true, Contacts: n}
	if n > 0 {
		res.ImpactSpeed = speed
	}
	s.steps++
	s.debugLog(dt, res)
	return res
}
