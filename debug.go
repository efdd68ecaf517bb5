package bounce

import (
	"fmt"
	"io"
	"os"
)

// debugOut receives debug logs. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables per-step logging to stderr.
func (s *Simulation) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugLog prints the ball state after an integration step.
func (s *Simulation) debugLog(dt float64, res StepResult) {
	if !s.debug {
		return
	}
	b := s.ball
	p, v := b.Position(), b.Velocity()
	_, _ = fmt.Fprintf(debugOut,
		"[bounce] step %d dt: %.4f | pos: (%.4f, %.4f) | vel: (%.4f, %.4f) | ke: %.4f\n",
		s.steps, dt, p[0], p[1], v[0], v[1], b.KineticEnergy())
	if res.Contacts > 0 {
		_, _ = fmt.Fprintf(debugOut, "[bounce] %s contacts: %d | impact speed: %.4f\n",
			s.bounds.Kind(), res.Contacts, res.ImpactSpeed)
	}
}
