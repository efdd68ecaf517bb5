package bounce

import "github.com/go-gl/mathgl/mgl64"

// CommandType identifies a request from a shell to the simulation.
type CommandType uint8

const (
	CommandStart          CommandType = iota // start integrating
	CommandStop                              // pause integrating
	CommandToggle                            // flip between running and stopped
	CommandSetGravity                        // Value is the new gravity
	CommandSetReflectance                    // Value is the new reflectance
	CommandSetRadius                         // Value is the new radius
	CommandReset                             // return the ball to its start position
	CommandSetPolicy                         // Policy selects the default geometry
	CommandPointerDown                       // Pos is the press point in NDC
	CommandPointerMove                       // Pos is the pointer in NDC
	CommandPointerUp                         // Pos is the release point in NDC
)

// Command is a single queued request. Only the fields relevant to Type are read.
type Command struct {
	Type   CommandType
	Value  float64
	Pos    mgl64.Vec2
	Policy PolicyKind
}

// Enqueue queues a command for the next Step. Commands are applied in order.
func (s *Simulation) Enqueue(cmd Command) {
	s.queue = append(s.queue, cmd)
}

// PointerDown queues a press at pos (NDC).
func (s *Simulation) PointerDown(pos mgl64.Vec2) {
	s.Enqueue(Command{Type: CommandPointerDown, Pos: pos})
}

// PointerMove queues a pointer move at pos (NDC) with the button held.
func (s *Simulation) PointerMove(pos mgl64.Vec2) {
	s.Enqueue(Command{Type: CommandPointerMove, Pos: pos})
}

// PointerUp queues a release at pos (NDC).
func (s *Simulation) PointerUp(pos mgl64.Vec2) {
	s.Enqueue(Command{Type: CommandPointerUp, Pos: pos})
}

// Pending returns the number of queued commands.
func (s *Simulation) Pending() int {
	return len(s.queue)
}

// applyCommands drains the queue in FIFO order.
func (s *Simulation) applyCommands() {
	for i := range s.queue {
		s.apply(s.queue[i])
	}
	clear(s.queue)
	s.queue = s.queue[:0]
}

func (s *Simulation) apply(cmd Command) {
	switch cmd.Type {
	case CommandStart:
		s.running = true
	case CommandStop:
		s.running = false
	case CommandToggle:
		s.running = !s.running
	case CommandSetGravity:
		s.ball.SetGravity(cmd.Value)
	case CommandSetReflectance:
		s.ball.SetReflectance(cmd.Value)
	case CommandSetRadius:
		s.ball.SetRadius(cmd.Value)
	case CommandReset:
		s.dragging = false
		s.ball.ResetPosition()
	case CommandSetPolicy:
		if cmd.Policy == PolicyBox && s.cfg.Box != nil {
			s.bounds = NewBoundaries(*s.cfg.Box)
		} else {
			s.bounds = DefaultBoundaries(cmd.Policy)
		}
	case CommandPointerDown:
		if !finiteVec(cmd.Pos) {
			return
		}
		s.dragging = true
		s.dragStart = cmd.Pos
		s.pointer = cmd.Pos
	case CommandPointerMove:
		if !s.dragging || !finiteVec(cmd.Pos) {
			return
		}
		s.pointer = cmd.Pos
	case CommandPointerUp:
		if !s.dragging {
			return
		}
		if finiteVec(cmd.Pos) {
			s.pointer = cmd.Pos
		}
		s.dragging = false
		s.ball.SetPosition(s.pointer)
		s.ball.LaunchFromDrag(s.pointer.Sub(s.dragStart), s.cfg.LaunchPower)
	}
}

// PointerTracker turns raw pointer samples (position plus button state) into
// press, move and release commands. Shells feed it once per frame or event.
type PointerTracker struct {
	down bool
	last mgl64.Vec2
}

// Track returns the command for one sample, if any. Moves are only reported
// while the button is held and the position changed.
func (p *PointerTracker) Track(pos mgl64.Vec2, pressed bool) (Command, bool) {
	switch {
	case pressed && !p.down:
		p.down = true
		p.last = pos
		return Command{Type: CommandPointerDown, Pos: pos}, true
	case pressed && pos != p.last:
		p.last = pos
		return Command{Type: CommandPointerMove, Pos: pos}, true
	case !pressed && p.down:
		p.down = false
		return Command{Type: CommandPointerUp, Pos: pos}, true
	}
	return Command{}, false
}

// Down reports whether the tracked button is held.
func (p *PointerTracker) Down() bool { return p.down }
