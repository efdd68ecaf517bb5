package bounce

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// scriptStep is a single action in a scenario script. Coordinates are NDC.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Policy string  `json:"policy,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a scenario against a Simulation one frame at a time, the
// way a user would drive the debug panel. Drags feed one pointer event per
// frame so the ball follows the pointer between press and release.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	pointer   []Command
	done      bool
}

// LoadScript parses a JSON scenario script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "start", "stop", "toggle", "reset", "gravity", "reflectance",
			"radius", "drag", "wait", "screenshot":
		case "policy":
			if _, err := ParsePolicyKind(st.Policy); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has been executed.
func (sc *Script) Done() bool {
	return sc.done
}

// Step advances the script by one frame, queueing commands on sim. It
// returns a screenshot label when a screenshot step ran this frame.
func (sc *Script) Step(sim *Simulation) string {
	if sc.done {
		return ""
	}
	if len(sc.pointer) > 0 {
		sim.Enqueue(sc.pointer[0])
		sc.pointer = sc.pointer[1:]
		sc.checkDone()
		return ""
	}
	if sc.waitCount > 0 {
		sc.waitCount--
		sc.checkDone()
		return ""
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return ""
	}

	st := sc.steps[sc.cursor]
	sc.cursor++

	var label string
	switch st.Action {
	case "start":
		sim.Enqueue(Command{Type: CommandStart})
	case "stop":
		sim.Enqueue(Command{Type: CommandStop})
	case "toggle":
		sim.Enqueue(Command{Type: CommandToggle})
	case "reset":
		sim.Enqueue(Command{Type: CommandReset})
	case "gravity":
		sim.Enqueue(Command{Type: CommandSetGravity, Value: st.Value})
	case "reflectance":
		sim.Enqueue(Command{Type: CommandSetReflectance, Value: st.Value})
	case "radius":
		sim.Enqueue(Command{Type: CommandSetRadius, Value: st.Value})
	case "policy":
		kind, _ := ParsePolicyKind(st.Policy)
		sim.Enqueue(Command{Type: CommandSetPolicy, Policy: kind})
	case "drag":
		sc.queueDrag(sim, st)
	case "wait":
		if st.Frames > 0 {
			sc.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		label = st.Label
	}

	sc.checkDone()
	return label
}

// queueDrag sends the press now and holds the interpolated moves and the
// release for the following frames. frames is the total frame count,
// minimum 2.
func (sc *Script) queueDrag(sim *Simulation, st scriptStep) {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	from := mgl64.Vec2{st.FromX, st.FromY}
	to := mgl64.Vec2{st.ToX, st.ToY}

	sim.Enqueue(Command{Type: CommandPointerDown, Pos: from})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		sc.pointer = append(sc.pointer, Command{
			Type: CommandPointerMove,
			Pos:  from.Add(to.Sub(from).Mul(t)),
		})
	}
	sc.pointer = append(sc.pointer, Command{Type: CommandPointerUp, Pos: to})
}

func (sc *Script) checkDone() {
	if sc.cursor >= len(sc.steps) && sc.waitCount == 0 && len(sc.pointer) == 0 {
		sc.done = true
	}
}
