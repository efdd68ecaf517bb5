package bounce

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPointerTracker(t *testing.T) {
	var p PointerTracker
	if _, ok := p.Track(mgl64.Vec2{0.1, 0.1}, false); ok {
		t.Error("hover produced a command")
	}
	steps := []struct {
		pos     mgl64.Vec2
		pressed bool
		want    CommandType
		ok      bool
	}{
		{mgl64.Vec2{0, 0}, true, CommandPointerDown, true},
		{mgl64.Vec2{0, 0}, true, 0, false},
		{mgl64.Vec2{0.2, 0}, true, CommandPointerMove, true},
		{mgl64.Vec2{0.3, 0}, false, CommandPointerUp, true},
		{mgl64.Vec2{0.3, 0}, false, 0, false},
	}
	for i, st := range steps {
		cmd, ok := p.Track(st.pos, st.pressed)
		if ok != st.ok {
			t.Fatalf("step %d: ok = %v, want %v", i, ok, st.ok)
		}
		if ok && (cmd.Type != st.want || cmd.Pos != st.pos) {
			t.Errorf("step %d: cmd = %+v, want type %v at %v", i, cmd, st.want, st.pos)
		}
	}
	if p.Down() {
		t.Error("tracker still down after release")
	}
}

func TestPointerTrackerDrivesSimulation(t *testing.T) {
	sim := newTestSim(t, nil)
	var p PointerTracker
	samples := []struct {
		pos     mgl64.Vec2
		pressed bool
	}{
		{mgl64.Vec2{0, 0}, true},
		{mgl64.Vec2{0.1, 0}, true},
		{mgl64.Vec2{0.25, 0}, false},
	}
	for _, s := range samples {
		if cmd, ok := p.Track(s.pos, s.pressed); ok {
			sim.Enqueue(cmd)
		}
		sim.Step(0.016)
	}
	want := mgl64.Vec2{0.25 * LaunchSensitivity, 0}
	if !vecApproxEqual(sim.Ball().Velocity(), want, epsilon) {
		t.Errorf("velocity = %v, want %v", sim.Ball().Velocity(), want)
	}
}

func TestCommandQueueOrder(t *testing.T) {
	sim := newTestSim(t, nil)
	sim.Enqueue(Command{Type: CommandStart})
	sim.Enqueue(Command{Type: CommandStop})
	sim.Enqueue(Command{Type: CommandSetGravity, Value: 3})
	sim.Enqueue(Command{Type: CommandSetGravity, Value: 5})
	sim.Step(0)
	if sim.Running() {
		t.Error("later Stop should win over earlier Start")
	}
	if sim.Ball().Gravity() != 5 {
		t.Errorf("Gravity = %v, want last queued value 5", sim.Ball().Gravity())
	}
}
