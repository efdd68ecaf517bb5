// Package bounce is the physics core of a bouncing-ball toy: a single
// circular [Ball] integrated under gravity inside static [Boundaries].
//
// Everything is expressed in normalized device coordinates, where the arena
// spans [-1, 1] on both axes independent of window size. Rendering and UI
// live in the shell packages, which drive a [Simulation] through commands
// and read the ball back for drawing.
//
// # Quick start
//
//	sim, err := bounce.NewSimulation(bounce.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sim.Enqueue(bounce.Command{Type: bounce.CommandStart})
//	for frame := 0; frame < 600; frame++ {
//		res := sim.Step(1.0 / 60)
//		if res.Contacts > 0 {
//			// play a sound, flash the ball...
//		}
//	}
//
// # Collision policies
//
// Two [CollisionPolicy] implementations are provided. [Box] clamps the ball
// inside an axis-aligned rectangle, resolving X before Y. [Polygon] treats a
// small set of triangles as solid walls and resolves the ball against every
// triangle edge using [ClosestPointOnSegment]. A contact requires the centre
// to lie strictly closer than the radius; exact tangency is not a contact.
//
// # Drag to launch
//
// A pointer press starts a drag. While dragging the ball follows the pointer
// with zero velocity; on release it is launched with
// (release - press) * [LaunchSensitivity] * Config.LaunchPower.
//
// # Scripts
//
// [LoadScript] reads a JSON scenario that replays commands frame by frame:
//
//	{"steps": [
//		{"action": "start"},
//		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 0.3, "toY": 0.2, "frames": 10},
//		{"action": "wait", "frames": 120},
//		{"action": "screenshot", "label": "settled"}
//	]}
package bounce
