// Package term runs a bounce.Simulation in a terminal. The arena is drawn
// with block characters, the mouse drags and launches the ball, and the
// bottom row shows the ball settings.
package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Guc10/bounce"
)

// Parameter step sizes for the g, r and a keys. Upper case decreases.
const (
	gravityStep     = 1.0
	reflectanceStep = 0.1
	radiusStep      = 0.01

	flashFrames  = 8
	defaultFrame = 16 * time.Millisecond
)

// Sounder plays a bounce sound for an impact speed.
type Sounder interface {
	PlayBounce(speed float64)
}

// Options configures Run.
type Options struct {
	// FrameInterval is the redraw period. Zero uses ~60 FPS.
	FrameInterval time.Duration
	// Script, when set, is stepped once per frame before the simulation.
	Script *bounce.Script
	// ExitAfterScript returns from Run once Script is done.
	ExitAfterScript bool
	// Sound may be nil.
	Sound Sounder
}

// view is the terminal shell state. It is owned by the Run goroutine.
type view struct {
	sim     *bounce.Simulation
	opts    Options
	grid    Grid
	pointer bounce.PointerTracker
	theme   int
	flash   int
	last    time.Time
}

// Run takes over the terminal until Esc or Ctrl-C.
func Run(sim *bounce.Simulation, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	return runScreen(screen, sim, opts)
}

func runScreen(screen tcell.Screen, sim *bounce.Simulation, opts Options) error {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrame
	}
	v := &view{sim: sim, opts: opts}
	v.grid.Width, v.grid.Height = screen.Size()

	ticker := time.NewTicker(opts.FrameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			if !v.frame(now) {
				return nil
			}
			v.draw(screen)
		}
	}
}

// frame advances the script and the simulation by the wall-clock delta. It
// returns false when a finished script should end the run.
func (v *view) frame(now time.Time) bool {
	var dt float64
	if !v.last.IsZero() {
		dt = min(now.Sub(v.last).Seconds(), 0.1)
	}
	v.last = now

	if sc := v.opts.Script; sc != nil {
		sc.Step(v.sim)
		if sc.Done() && v.opts.ExitAfterScript {
			return false
		}
	}

	res := v.sim.Advance(dt)
	if v.flash > 0 {
		v.flash--
	}
	if res.Contacts > 0 && res.ImpactSpeed >= bounce.RestingSpeed {
		v.flash = flashFrames
		if v.opts.Sound != nil {
			v.opts.Sound.PlayBounce(res.ImpactSpeed)
		}
	}
	return true
}

func (v *view) draw(screen tcell.Screen) {
	pal := palettes[v.theme]
	screen.Fill(' ', pal.bg)
	drawArena(screen, v.grid, v.sim, pal, v.flash > 0)
	drawStatus(screen, v.grid, statusText(v.sim, pal.name), pal.status)
	screen.Show()
}

// handleEvent applies one terminal event. It returns false to quit.
func (v *view) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		if cmd, ok := v.pointer.Track(v.grid.CellCenter(x, y), pressed); ok {
			v.sim.Enqueue(cmd)
		}
	case *tcell.EventResize:
		v.grid.Width, v.grid.Height = ev.Size()
	}
	return true
}

func (v *view) handleKey(ev *tcell.EventKey) bool {
	b := v.sim.Ball()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandReset})
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case ' ':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandToggle})
	case 'g':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetGravity, Value: b.Gravity() + gravityStep})
	case 'G':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetGravity, Value: b.Gravity() - gravityStep})
	case 'r':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetReflectance, Value: b.Reflectance() + reflectanceStep})
	case 'R':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetReflectance, Value: b.Reflectance() - reflectanceStep})
	case 'a':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetRadius, Value: b.Radius() + radiusStep})
	case 'A':
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetRadius, Value: b.Radius() - radiusStep})
	case 'p', 'P':
		next := bounce.PolicyWedges
		if v.sim.Boundaries().Kind() == bounce.PolicyWedges {
			next = bounce.PolicyBox
		}
		v.sim.Enqueue(bounce.Command{Type: bounce.CommandSetPolicy, Policy: next})
	case 't', 'T':
		v.theme = (v.theme + 1) % len(palettes)
	case 'q':
		return false
	}
	return true
}
