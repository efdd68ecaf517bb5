// Package shell runs a bounce.Simulation in an Ebitengine window: the arena
// and ball are drawn as triangle meshes, a debug panel shows the ball
// settings, and the mouse drags and launches the ball.
package shell

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Guc10/bounce"
)

// maxFrameDelta caps the wall-clock delta fed to the simulation after a
// stall, such as a window drag.
const maxFrameDelta = 0.1

// Sounder plays a bounce sound. speed is the impact speed in NDC units per
// second.
type Sounder interface {
	PlayBounce(speed float64)
}

// RunConfig configures the window.
type RunConfig struct {
	Title         string
	Width, Height int

	// Script, when set, is stepped once per frame before the simulation.
	Script *bounce.Script
	// ExitAfterScript closes the window once Script is done.
	ExitAfterScript bool
	// Sound receives a call for every frame with a bounce. May be nil.
	Sound Sounder
	// ScreenshotDir receives F12 and scripted screenshots.
	ScreenshotDir string
}

// Game implements ebiten.Game for a Simulation.
type Game struct {
	sim *bounce.Simulation
	cfg RunConfig
	vp  Viewport

	mesh    meshBuilder
	theme   int
	flash   *colorTween
	pointer bounce.PointerTracker
	keys    []ebiten.Key
	touches []ebiten.TouchID
	shots   []shot

	last      time.Time
	statTimer float64
	fps, tps  float64
	exiting   bool
}

// NewGame wraps sim. Zero sizes fall back to 800x800.
func NewGame(sim *bounce.Simulation, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Title == "" {
		cfg.Title = "Bounce"
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	return &Game{
		sim: sim,
		cfg: cfg,
		vp:  Viewport{Width: cfg.Width, Height: cfg.Height},
	}
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func Run(sim *bounce.Simulation, cfg RunConfig) error {
	g := NewGame(sim, cfg)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// frameDelta returns the seconds since the previous call, capped at
// maxFrameDelta. The first call returns 0.
func (g *Game) frameDelta(now time.Time) float64 {
	var dt float64
	if !g.last.IsZero() {
		dt = min(now.Sub(g.last).Seconds(), maxFrameDelta)
	}
	g.last = now
	return dt
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.exiting && len(g.shots) == 0 {
		return ebiten.Termination
	}
	dt := g.frameDelta(time.Now())
	g.updateStats(dt)

	if err := g.processKeys(); err != nil {
		return err
	}
	g.processPointer()
	g.stepScript()

	g.applyResult(g.sim.Advance(dt))
	if g.flash != nil {
		g.flash.Update(float32(dt))
		if g.flash.Done {
			g.flash = nil
		}
	}
	return nil
}

func (g *Game) stepScript() {
	sc := g.cfg.Script
	if sc == nil {
		return
	}
	if label := sc.Step(g.sim); label != "" {
		g.Screenshot(label)
	}
	if sc.Done() && g.cfg.ExitAfterScript {
		g.exiting = true
	}
}

// applyResult starts the flash and the sound for a frame with a bounce.
func (g *Game) applyResult(res bounce.StepResult) {
	if res.Contacts == 0 || res.ImpactSpeed < bounce.RestingSpeed {
		return
	}
	g.flash = bounceFlash(Themes[g.theme])
	if g.cfg.Sound != nil {
		g.cfg.Sound.PlayBounce(res.ImpactSpeed)
	}
}

// ballColor returns the flash colour while a flash runs.
func (g *Game) ballColor() bounce.Color {
	if g.flash != nil {
		return g.flash.Color
	}
	return Themes[g.theme].Ball
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	th := Themes[g.theme]
	screen.Fill(toRGBA(th.Background))

	text := panelText(g.sim, g.fps, g.tps, th.Name)

	g.mesh.reset()
	g.mesh.addBoundaries(g.sim.Boundaries(), g.vp, th.Wall)
	if g.sim.Dragging() {
		to := g.sim.Ball().Position()
		g.mesh.addLine(to.Sub(g.sim.DragVector()), to, 2, g.vp, th.Drag)
	}
	g.mesh.addBall(g.sim.Ball(), g.vp, g.ballColor())
	g.mesh.addRect(panelX, panelY, panelW, panelHeight(text), th.Panel)
	g.mesh.draw(screen)

	g.drawPanelText(screen, text)
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The arena keeps a square aspect inside any
// window shape.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.vp = Viewport{Width: outsideWidth, Height: outsideHeight}
	return outsideWidth, outsideHeight
}
