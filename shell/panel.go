package shell

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/Guc10/bounce"
)

const (
	panelX, panelY = 8, 8
	panelW         = 236
	// ebitenutil's debug font is 6x16 per glyph.
	panelLineH = 16
)

// panelText renders the debug panel contents.
func panelText(sim *bounce.Simulation, fps, tps float64, theme string) string {
	b := sim.Ball()
	state := "stopped"
	if sim.Running() {
		state = "running"
	}
	if sim.Dragging() {
		state = "dragging"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ball Settings [%s]\n", state)
	fmt.Fprintf(&sb, "Gravity      %5.2f  (G)\n", b.Gravity())
	fmt.Fprintf(&sb, "Reflectance  %5.2f  (R)\n", b.Reflectance())
	fmt.Fprintf(&sb, "Radius       %5.2f  (A)\n", b.Radius())
	fmt.Fprintf(&sb, "Policy  %-6s       (P)\n", sim.Boundaries().Kind())
	fmt.Fprintf(&sb, "Theme   %-6s       (T)\n", theme)
	fmt.Fprintf(&sb, "Space start/stop  Bksp reset\n")
	fmt.Fprintf(&sb, "FPS: %.1f  TPS: %.1f", fps, tps)
	return sb.String()
}

// updateStats refreshes the FPS/TPS readout roughly twice a second.
func (g *Game) updateStats(dt float64) {
	g.statTimer += dt
	if g.statTimer < 0.5 {
		return
	}
	g.statTimer = 0
	g.fps = ebiten.ActualFPS()
	g.tps = ebiten.ActualTPS()
}

// panelHeight returns the pixel height of a panel holding text.
func panelHeight(text string) float64 {
	return float64((strings.Count(text, "\n")+1)*panelLineH + 4)
}

func (g *Game) drawPanelText(screen *ebiten.Image, text string) {
	ebitenutil.DebugPrintAt(screen, text, panelX+4, panelY+2)
}
