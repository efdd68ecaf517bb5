package shell

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Guc10/bounce"
)

// shot is a screenshot request together with the simulation state at the
// moment it was made. The state goes into the file name and a JSON sidecar
// so scripted runs can be compared frame for frame.
type shot struct {
	Label       string     `json:"label"`
	Policy      string     `json:"policy"`
	Step        uint64     `json:"step"`
	Running     bool       `json:"running"`
	Position    mgl64.Vec2 `json:"position"`
	Velocity    mgl64.Vec2 `json:"velocity"`
	Gravity     float64    `json:"gravity"`
	Reflectance float64    `json:"reflectance"`
	Radius      float64    `json:"radius"`
}

func captureShot(sim *bounce.Simulation, label string) shot {
	b := sim.Ball()
	return shot{
		Label:       label,
		Policy:      sim.Boundaries().Kind().String(),
		Step:        sim.Steps(),
		Running:     sim.Running(),
		Position:    b.Position(),
		Velocity:    b.Velocity(),
		Gravity:     b.Gravity(),
		Reflectance: b.Reflectance(),
		Radius:      b.Radius(),
	}
}

// baseName is the file name without extension:
// <stamp>_<policy>_step<N>_<label>.
func (s shot) baseName(stamp string) string {
	return fmt.Sprintf("%s_%s_step%d_%s", stamp, s.Policy, s.Step, sanitizeLabel(s.Label))
}

// Screenshot records the ball state now and captures the rendered frame at
// the end of this frame's Draw. Files go to RunConfig.ScreenshotDir.
func (g *Game) Screenshot(label string) {
	g.shots = append(g.shots, captureShot(g.sim, label))
}

// flushScreenshots writes a PNG and a state sidecar for every queued shot.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.shots) == 0 {
		return
	}
	defer func() { g.shots = g.shots[:0] }()

	dir := g.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[bounce] screenshot: mkdir %s: %v\n", dir, err)
		return
	}

	size := screen.Bounds().Size()
	pixels := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, size.X, size.Y)

	stamp := time.Now().Format("20060102_150405")
	for _, s := range g.shots {
		base := filepath.Join(dir, s.baseName(stamp))
		if err := writePNG(base+".png", img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[bounce] screenshot: %v\n", err)
			continue
		}
		if err := writeState(base+".json", s); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[bounce] screenshot: %v\n", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeState(path string, s shot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
