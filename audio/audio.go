// Package audio plays a short ping for every ball bounce. Pitch and loudness
// follow the impact speed.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Guc10/bounce"
)

const (
	sampleRate   = beep.SampleRate(44100)
	pingDuration = 120 * time.Millisecond

	minFreq = 220.0
	maxFreq = 880.0

	// referenceSpeed is the impact speed that maps to full pitch and volume.
	referenceSpeed = 8.0
)

// Player mixes bounce pings into the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player with a master volume in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// PlayBounce queues a ping for an impact at speed. It is a no-op before Init
// and for impacts below bounce.RestingSpeed.
func (p *Player) PlayBounce(speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, ok := newPing(sampleRate, speed, p.volume)
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// pingParams maps an impact speed to a tone frequency and linear volume.
func pingParams(speed float64) (freq, vol float64, ok bool) {
	if math.IsNaN(speed) || speed < bounce.RestingSpeed {
		return 0, 0, false
	}
	k := min(speed/referenceSpeed, 1)
	return minFreq + (maxFreq-minFreq)*k, 0.1 + 0.5*k, true
}

// newPing builds a decaying sine ping for speed, scaled by master.
func newPing(sr beep.SampleRate, speed, master float64) (beep.Streamer, bool) {
	freq, vol, ok := pingParams(speed)
	if !ok || master <= 0 {
		return nil, false
	}
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, false
	}
	n := sr.N(pingDuration)
	shaped := &decay{streamer: beep.Take(n, tone), total: n}
	return newVolume(shaped, vol*master), true
}

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero volume
// is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// decay fades a stream linearly from full volume to zero over total samples.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(d.pos)/float64(d.total)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
