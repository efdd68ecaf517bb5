// termbounce runs the bouncing ball in the terminal. Drag with the mouse to
// launch; the bottom row lists the keys.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/Guc10/bounce"
	"github.com/Guc10/bounce/audio"
	"github.com/Guc10/bounce/term"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	scriptPath := flag.String("script", "", "JSON scenario script to replay")
	policy := flag.String("policy", "", "collision policy: box or wedges (overrides config)")
	mute := flag.Bool("mute", false, "disable bounce sounds")
	fixed := flag.Float64("fixed", 0, "fixed physics step in seconds (0 = one step per frame)")
	fps := flag.Int("fps", 60, "redraw rate")
	exit := flag.Bool("exit", false, "quit when the script finishes")
	flag.Parse()

	cfg := bounce.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		if cfg, err = bounce.LoadConfig(data); err != nil {
			log.Fatal(err)
		}
	}
	if *policy != "" {
		cfg.Policy = *policy
	}
	if *fixed > 0 {
		cfg.FixedStep = *fixed
	}

	sim, err := bounce.NewSimulation(cfg)
	if err != nil {
		log.Fatal(err)
	}

	opts := term.Options{ExitAfterScript: *exit}
	if *fps > 0 {
		opts.FrameInterval = time.Second / time.Duration(*fps)
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		if opts.Script, err = bounce.LoadScript(data); err != nil {
			log.Fatal(err)
		}
	}

	if !*mute {
		player := audio.NewPlayer(0.8)
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			opts.Sound = player
		}
	}

	if err := term.Run(sim, opts); err != nil {
		log.Fatal(err)
	}
}
