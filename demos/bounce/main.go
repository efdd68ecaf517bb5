// bounce opens a window with a single ball in a box. Drag the ball with the
// mouse and release to launch it; the panel lists the keyboard controls.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/Guc10/bounce"
	"github.com/Guc10/bounce/audio"
	"github.com/Guc10/bounce/shell"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	scriptPath := flag.String("script", "", "JSON scenario script to replay")
	policy := flag.String("policy", "", "collision policy: box or wedges (overrides config)")
	mute := flag.Bool("mute", false, "disable bounce sounds")
	debug := flag.Bool("debug", false, "log every step to stderr")
	fixed := flag.Float64("fixed", 0, "fixed physics step in seconds (0 = one step per frame)")
	shots := flag.String("shots", "screenshots", "screenshot directory")
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
	sim.SetDebugMode(*debug)

	rc := shell.RunConfig{
		Title:           "Bounce",
		Width:           800,
		Height:          800,
		ScreenshotDir:   *shots,
		ExitAfterScript: *exit,
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		if rc.Script, err = bounce.LoadScript(data); err != nil {
			log.Fatal(err)
		}
	}

	if !*mute {
		player := audio.NewPlayer(0.8)
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			rc.Sound = player
		}
	}

	if err := shell.Run(sim, rc); err != nil {
		log.Fatal(err)
	}
}
