package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"orrery/app"
	"orrery/hal"
)

func main() {
	var (
		headless hal.HeadlessConfig
		appCfg   app.Config
		seed     uint
		debug    bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&appCfg.Width, "width", 800, "Framebuffer width in pixels.")
	flag.IntVar(&appCfg.Height, "height", 600, "Framebuffer height in pixels.")
	flag.UintVar(&seed, "seed", 0, "Noise seed (0 = derive from the clock).")
	flag.StringVar(&appCfg.ScenePath, "scene", "", "YAML body catalog replacing the built-in system.")
	flag.StringVar(&appCfg.BodyOBJ, "body-obj", "", "OBJ mesh replacing the built-in body sphere.")
	flag.StringVar(&appCfg.ShipOBJ, "ship-obj", "", "OBJ mesh replacing the built-in ship.")
	flag.BoolVar(&debug, "debug", false, "Overlay frame statistics in the window.")
	flag.Parse()
	appCfg.Seed = uint32(seed)

	newApp := func(h hal.HAL) func() error {
		return app.New(h, appCfg)
	}

	if headless.Enabled {
		headless.Width = appCfg.Width
		headless.Height = appCfg.Height
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrQuit) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{
		Width:  appCfg.Width,
		Height: appCfg.Height,
		Title:  "orrery",
		Debug:  debug,
	}); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
