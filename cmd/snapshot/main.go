// Command snapshot renders frames offline and writes them as PNG
// files. Useful for eyeballing shading changes without a window.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"orrery/engine"
	"orrery/engine/scene"
	"orrery/engine/shade"
)

func main() {
	var (
		width    = flag.Int("width", 800, "Frame width in pixels.")
		height   = flag.Int("height", 600, "Frame height in pixels.")
		frames   = flag.Int("frames", 1, "Number of frames to render.")
		hz       = flag.Int("hz", 60, "Simulated tick rate.")
		seed     = flag.Uint("seed", 1, "Noise seed.")
		outDir   = flag.String("out", ".", "Output directory.")
		scenePth = flag.String("scene", "", "YAML body catalog replacing the built-in system.")
		material = flag.String("material", "", "Render a single body with this material instead of the system.")
	)
	flag.Parse()

	if err := run(*width, *height, *frames, *hz, uint32(*seed), *outDir, *scenePth, *material); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(width, height, frames, hz int, seed uint32, outDir, scenePath, material string) error {
	if frames <= 0 {
		return fmt.Errorf("snapshot: frames must be positive, got %d", frames)
	}
	if hz <= 0 {
		hz = 60
	}

	frame := engine.Frame{
		Mode:   scene.ModeSystem,
		Camera: scene.NewCamera(),
		Bodies: scene.DefaultSystem(),
	}
	if scenePath != "" {
		bodies, err := scene.LoadSystem(scenePath)
		if err != nil {
			return err
		}
		frame.Bodies = bodies
	}
	if material != "" {
		mat, err := materialByName(material)
		if err != nil {
			return err
		}
		frame.Mode = scene.ModeSingle
		frame.SingleMaterial = mat
	}

	r := engine.New(width, height, seed)

	bar := progressbar.NewOptions(frames,
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	dt := 1 / float32(hz)
	for i := 0; i < frames; i++ {
		frame.Time = float32(i) * dt
		r.RenderFrame(frame)

		name := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(name, r); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

func writePNG(name string, r *engine.Renderer) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, r.Framebuffer().Image()); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", name, err)
	}
	return f.Close()
}

func materialByName(name string) (shade.Material, error) {
	for m := shade.Gaseous; m.Valid(); m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("snapshot: unknown material %q", name)
}
