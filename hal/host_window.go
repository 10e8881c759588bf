package hal

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"orrery/internal/buildinfo"
)

// WindowConfig controls the desktop runner.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	// Debug overlays frame statistics in the window corner.
	Debug bool
}

// RunWindow opens a desktop window that presents the framebuffer and
// forwards keyboard input. It blocks until the window closes or the
// app step returns an error.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("hal: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	h := New(cfg.Width, cfg.Height).(*hostHAL)
	step := newApp(h)

	title := cfg.Title
	if title == "" {
		title = "orrery"
	}
	g := &hostGame{h: h, step: step, debug: cfg.Debug}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	step    func() error
	debug   bool
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.stepWall()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.scratch = make([]byte, len(fb.buf))
	}
	fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("tps %.0f fps %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
