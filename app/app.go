// Package app wires the HAL to the rendering engine: it maps keyboard
// state to camera and scene signals, steps the warp machine with real
// elapsed time, renders one frame per tick and presents it.
package app

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"orrery/engine"
	"orrery/engine/linear"
	"orrery/engine/mesh"
	"orrery/engine/scene"
	"orrery/engine/shade"
	"orrery/hal"
)

// ErrQuit is returned by the frame step when the user asks to exit.
var ErrQuit = errors.New("quit requested")

// Warp relocation bounds, matching the scene's populated volume.
const (
	warpRadiusMin   = 250
	warpRadiusMax   = 2400
	warpVerticalMax = 480
	warpChargeRate  = float32(1 / 0.45) // full charge in 450ms
)

// Movement rates in units per second, so behavior is frame-rate
// independent.
const (
	panRate    = float32(600)
	rotateRate = float32(math.Pi * 0.8)
	zoomRate   = float32(1.2)
)

// Config selects resolution, seed and optional scene/model overrides.
type Config struct {
	Width  int
	Height int
	// Seed is the process noise seed; 0 picks one from the clock.
	Seed uint32
	// ScenePath optionally replaces the built-in body catalog with a
	// YAML file.
	ScenePath string
	// BodyOBJ / ShipOBJ optionally replace the built-in meshes.
	BodyOBJ string
	ShipOBJ string
}

type application struct {
	h        hal.HAL
	log      hal.Logger
	renderer *engine.Renderer

	bodies    []scene.Body
	cam       scene.Camera
	mode      scene.Mode
	singleMat shade.Material
	warp      *scene.WarpMachine
	rng       *rand.Rand

	lastMillis uint64
	lastState  scene.WarpState
}

// New builds the application and returns its per-tick step function.
func New(h hal.HAL, cfg Config) func() error {
	a := &application{
		h:         h,
		log:       h.Logger(),
		cam:       scene.NewCamera(),
		mode:      scene.ModeSystem,
		singleMat: shade.Rocky,
		bodies:    scene.DefaultSystem(),
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint32(h.Time().NowMillis()) | 1
	}
	a.rng = rand.New(rand.NewSource(int64(seed)))

	fbuf := h.Display().Framebuffer()
	w, hgt := cfg.Width, cfg.Height
	if w <= 0 || hgt <= 0 {
		w, hgt = fbuf.Width(), fbuf.Height()
	}
	a.renderer = engine.New(w, hgt, seed)
	a.renderer.Logf = func(format string, args ...any) {
		a.log.WriteLineString(fmt.Sprintf(format, args...))
	}
	a.warp = scene.NewWarpMachine(warpChargeRate, a.sampleWarpOffset)

	if cfg.ScenePath != "" {
		bodies, err := scene.LoadSystem(cfg.ScenePath)
		if err != nil {
			a.log.WriteLineString("app: scene config: " + err.Error())
		} else {
			a.bodies = bodies
			a.log.WriteLineString(fmt.Sprintf("app: loaded %d bodies from %s", len(bodies), cfg.ScenePath))
		}
	}
	a.loadMeshes(cfg)

	a.log.WriteLineString(fmt.Sprintf("app: %dx%d, seed %d, %d bodies", w, hgt, seed, len(a.bodies)))
	return a.step
}

func (a *application) loadMeshes(cfg Config) {
	if cfg.BodyOBJ != "" {
		m, err := mesh.LoadOBJFile(cfg.BodyOBJ)
		if err == nil {
			err = a.renderer.SetBodyMesh(m)
		}
		if err != nil {
			a.log.WriteLineString("app: body mesh: " + err.Error())
		}
	}
	if cfg.ShipOBJ != "" {
		m, err := mesh.LoadOBJFile(cfg.ShipOBJ)
		if err == nil {
			err = a.renderer.SetShipMesh(m)
		}
		if err != nil {
			a.log.WriteLineString("app: ship mesh: " + err.Error())
		}
	}
}

// step runs once per display tick: input, simulation, render, present.
func (a *application) step() error {
	now := a.h.Time().NowMillis()
	var dt float32
	if a.lastMillis != 0 && now > a.lastMillis {
		dt = float32(now-a.lastMillis) / 1000
	}
	a.lastMillis = now

	if err := a.handleEvents(); err != nil {
		return err
	}
	a.handleHeld(dt)

	if jump, jumped := a.warp.Update(dt); jumped {
		a.cam.Offset = jump
	}
	a.logWarpTransitions()

	a.renderer.RenderFrame(engine.Frame{
		Time:           float32(now) / 1000,
		Mode:           a.mode,
		Camera:         a.cam,
		Bodies:         a.bodies,
		SingleMaterial: a.singleMat,
		WarpActive:     a.warp.Active(),
	})

	if a.warp.State() == scene.WarpCharging || a.warp.State() == scene.WarpJumping {
		drawWarpOverlay(a.renderer.Framebuffer(), a.warp.Progress())
	}

	a.h.Display().Framebuffer().Copy(a.renderer.Framebuffer().Pix())
	return nil
}

// handleEvents drains discrete key edges: warp trigger, mode and
// material selection, reseeding, quit.
func (a *application) handleEvents() error {
	kbd := a.h.Input().Keyboard()
	for {
		select {
		case ev := <-kbd.Events():
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyEscape:
				return ErrQuit
			case hal.KeySpace:
				if a.mode == scene.ModeSystem {
					a.warp.Start()
				}
			case hal.KeyN:
				a.renderer.SetSeed(a.rng.Uint32() | 1)
			case hal.Key1:
				a.mode = scene.ModeSystem
			default:
				if mat, ok := materialKeys[ev.Code]; ok {
					a.mode = scene.ModeSingle
					a.singleMat = mat
					// Leaving the system view cancels any charge.
					a.warp.Abort()
				}
			}
		default:
			return nil
		}
	}
}

// materialKeys maps the number row to inspected materials.
var materialKeys = map[hal.KeyCode]shade.Material{
	hal.Key2: shade.Rocky,
	hal.Key3: shade.Stellar,
	hal.Key4: shade.Gaseous,
	hal.Key5: shade.Cheese,
	hal.Key6: shade.Cat,
	hal.Key7: shade.Bubblegum,
	hal.Key8: shade.Icy,
	hal.Key9: shade.Giant,
}

// handleHeld applies continuous controls scaled by elapsed time.
func (a *application) handleHeld(dt float32) {
	kbd := a.h.Input().Keyboard()
	down := func(c hal.KeyCode) bool { return kbd.Down(c) }

	pan := panRate * dt
	if down(hal.KeyRight) || down(hal.KeyD) {
		a.cam.Offset.X += pan
	}
	if down(hal.KeyLeft) || down(hal.KeyA) {
		a.cam.Offset.X -= pan
	}
	if down(hal.KeyUp) || down(hal.KeyW) {
		a.cam.Offset.Y += pan
	}
	if down(hal.KeyDown) || down(hal.KeyS) {
		a.cam.Offset.Y -= pan
	}

	rot := rotateRate * dt
	if down(hal.KeyQ) {
		a.cam.Rotation.X -= rot
	}
	if down(hal.KeyU) {
		a.cam.Rotation.X += rot
	}
	if down(hal.KeyE) {
		a.cam.Rotation.Y -= rot
	}
	if down(hal.KeyR) {
		a.cam.Rotation.Y += rot
	}
	if down(hal.KeyT) {
		a.cam.Rotation.Z -= rot
	}
	if down(hal.KeyY) {
		a.cam.Rotation.Z += rot
	}

	zoom := 1 + zoomRate*dt
	if a.mode == scene.ModeSystem {
		if down(hal.KeyZ) {
			a.cam.Zoom *= zoom
		}
		if down(hal.KeyX) {
			a.cam.Zoom /= zoom
		}
	} else {
		if down(hal.KeyZ) {
			a.cam.Scale *= zoom
		}
		if down(hal.KeyX) {
			a.cam.Scale /= zoom
		}
	}
}

// sampleWarpOffset picks the warp destination within the populated
// scene bounds, deterministic for a given seed.
func (a *application) sampleWarpOffset() linear.Vec3 {
	radius := warpRadiusMin + a.rng.Float32()*(warpRadiusMax-warpRadiusMin)
	angle := a.rng.Float32() * 2 * math.Pi
	vertical := (a.rng.Float32()*2 - 1) * warpVerticalMax
	return linear.V3(
		radius*float32(math.Cos(float64(angle))),
		vertical,
		0,
	)
}

func (a *application) logWarpTransitions() {
	s := a.warp.State()
	if s != a.lastState {
		a.log.WriteLineString("app: warp " + s.String())
		a.lastState = s
	}
}
