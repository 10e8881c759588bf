// Package engine is the CPU rendering core: it owns the framebuffer,
// runs the geometry stage and rasterizer over the scene's objects once
// per frame, and reports (never fatals on) malformed scene input.
package engine

import (
	"fmt"
	"image/color"
	"math"

	"orrery/engine/fb"
	"orrery/engine/linear"
	"orrery/engine/mesh"
	"orrery/engine/raster"
	"orrery/engine/scene"
	"orrery/engine/shade"
)

const (
	fovY     = float32(math.Pi / 3)
	nearZ    = float32(1)
	farZ     = float32(12000)
	baseDist = float32(2800)

	// parallax dampens how much the look-at point follows the pan
	// offset, sliding the system relative to the star backdrop.
	parallax = float32(0.35)

	// bodyUnit converts catalog scale to world-space radius.
	bodyUnit = float32(9)

	// lightFalloff is the distance at which the sun's contribution
	// has dropped to half.
	lightFalloff = float32(650)
)

// Frame is the per-tick input to RenderFrame. Everything here is
// owned by external collaborators (input mapping, warp machine, orbit
// clock); the engine only reads it.
type Frame struct {
	Time   float32
	Mode   scene.Mode
	Camera scene.Camera
	Bodies []scene.Body

	// SingleMaterial selects the inspected material in ModeSingle.
	SingleMaterial shade.Material

	// WarpActive swaps the ship hull to the flash material while a
	// warp charge is in flight.
	WarpActive bool
}

// Stats summarizes one rendered frame.
type Stats struct {
	Objects   int
	Triangles int
	Fragments int
	Skipped   []string
}

// object is one assembled draw call.
type object struct {
	name           string
	mesh           *mesh.Mesh
	model          linear.Mat4
	material       shade.Material
	lightDir       linear.Vec3
	lightIntensity float32
	noCull         bool
	overlay        bool // draw on a fresh depth plane
}

// Renderer renders frames into a fixed-resolution framebuffer. It is
// single-threaded: one Renderer owns its buffers and must only be used
// from one goroutine.
type Renderer struct {
	target *fb.Framebuffer
	ras    *raster.Rasterizer
	ctx    *shade.Context
	proj   linear.Mat4

	sphere *mesh.Mesh
	ship   *mesh.Mesh

	verts []raster.Vertex // reused geometry-stage scratch

	// Logf, when set, receives skip reports and seed changes.
	Logf func(format string, args ...any)
}

// New allocates a renderer with the built-in meshes and the given
// noise seed.
func New(width, height int, seed uint32) *Renderer {
	target := fb.New(width, height)
	return &Renderer{
		target: target,
		ras:    raster.New(target),
		ctx:    shade.NewContext(seed),
		proj:   linear.Perspective(fovY, float32(width)/float32(height), nearZ, farZ),
		sphere: mesh.UVSphere(24, 32),
		ship:   mesh.Ship(),
	}
}

// Framebuffer exposes the render target for presentation.
func (r *Renderer) Framebuffer() *fb.Framebuffer { return r.target }

// Seed returns the active noise seed.
func (r *Renderer) Seed() uint32 { return r.ctx.Seed }

// SetSeed regenerates every procedural surface pattern.
func (r *Renderer) SetSeed(seed uint32) {
	r.ctx.SetSeed(seed)
	r.logf("engine: noise seed %d", seed)
}

// SetBodyMesh replaces the sphere used for orbital bodies (e.g. with a
// loaded OBJ model). Invalid meshes are rejected.
func (r *Renderer) SetBodyMesh(m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.sphere = m
	return nil
}

// SetShipMesh replaces the HUD ship hull.
func (r *Renderer) SetShipMesh(m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.ship = m
	return nil
}

// RenderFrame draws one complete frame and returns its statistics.
// Objects are processed in stable catalog order so depth-test ties are
// reproducible across runs. A malformed object is skipped and
// reported; it never aborts the frame.
func (r *Renderer) RenderFrame(frame Frame) Stats {
	var stats Stats
	r.ras.ResetStats()
	r.ctx.Time = frame.Time

	r.target.Clear(color.RGBA{A: 0xFF})
	r.drawStars(frame.Time)

	view := r.viewMatrix(frame.Camera)

	var objs []object
	switch frame.Mode {
	case scene.ModeSingle:
		objs = r.assembleSingle(frame)
	default:
		objs = r.assembleSystem(frame)
	}

	for _, o := range objs {
		if err := o.mesh.Validate(); err != nil {
			stats.Skipped = append(stats.Skipped, fmt.Sprintf("%s: %v", o.name, err))
			r.logf("engine: skipping %s: %v", o.name, err)
			continue
		}
		if !o.material.Valid() {
			stats.Skipped = append(stats.Skipped, fmt.Sprintf("%s: bad material %d", o.name, o.material))
			r.logf("engine: skipping %s: bad material %d", o.name, o.material)
			continue
		}
		if o.overlay {
			r.target.ClearDepth()
		}

		r.ctx.LightDir = o.lightDir
		r.ctx.LightIntensity = o.lightIntensity
		r.ras.Cull = !o.noCull

		t := raster.NewTransform(o.model, view, r.proj, r.target.Width(), r.target.Height())
		r.verts = r.verts[:0]
		for _, v := range o.mesh.Vertices {
			r.verts = append(r.verts, t.Vertex(v))
		}
		r.ras.DrawMesh(r.verts, o.mesh.Indices, o.material, r.ctx)

		stats.Objects++
		stats.Triangles += o.mesh.TriangleCount()
	}
	stats.Fragments = r.ras.Fragments
	return stats
}

// viewMatrix derives the camera from the externally-owned view state:
// a dollying eye on +Z panned by Offset, with the look-at point
// trailing at the parallax factor.
func (r *Renderer) viewMatrix(cam scene.Camera) linear.Mat4 {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	dist := baseDist / zoom
	eye := linear.V3(cam.Offset.X, cam.Offset.Y, dist+cam.Offset.Z)
	center := linear.V3(cam.Offset.X*(1-parallax), cam.Offset.Y*(1-parallax), 0)
	return linear.LookAt(eye, center, linear.V3(0, 1, 0))
}

// assembleSystem builds the draw list for the orbital system: every
// catalog body lit by the primary, then the ship HUD overlay.
func (r *Renderer) assembleSystem(frame Frame) []object {
	bodies := frame.Bodies
	objs := make([]object, 0, len(bodies)+1)

	var sunWorld linear.Vec3
	if len(bodies) > 0 {
		sunWorld = rotateEuler(bodies[0].Position(frame.Time), frame.Camera.Rotation)
	}
	pulse := 0.85 + 0.15*sinf(frame.Time*0.7)

	for _, b := range bodies {
		world := rotateEuler(b.Position(frame.Time), frame.Camera.Rotation)

		dir, intensity := sunLight(sunWorld, world, pulse)
		objs = append(objs, object{
			name:           b.Name,
			mesh:           r.sphere,
			material:       b.Material,
			lightDir:       dir,
			lightIntensity: intensity,
			model: linear.TRS(
				world,
				frame.Camera.Rotation.Add(b.Rotation(frame.Time)),
				uniform(b.Scale*bodyUnit),
			),
		})
	}

	shipMat := shade.Hull
	if frame.WarpActive {
		shipMat = shade.Flash
	}
	zoom := frame.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	// The ship rides with the camera: placed in front of the eye so
	// it stays put on screen while the system moves behind it.
	shipPos := linear.V3(
		frame.Camera.Offset.X+120,
		frame.Camera.Offset.Y-150,
		baseDist/zoom-620,
	)
	objs = append(objs, object{
		name:           "ship",
		mesh:           r.ship,
		material:       shipMat,
		lightDir:       linear.V3(0, 0, 1),
		lightIntensity: 1.2,
		model:          linear.TRS(shipPos, linear.V3(0.15, math.Pi, 0), uniform(40)),
		noCull:         true,
		overlay:        true,
	})
	return objs
}

// assembleSingle builds the isolated inspection view: one sphere at
// the origin with a fixed studio light.
func (r *Renderer) assembleSingle(frame Frame) []object {
	s := frame.Camera.Scale
	if s <= 0 {
		s = 1
	}
	return []object{{
		name:           "single:" + frame.SingleMaterial.String(),
		mesh:           r.sphere,
		material:       frame.SingleMaterial,
		lightDir:       linear.V3(0.6, 0.7, 0.3).Norm(),
		lightIntensity: 1,
		model:          linear.TRS(linear.Vec3{}, frame.Camera.Rotation, uniform(s*140)),
	}}
}

// sunLight computes the light direction and attenuated intensity the
// primary casts on a body. The primary itself gets a fixed head-on
// light so its emissive shader still sees a sane context.
func sunLight(sun, body linear.Vec3, pulse float32) (linear.Vec3, float32) {
	v := sun.Sub(body)
	d := v.Len()
	if d < 1e-4 {
		return linear.V3(0, 0, 1), 1.1 * pulse
	}
	att := 1 / (1 + (d/lightFalloff)*(d/lightFalloff))
	return v.Scale(1 / d), (0.25 + att*0.9) * pulse
}

// drawStars scatters a deterministic twinkle field on the cleared
// backdrop. The hash keys on pixel position only, so stars stay fixed
// while their sparkle phase follows the clock.
func (r *Renderer) drawStars(t float32) {
	w, h := r.target.Width(), r.target.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx, fy := float32(x), float32(y)
			n := fracf(sinf(fx*12.9898+fy*78.233) * 43758.5453)
			if n <= 0.996 {
				continue
			}
			sparkle := clamp01(sinf(fx*0.18+fy*0.11+t*0.7)*0.5 + 0.5)
			intensity := clamp01((n - 0.996) * 250)
			bright := (0.65 + 0.35*sparkle) * intensity
			r.target.SetRaw(x, y, color.RGBA{
				R: channel(bright * (0.85 + 0.15*sparkle)),
				G: channel(bright * (0.9 + 0.1*sparkle)),
				B: channel(bright * minf(1, 1.0+0.2*sparkle)),
				A: 0xFF,
			})
		}
	}
}

// rotateEuler rotates v by the XYZ Euler angles in r (X, then Y, then
// Z), matching the system-wide rotation the camera applies.
func rotateEuler(v linear.Vec3, r linear.Vec3) linear.Vec3 {
	return linear.EulerXYZ(r).MulVec4(linear.V4(v.X, v.Y, v.Z, 1)).Vec3()
}

func uniform(s float32) linear.Vec3 { return linear.V3(s, s, s) }

func (r *Renderer) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

func sinf(v float32) float32 { return float32(math.Sin(float64(v))) }

func fracf(v float32) float32 { return v - float32(math.Floor(float64(v))) }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func channel(v float32) uint8 { return uint8(clamp01(v)*255 + 0.5) }
