// Package scene holds the world state the renderer consumes each
// frame: the body catalog with its orbital parameterization, the
// camera, the render mode and the warp state machine.
package scene

import (
	"math"

	"orrery/engine/linear"
	"orrery/engine/shade"
)

// Body describes one orbiting object. Positions are derived from
// elapsed time, not stored, so the catalog itself is immutable during
// a run.
type Body struct {
	Name     string
	Material shade.Material
	Scale    float32

	// Orbit: a time-parameterized ellipse in the system plane.
	// Radius is the semi-major axis, Rate the angular speed in
	// rad/s, Squash the Y semi-axis ratio (1 = circle).
	Radius float32
	Rate   float32
	Squash float32

	// Tilt is the body's static axis tilt; Spin its rotation speed
	// about Y in rad/s.
	Tilt linear.Vec3
	Spin float32
}

// Position returns the body's orbital position at time t seconds.
func (b Body) Position(t float32) linear.Vec3 {
	if b.Radius == 0 {
		return linear.Vec3{}
	}
	a := t * b.Rate
	return linear.V3(
		b.Radius*cosf(a),
		b.Radius*sinf(a)*b.Squash,
		0,
	)
}

// Rotation returns the body's total rotation (tilt plus accumulated
// spin) at time t seconds.
func (b Body) Rotation(t float32) linear.Vec3 {
	r := b.Tilt
	r.Y += t * b.Spin
	return r
}

// DefaultSystem returns the built-in eight-body catalog.
func DefaultSystem() []Body {
	return []Body{
		{Name: "sol", Material: shade.Stellar, Scale: 8},
		{Name: "ferros", Material: shade.Rocky, Scale: 3.2, Radius: 260, Rate: 0.25, Squash: 0.9, Tilt: linear.V3(-0.08, 0.35, 0), Spin: 0.4},
		{Name: "felis", Material: shade.Cat, Scale: 3.6, Radius: 420, Rate: 0.18, Squash: 0.75, Tilt: linear.V3(-0.12, 0.18, 0.05), Spin: 0.6},
		{Name: "caseus", Material: shade.Cheese, Scale: 4, Radius: 600, Rate: 0.12, Squash: 0.8, Tilt: linear.V3(0.15, -0.22, 0), Spin: 0.25},
		{Name: "aeolus", Material: shade.Gaseous, Scale: 5, Radius: 980, Rate: 0.05, Squash: 0.65, Tilt: linear.V3(0.05, 0.15, 0), Spin: 0.15},
		{Name: "gumma", Material: shade.Bubblegum, Scale: 4.3, Radius: 1280, Rate: 0.08, Squash: 0.7, Tilt: linear.V3(0.3, -0.1, 0.2), Spin: 0.2},
		{Name: "glacia", Material: shade.Icy, Scale: 4.8, Radius: 1680, Rate: 0.03, Squash: 0.85, Tilt: linear.V3(-0.05, 0.12, -0.08), Spin: 0.12},
		{Name: "titanus", Material: shade.Giant, Scale: 6.2, Radius: 2300, Rate: 0.015, Squash: 0.8, Tilt: linear.V3(0.04, -0.18, 0.03), Spin: 0.08},
	}
}

// Mode selects what the frame shows.
type Mode uint8

const (
	// ModeSystem renders the full orbital system plus the ship HUD.
	ModeSystem Mode = iota
	// ModeSingle renders one isolated body for material inspection.
	ModeSingle
)

// Camera is the externally-driven view state. Offset pans the view,
// Rotation turns the whole system, Zoom scales the system view and
// Scale the single-object view.
type Camera struct {
	Offset   linear.Vec3
	Rotation linear.Vec3
	Zoom     float32
	Scale    float32
}

// NewCamera returns the default view.
func NewCamera() Camera {
	return Camera{Zoom: 1, Scale: 1}
}

func sinf(v float32) float32 { return float32(math.Sin(float64(v))) }
func cosf(v float32) float32 { return float32(math.Cos(float64(v))) }
