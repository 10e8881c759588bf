// Package shade synthesizes surface color for rasterized fragments.
//
// Every material is a pure function of a Fragment and a Context: the
// same inputs always produce the same color, and all state a material
// may read (noise seed, light, time) travels in the Context. That
// keeps the per-fragment path branch-predictable and the materials
// unit-testable by sampling fixed inputs.
package shade

import (
	"image/color"

	"orrery/engine/linear"
)

// Material identifies one entry of the closed procedural material set.
type Material uint8

const (
	Gaseous Material = iota
	Rocky
	Stellar
	Cheese
	Cat
	Bubblegum
	Icy
	Giant
	Hull
	Flash

	numMaterials
)

var materialNames = [numMaterials]string{
	"gaseous", "rocky", "stellar", "cheese", "cat",
	"bubblegum", "icy", "giant", "hull", "flash",
}

func (m Material) String() string {
	if m >= numMaterials {
		return "unknown"
	}
	return materialNames[m]
}

// Valid reports whether m names a known material.
func (m Material) Valid() bool { return m < numMaterials }

// Fragment is the interpolated per-pixel record a material consumes.
// Pos is in the model-space shading domain, Normal is the transformed
// re-normalized surface normal.
type Fragment struct {
	Pos      linear.Vec3
	Normal   linear.Vec3
	Depth    float32
	Material Material
}

// Context carries the explicit shading state for one draw: the process
// seed (chosen once at startup or on user request), the light reaching
// the object and the animation clock.
type Context struct {
	Seed           uint32
	LightDir       linear.Vec3
	LightIntensity float32
	Time           float32

	// offset is the seed-derived domain shift, cached so materials
	// do not recompute it per fragment.
	offset linear.Vec3
}

// NewContext builds a Context for the given seed with a default
// head-on light.
func NewContext(seed uint32) *Context {
	return &Context{
		Seed:           seed,
		LightDir:       linear.V3(0.6, 0.7, 0.3).Norm(),
		LightIntensity: 1,
		offset:         SeedOffset(seed),
	}
}

// SetSeed changes the seed and recomputes the derived domain offset.
func (c *Context) SetSeed(seed uint32) {
	c.Seed = seed
	c.offset = SeedOffset(seed)
}

// Color is a linear RGB triple in [0,1] per channel (before Clamp).
type Color struct {
	R, G, B float32
}

func (c Color) Add(o Color) Color     { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Scale(s float32) Color { return Color{c.R * s, c.G * s, c.B * s} }

// Mix returns c*(1-t) + o*t.
func (c Color) Mix(o Color, t float32) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamp bounds every channel to [0,1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGBA converts to an opaque 8-bit display color.
func (c Color) RGBA() color.RGBA {
	cc := c.Clamp()
	return color.RGBA{
		R: uint8(cc.R*255 + 0.5),
		G: uint8(cc.G*255 + 0.5),
		B: uint8(cc.B*255 + 0.5),
		A: 0xFF,
	}
}

type shaderFunc func(Fragment, *Context) Color

var shaders = [numMaterials]shaderFunc{
	Gaseous:   shadeGaseous,
	Rocky:     shadeRocky,
	Stellar:   shadeStellar,
	Cheese:    shadeCheese,
	Cat:       shadeCat,
	Bubblegum: shadeBubblegum,
	Icy:       shadeIcy,
	Giant:     shadeGiant,
	Hull:      shadeHull,
	Flash:     shadeFlash,
}

// Shade dispatches f to its material function. ok is false for an
// out-of-range material id; the caller treats that as malformed scene
// input and skips the object.
func Shade(f Fragment, ctx *Context) (c Color, ok bool) {
	if !f.Material.Valid() {
		return Color{}, false
	}
	return shaders[f.Material](f, ctx).Clamp(), true
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
