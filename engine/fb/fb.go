// Package fb owns the color framebuffer and its parallel depth buffer.
//
// All pixel writes are bounds-checked and depth-tested here so the hot
// rasterizer path never has to care about either failing.
package fb

import (
	"image"
	"image/color"
	"math"
)

// FarDepth is the depth-plane clear sentinel. Any finite fragment
// depth passes the test against it.
var FarDepth = float32(math.Inf(1))

// Framebuffer is a fixed-resolution RGBA color plane plus a parallel
// float32 depth plane.
type Framebuffer struct {
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes per pixel
	depth  []float32
}

// New allocates a framebuffer. Width and height must be positive.
func New(width, height int) *Framebuffer {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
		depth:  make([]float32, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Pix exposes the raw RGBA plane for presentation. Row-major, no
// padding, stride = Width*4.
func (f *Framebuffer) Pix() []uint8 { return f.pix }

// Clear resets every pixel to bg and every depth entry to FarDepth.
func (f *Framebuffer) Clear(bg color.RGBA) {
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i+0] = bg.R
		f.pix[i+1] = bg.G
		f.pix[i+2] = bg.B
		f.pix[i+3] = 0xFF
	}
	f.ClearDepth()
}

// ClearDepth resets only the depth plane. The ship/HUD pass uses this
// to draw a fresh layer over an already rendered scene.
func (f *Framebuffer) ClearDepth() {
	n := len(f.depth)
	if n == 0 {
		return
	}
	f.depth[0] = FarDepth
	for i := 1; i < n; i *= 2 {
		copy(f.depth[i:], f.depth[:i])
	}
}

// WritePixel stores c at (x, y) if the coordinate is in bounds and
// depth is strictly less than the stored depth. Ties keep the earlier
// fragment. Out-of-range writes are silently dropped.
func (f *Framebuffer) WritePixel(x, y int, c color.RGBA, depth float32) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	di := y*f.width + x
	if depth >= f.depth[di] {
		return
	}
	f.depth[di] = depth
	pi := di * 4
	f.pix[pi+0] = c.R
	f.pix[pi+1] = c.G
	f.pix[pi+2] = c.B
	f.pix[pi+3] = 0xFF
}

// SetRaw stores c at (x, y) ignoring the depth plane. Backdrop and
// overlay effects (star field, warp flash) use it.
func (f *Framebuffer) SetRaw(x, y int, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	pi := (y*f.width + x) * 4
	f.pix[pi+0] = c.R
	f.pix[pi+1] = c.G
	f.pix[pi+2] = c.B
	f.pix[pi+3] = 0xFF
}

// At returns the stored color at (x, y), or opaque black out of range.
func (f *Framebuffer) At(x, y int) color.RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{A: 0xFF}
	}
	pi := (y*f.width + x) * 4
	return color.RGBA{R: f.pix[pi], G: f.pix[pi+1], B: f.pix[pi+2], A: f.pix[pi+3]}
}

// DepthAt returns the stored depth at (x, y), or FarDepth out of range.
func (f *Framebuffer) DepthAt(x, y int) float32 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return FarDepth
	}
	return f.depth[y*f.width+x]
}

// Image copies the color plane into a new image.RGBA, for PNG export.
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.pix)
	return img
}
