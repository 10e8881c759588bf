package raster

import (
	"math"

	"orrery/engine/fb"
	"orrery/engine/shade"
)

// nearEpsilon rejects triangles with a vertex at or behind the camera
// plane. Full polygon clipping is not needed for this scene geometry.
const nearEpsilon = 1e-6

// Rasterizer converts screen-space triangles into shaded fragments
// written to a framebuffer. It is single-threaded by design; the depth
// buffer inside the target provides the strict less-than test.
type Rasterizer struct {
	Target *fb.Framebuffer

	// Cull enables back-face culling. The ship/HUD overlay disables
	// it so thin hull fins stay visible from both sides.
	Cull bool

	// Fragments counts fragments shaded since the last ResetStats.
	Fragments int
}

// New returns a Rasterizer writing to target with back-face culling on.
func New(target *fb.Framebuffer) *Rasterizer {
	return &Rasterizer{Target: target, Cull: true}
}

// ResetStats zeroes the fragment counter.
func (r *Rasterizer) ResetStats() { r.Fragments = 0 }

// DrawTriangle rasterizes one triangle using the edge-function
// algorithm with a top-left fill rule, perspective-correct attribute
// interpolation and per-fragment procedural shading.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 Vertex, mat shade.Material, ctx *shade.Context) {
	// Near-plane simplification: any vertex at or behind the camera
	// rejects the whole triangle.
	if v0.ClipW <= nearEpsilon || v1.ClipW <= nearEpsilon || v2.ClipW <= nearEpsilon {
		return
	}

	area := edge(v0.Screen.X, v0.Screen.Y, v1.Screen.X, v1.Screen.Y, v2.Screen.X, v2.Screen.Y)
	if area == 0 {
		return
	}
	// Screen space is Y-down, so front faces (counter-clockwise in
	// model space) come out with negative area here.
	if area > 0 && r.Cull {
		return
	}
	// Canonicalize to positive area so the inside tests read uniformly.
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	w, h := r.Target.Width(), r.Target.Height()
	minX := int(math.Floor(float64(min3(v0.Screen.X, v1.Screen.X, v2.Screen.X))))
	maxX := int(math.Ceil(float64(max3(v0.Screen.X, v1.Screen.X, v2.Screen.X))))
	minY := int(math.Floor(float64(min3(v0.Screen.Y, v1.Screen.Y, v2.Screen.Y))))
	maxY := int(math.Ceil(float64(max3(v0.Screen.Y, v1.Screen.Y, v2.Screen.Y))))
	if maxX < 0 || maxY < 0 || minX >= w || minY >= h {
		return
	}
	minX, minY = maxInt(minX, 0), maxInt(minY, 0)
	maxX, maxY = minInt(maxX, w-1), minInt(maxY, h-1)

	tl0 := topLeft(v1, v2)
	tl1 := topLeft(v2, v0)
	tl2 := topLeft(v0, v1)
	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			e0 := edge(v1.Screen.X, v1.Screen.Y, v2.Screen.X, v2.Screen.Y, px, py)
			e1 := edge(v2.Screen.X, v2.Screen.Y, v0.Screen.X, v0.Screen.Y, px, py)
			e2 := edge(v0.Screen.X, v0.Screen.Y, v1.Screen.X, v1.Screen.Y, px, py)
			if !inside(e0, tl0) || !inside(e1, tl1) || !inside(e2, tl2) {
				continue
			}

			w0 := e0 * invArea
			w1 := e1 * invArea
			w2 := e2 * invArea

			// NDC depth is affine in screen space.
			depth := w0*v0.Screen.Z + w1*v1.Screen.Z + w2*v2.Screen.Z

			// Perspective-correct attribute interpolation: weight
			// each attribute by its vertex 1/w, then divide by the
			// interpolated 1/w.
			iw := w0*v0.InvW + w1*v1.InvW + w2*v2.InvW
			if iw == 0 {
				continue
			}
			k0 := w0 * v0.InvW / iw
			k1 := w1 * v1.InvW / iw
			k2 := w2 * v2.InvW / iw

			pos := v0.Pos.Scale(k0).Add(v1.Pos.Scale(k1)).Add(v2.Pos.Scale(k2))
			nrm := v0.Normal.Scale(k0).Add(v1.Normal.Scale(k1)).Add(v2.Normal.Scale(k2)).Norm()

			frag := shade.Fragment{
				Pos:      pos,
				Normal:   nrm,
				Depth:    depth,
				Material: mat,
			}
			c, ok := shade.Shade(frag, ctx)
			if !ok {
				return
			}
			r.Fragments++
			r.Target.WritePixel(x, y, c.RGBA(), depth)
		}
	}
}

// DrawMesh transforms and rasterizes every triangle of a validated
// mesh through t.
func (r *Rasterizer) DrawMesh(verts []Vertex, indices []uint32, mat shade.Material, ctx *shade.Context) {
	for i := 0; i+2 < len(indices); i += 3 {
		r.DrawTriangle(verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]], mat, ctx)
	}
}

// edge is the 2D cross product (b-a) x (p-a): positive when p lies to
// the left of a->b in this Y-down coordinate system.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft classifies the a->b boundary for the fill rule: a pixel
// center exactly on an edge belongs to the triangle only when that
// edge is a top edge (horizontal, interior below) or a left edge.
func topLeft(a, b Vertex) bool {
	dx := b.Screen.X - a.Screen.X
	dy := b.Screen.Y - a.Screen.Y
	return (dy == 0 && dx > 0) || dy < 0
}

func inside(e float32, tl bool) bool {
	if e > 0 {
		return true
	}
	return e == 0 && tl
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
