// Package mesh holds renderable geometry: immutable vertex/index data
// plus the built-in procedural shapes and a Wavefront OBJ loader.
package mesh

import (
	"errors"
	"math"

	"orrery/engine/linear"
)

// Vertex is a model-space position and normal. Vertices are read-only
// to the rendering core once a mesh is built.
type Vertex struct {
	Position linear.Vec3
	Normal   linear.Vec3
}

// Mesh is a triangle list. Indices reference Vertices in groups of
// three; winding is counter-clockwise for front faces.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

var errNoMesh = errors.New("mesh: empty or nil mesh")

// Validate reports whether every index references a vertex. The
// renderer calls this once per object per frame and skips offenders.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return errNoMesh
	}
	if len(m.Indices)%3 != 0 {
		return errors.New("mesh: index count not a multiple of 3")
	}
	n := uint32(len(m.Vertices))
	for _, i := range m.Indices {
		if i >= n {
			return errors.New("mesh: index out of range")
		}
	}
	return nil
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// UVSphere builds a unit sphere with the given number of latitude and
// longitude segments. Normals point outward and equal the position.
func UVSphere(latSegs, lonSegs int) *Mesh {
	if latSegs < 2 {
		latSegs = 2
	}
	if lonSegs < 3 {
		lonSegs = 3
	}
	m := &Mesh{}
	for lat := 0; lat <= latSegs; lat++ {
		theta := math.Pi * float64(lat) / float64(latSegs)
		st, ct := math.Sin(theta), math.Cos(theta)
		for lon := 0; lon <= lonSegs; lon++ {
			phi := 2 * math.Pi * float64(lon) / float64(lonSegs)
			sp, cp := math.Sin(phi), math.Cos(phi)
			p := linear.V3(float32(st*cp), float32(ct), float32(st*sp))
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: p})
		}
	}
	stride := uint32(lonSegs + 1)
	for lat := 0; lat < latSegs; lat++ {
		for lon := 0; lon < lonSegs; lon++ {
			a := uint32(lat)*stride + uint32(lon)
			b := a + stride
			// Counter-clockwise as seen from outside the sphere.
			m.Indices = append(m.Indices, a, a+1, b)
			m.Indices = append(m.Indices, a+1, b+1, b)
		}
	}
	return m
}

// Ship builds the small camera-ship hull used by the HUD overlay: an
// elongated double pyramid with a pair of fins.
func Ship() *Mesh {
	nose := linear.V3(0, 0, 1.6)
	tail := linear.V3(0, 0, -1)
	ring := []linear.Vec3{
		{X: 0.5, Y: 0, Z: 0},
		{X: 0, Y: 0.35, Z: 0},
		{X: -0.5, Y: 0, Z: 0},
		{X: 0, Y: -0.35, Z: 0},
	}
	finL := linear.V3(1.1, 0, -0.7)
	finR := linear.V3(-1.1, 0, -0.7)

	m := &Mesh{}
	addTri := func(a, b, c linear.Vec3) {
		n := b.Sub(a).Cross(c.Sub(a)).Norm()
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: a, Normal: n},
			Vertex{Position: b, Normal: n},
			Vertex{Position: c, Normal: n},
		)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	for i := range ring {
		j := (i + 1) % len(ring)
		addTri(nose, ring[i], ring[j])
		addTri(tail, ring[j], ring[i])
	}
	addTri(ring[0], finL, tail)
	addTri(finL, ring[0], nose)
	addTri(finR, ring[2], tail)
	addTri(ring[2], finR, nose)
	return m
}
