// Package raster implements the fixed-function geometry stage and the
// triangle rasterizer of the software pipeline.
package raster

import (
	"orrery/engine/linear"
	"orrery/engine/mesh"
)

// Vertex is a geometry-stage output: screen-space position (pixels,
// Y down, Z = NDC depth), the clip-space w and its reciprocal for
// perspective-correct interpolation, and the model-space attributes
// the shading engine consumes.
type Vertex struct {
	Screen linear.Vec3
	ClipW  float32
	InvW   float32
	Pos    linear.Vec3
	Normal linear.Vec3
}

// Transform bundles the per-draw matrices. The normal matrix (the
// inverse-transpose of the model's upper 3x3) is cached here and
// recomputed on every model-matrix change so it is never stale under
// rotation or non-uniform scale.
type Transform struct {
	Model linear.Mat4
	View  linear.Mat4
	Proj  linear.Mat4

	Width  int
	Height int

	mvp    linear.Mat4
	normal linear.Mat3
}

// NewTransform builds a Transform for one draw call.
func NewTransform(model, view, proj linear.Mat4, width, height int) Transform {
	t := Transform{View: view, Proj: proj, Width: width, Height: height}
	t.SetModel(model)
	return t
}

// SetModel replaces the model matrix and recomputes the derived
// model-view-projection and normal matrices.
func (t *Transform) SetModel(model linear.Mat4) {
	t.Model = model
	t.mvp = t.Proj.Mul(t.View).Mul(model)
	t.normal = normalMatrix(model)
}

// NormalMatrix returns the cached inverse-transpose (or the fallback,
// see normalMatrix).
func (t *Transform) NormalMatrix() linear.Mat3 { return t.normal }

// normalMatrix derives the matrix applied to normals. A singular model
// matrix (zero determinant) falls back to the raw upper 3x3 so the
// frame still renders; normals are re-normalized afterwards anyway.
func normalMatrix(model linear.Mat4) linear.Mat3 {
	u := model.Upper3()
	inv, ok := u.Invert()
	if !ok {
		return u
	}
	return inv.Transpose()
}

// Vertex runs one model-space vertex through model-view-projection,
// the perspective divide and the viewport mapping, and transforms the
// normal through the cached normal matrix.
func (t *Transform) Vertex(v mesh.Vertex) Vertex {
	clip := t.mvp.MulVec4(linear.V4(v.Position.X, v.Position.Y, v.Position.Z, 1))

	var out Vertex
	out.ClipW = clip.W
	out.Pos = v.Position
	out.Normal = t.normal.MulVec3(v.Normal).Norm()

	if clip.W != 0 {
		out.InvW = 1 / clip.W
		ndc := linear.V3(clip.X*out.InvW, clip.Y*out.InvW, clip.Z*out.InvW)
		out.Screen = linear.V3(
			(ndc.X+1)*0.5*float32(t.Width),
			(1-ndc.Y)*0.5*float32(t.Height),
			ndc.Z,
		)
	}
	return out
}
