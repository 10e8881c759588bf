package mesh

import (
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	good := UVSphere(4, 6)
	if err := good.Validate(); err != nil {
		t.Fatalf("sphere failed validation: %v", err)
	}

	var nilMesh *Mesh
	if err := nilMesh.Validate(); err == nil {
		t.Error("nil mesh validated")
	}
	if err := (&Mesh{}).Validate(); err == nil {
		t.Error("empty mesh validated")
	}

	bad := &Mesh{
		Vertices: []Vertex{{}, {}, {}},
		Indices:  []uint32{0, 1, 2, 0},
	}
	if err := bad.Validate(); err == nil {
		t.Error("partial triangle validated")
	}

	oob := &Mesh{
		Vertices: []Vertex{{}, {}, {}},
		Indices:  []uint32{0, 1, 9},
	}
	if err := oob.Validate(); err == nil {
		t.Error("out-of-range index validated")
	}
}

func TestUVSphereGeometry(t *testing.T) {
	m := UVSphere(8, 12)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 8*12*2 {
		t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), 8*12*2)
	}

	for i, v := range m.Vertices {
		if r := v.Position.Len(); math.Abs(float64(r-1)) > 1e-5 {
			t.Fatalf("vertex %d at radius %v, want 1", i, r)
		}
		if v.Normal != v.Position {
			t.Fatalf("vertex %d normal differs from position", i)
		}
	}

	// Each triangle winds counter-clockwise as seen from outside:
	// its geometric normal points away from the center.
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() == 0 {
			continue // degenerate cap quad half
		}
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

func TestUVSphereClampsSegments(t *testing.T) {
	m := UVSphere(0, 0)
	if err := m.Validate(); err != nil {
		t.Fatalf("minimum sphere invalid: %v", err)
	}
}

func TestShip(t *testing.T) {
	m := Ship()
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() == 0 {
		t.Fatal("ship has no triangles")
	}
	for i, v := range m.Vertices {
		if l := v.Normal.Len(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("vertex %d normal length %v", i, l)
		}
	}
	// The hull is symmetric about the YZ plane.
	var sumX float32
	for _, v := range m.Vertices {
		sumX += v.Position.X
	}
	if math.Abs(float64(sumX)) > 1e-4 {
		t.Errorf("hull X asymmetry: %v", sumX)
	}
}
