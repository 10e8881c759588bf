package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"orrery/engine/linear"
)

// LoadOBJ reads a Wavefront OBJ document. Positions, normals and
// triangular/fan faces are honored; texture coordinates, materials and
// object groups are ignored. Faces without normal references get flat
// face normals.
func LoadOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []linear.Vec3
		normals   []linear.Vec3
		m         = &Mesh{}
		line      int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
			normals = append(normals, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: face with %d vertices", line, len(fields)-1)
			}
			if err := appendFace(m, positions, normals, fields[1:]); err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadOBJFile is LoadOBJ on a filesystem path.
func LoadOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadOBJ(f)
}

func parseVec3(fields []string) (linear.Vec3, error) {
	if len(fields) < 3 {
		return linear.Vec3{}, fmt.Errorf("want 3 coordinates, got %d", len(fields))
	}
	var c [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return linear.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return linear.V3(c[0], c[1], c[2]), nil
}

// appendFace triangulates an n-gon face as a fan around its first
// vertex and appends the triangles to m.
func appendFace(m *Mesh, positions, normals []linear.Vec3, refs []string) error {
	verts := make([]Vertex, 0, len(refs))
	haveNormals := true
	for _, ref := range refs {
		parts := strings.Split(ref, "/")
		pi, err := objIndex(parts[0], len(positions))
		if err != nil {
			return err
		}
		v := Vertex{Position: positions[pi]}
		if len(parts) >= 3 && parts[2] != "" {
			ni, err := objIndex(parts[2], len(normals))
			if err != nil {
				return err
			}
			v.Normal = normals[ni]
		} else {
			haveNormals = false
		}
		verts = append(verts, v)
	}
	for i := 1; i+1 < len(verts); i++ {
		a, b, c := verts[0], verts[i], verts[i+1]
		if !haveNormals {
			n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Norm()
			a.Normal, b.Normal, c.Normal = n, n, n
		}
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, a, b, c)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return nil
}

// objIndex resolves a 1-based (or negative, relative) OBJ index.
func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d entries)", s, n)
	}
	return i, nil
}
