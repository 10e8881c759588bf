package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orrery/engine/shade"
)

const sampleCatalog = `
bodies:
  - name: anchor
    material: stellar
    scale: 8
  - name: pebble
    material: rocky
    scale: 2.5
    radius: 300
    rate: 0.2
    squash: 0.9
    tilt: [0.1, 0, 0]
    spin: 0.4
`

func TestParseSystem(t *testing.T) {
	bodies, err := ParseSystem([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, bodies, 2)

	assert.Equal(t, "anchor", bodies[0].Name)
	assert.Equal(t, shade.Stellar, bodies[0].Material)
	// Squash defaults to a circular orbit when omitted.
	assert.EqualValues(t, 1, bodies[0].Squash)

	p := bodies[1]
	assert.Equal(t, shade.Rocky, p.Material)
	assert.EqualValues(t, 300, p.Radius)
	assert.EqualValues(t, 0.9, p.Squash)
	assert.InDelta(t, 0.1, float64(p.Tilt.X), 1e-6)
}

func TestParseSystemErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed yaml", "bodies: ["},
		{"empty catalog", "bodies: []"},
		{"unknown material", "bodies:\n  - {name: x, material: plasma, scale: 1}"},
		{"zero scale", "bodies:\n  - {name: x, material: rocky, scale: 0}"},
		{"negative scale", "bodies:\n  - {name: x, material: rocky, scale: -2}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSystem([]byte(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestLoadSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	bodies, err := LoadSystem(path)
	require.NoError(t, err)
	assert.Len(t, bodies, 2)

	_, err = LoadSystem(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
