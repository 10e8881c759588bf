package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orrery/engine/linear"
	"orrery/engine/shade"
)

func TestBodyPosition(t *testing.T) {
	b := Body{Radius: 100, Rate: 1, Squash: 0.5}

	p0 := b.Position(0)
	assert.InDelta(t, 100, float64(p0.X), 1e-4)
	assert.InDelta(t, 0, float64(p0.Y), 1e-4)

	// Quarter orbit: on the squashed semi-axis.
	pq := b.Position(float32(math.Pi / 2))
	assert.InDelta(t, 0, float64(pq.X), 1e-3)
	assert.InDelta(t, 50, float64(pq.Y), 1e-3)

	// Bodies stay in the orbital plane.
	assert.Zero(t, pq.Z)

	// Radius 0 pins the body at the origin regardless of time.
	sun := Body{Rate: 1}
	assert.Equal(t, sun.Position(123), sun.Position(0))
}

func TestBodyRotationAccumulatesSpin(t *testing.T) {
	b := Body{Tilt: linear.V3(0.1, 0.2, 0.3), Spin: 0.5}

	r0 := b.Rotation(0)
	assert.InDelta(t, 0.2, float64(r0.Y), 1e-6)

	r2 := b.Rotation(2)
	assert.InDelta(t, 1.2, float64(r2.Y), 1e-6)
	// Tilt on the other axes is static.
	assert.Equal(t, r0.X, r2.X)
	assert.Equal(t, r0.Z, r2.Z)
}

func TestDefaultSystem(t *testing.T) {
	bodies := DefaultSystem()
	require.Len(t, bodies, 8)

	// Exactly one star, anchored at the origin.
	stars := 0
	for _, b := range bodies {
		if b.Material == shade.Stellar {
			stars++
			assert.Zero(t, b.Radius, "the star does not orbit")
		} else {
			assert.Positive(t, b.Radius)
		}
		assert.Positive(t, b.Scale)
		assert.True(t, b.Material.Valid())
		assert.NotEmpty(t, b.Name)
	}
	assert.Equal(t, 1, stars)

	// Orbits are ordered outward so the catalog reads sanely.
	for i := 1; i < len(bodies)-1; i++ {
		assert.Less(t, bodies[i].Radius, bodies[i+1].Radius)
	}
}

func TestNewCamera(t *testing.T) {
	c := NewCamera()
	assert.EqualValues(t, 1, c.Zoom)
	assert.EqualValues(t, 1, c.Scale)
	assert.Zero(t, c.Offset)
	assert.Zero(t, c.Rotation)
}
