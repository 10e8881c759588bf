package shade

import (
	"math"

	"orrery/engine/linear"
)

// Shared seeded noise primitives. Everything here is deterministic:
// the only variation between runs comes from the seed value threaded
// through the shading Context.

// SeedOffset maps a seed to a domain-shift vector in [-1,1]^3.
// Materials add a scaled copy of it to their sampling position, so a
// new seed moves every pattern without changing its character.
func SeedOffset(seed uint32) linear.Vec3 {
	s := float64(seed)
	r1 := fract64(math.Sin(s*0.12345) * 43758.5453)
	r2 := fract64(math.Sin(s*0.34567) * 28123.1234)
	r3 := fract64(math.Sin(s*0.78901) * 15937.9876)
	return linear.V3(
		float32(r1*2-1),
		float32(r2*2-1),
		float32(r3*2-1),
	)
}

// hash3 maps an integer-ish lattice point to [0,1). Not continuous;
// use valueNoise for a continuous field.
func hash3(x, y, z float32) float32 {
	d := float64(x)*12.9898 + float64(y)*78.233 + float64(z)*37.719
	return float32(fract64(math.Sin(d) * 43758.5453))
}

// valueNoise is a continuous trilinear value-noise field in [0,1].
func valueNoise(p linear.Vec3) float32 {
	x0, fx := lattice(p.X)
	y0, fy := lattice(p.Y)
	z0, fz := lattice(p.Z)

	ux, uy, uz := smooth(fx), smooth(fy), smooth(fz)

	c000 := hash3(x0, y0, z0)
	c100 := hash3(x0+1, y0, z0)
	c010 := hash3(x0, y0+1, z0)
	c110 := hash3(x0+1, y0+1, z0)
	c001 := hash3(x0, y0, z0+1)
	c101 := hash3(x0+1, y0, z0+1)
	c011 := hash3(x0, y0+1, z0+1)
	c111 := hash3(x0+1, y0+1, z0+1)

	x00 := lerp(c000, c100, ux)
	x10 := lerp(c010, c110, ux)
	x01 := lerp(c001, c101, ux)
	x11 := lerp(c011, c111, ux)
	y0v := lerp(x00, x10, uy)
	y1v := lerp(x01, x11, uy)
	return lerp(y0v, y1v, uz)
}

// fbm stacks octaves of valueNoise with halving amplitude, normalized
// back to [0,1].
func fbm(p linear.Vec3, octaves int) float32 {
	var sum, amp, norm float32 = 0, 0.5, 0
	for i := 0; i < octaves; i++ {
		sum += amp * valueNoise(p)
		norm += amp
		amp *= 0.5
		p = p.Scale(2.03)
	}
	return sum / norm
}

// Fixed isotropic directions for the trig-noise layers. Three skewed
// axes avoid the axis-aligned banding a plain sin(x)*cos(z) shows.
var (
	nv1 = linear.V3(0.36, 0.93, 0.04).Norm()
	nv2 = linear.V3(0.79, -0.61, 0.08).Norm()
	nv3 = linear.V3(-0.49, 0.12, 0.86).Norm()
)

func sinf(v float32) float32 { return float32(math.Sin(float64(v))) }
func cosf(v float32) float32 { return float32(math.Cos(float64(v))) }

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func powf(v, e float32) float32 {
	return float32(math.Pow(float64(v), float64(e)))
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// smoothstep of t already clamped to [0,1].
func smooth(t float32) float32 { return t * t * (3 - 2*t) }

// smoothstepRange remaps v from [lo,hi] to a smooth [0,1] ramp.
func smoothstepRange(v, lo, hi float32) float32 {
	t := clamp01((v - lo) / (hi - lo))
	return smooth(t)
}

func floorf(v float32) float32 { return float32(math.Floor(float64(v))) }

func acosf(v float32) float32 { return float32(math.Acos(float64(v))) }

func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lattice(v float32) (cell, frac float32) {
	f := float32(math.Floor(float64(v)))
	return f, v - f
}

func fract64(v float64) float64 { return v - math.Floor(v) }
