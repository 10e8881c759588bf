package app

import (
	"image/color"
	"math"

	"orrery/engine/fb"
)

// drawWarpOverlay blends a radial flash over the frame while the warp
// drive charges. Intensity ramps with charge progress and falls off
// from the screen center, peaking into a near-white flash as the jump
// fires.
func drawWarpOverlay(target *fb.Framebuffer, progress float32) {
	w, h := target.Width(), target.Height()
	if w == 0 || h == 0 {
		return
	}
	cx := float32(w) / 2
	cy := float32(h) / 2
	invMax := 1 / float32(math.Hypot(float64(cx), float64(cy)))

	// Ease the ramp so the flash builds late in the charge.
	k := progress * progress

	for y := 0; y < h; y++ {
		dy := (float32(y) - cy) * invMax
		for x := 0; x < w; x++ {
			dx := (float32(x) - cx) * invMax
			d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			// Strongest at the center, fading toward the corners.
			a := k * (1 - 0.65*d)
			if a <= 0 {
				continue
			}
			if a > 1 {
				a = 1
			}
			c := target.At(x, y)
			target.SetRaw(x, y, color.RGBA{
				R: blend(c.R, 190, a),
				G: blend(c.G, 215, a),
				B: blend(c.B, 255, a),
				A: 255,
			})
		}
	}
}

func blend(dst, src uint8, a float32) uint8 {
	v := float32(dst) + (float32(src)-float32(dst))*a
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
