package fb

import (
	"image/color"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	if New(0, 10) != nil || New(10, -1) != nil {
		t.Fatal("New accepted a non-positive dimension")
	}
}

func TestClear(t *testing.T) {
	f := New(4, 3)
	f.WritePixel(1, 1, color.RGBA{R: 200}, 0.5)

	bg := color.RGBA{R: 10, G: 20, B: 30}
	f.Clear(bg)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			c := f.At(x, y)
			if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 0xFF {
				t.Fatalf("pixel (%d,%d) = %v after clear", x, y, c)
			}
			if f.DepthAt(x, y) != FarDepth {
				t.Fatalf("depth (%d,%d) = %v after clear", x, y, f.DepthAt(x, y))
			}
		}
	}
}

func TestWritePixelDepthTest(t *testing.T) {
	f := New(2, 2)
	f.Clear(color.RGBA{})

	red := color.RGBA{R: 255}
	green := color.RGBA{G: 255}
	blue := color.RGBA{B: 255}

	f.WritePixel(0, 0, red, 0.8)
	if got := f.At(0, 0); got.R != 255 {
		t.Fatalf("first write rejected: %v", got)
	}

	// Farther fragment loses.
	f.WritePixel(0, 0, green, 0.9)
	if got := f.At(0, 0); got.G != 0 {
		t.Fatalf("farther fragment overwrote: %v", got)
	}

	// Equal depth loses too, so write order does not matter on ties.
	f.WritePixel(0, 0, green, 0.8)
	if got := f.At(0, 0); got.G != 0 {
		t.Fatalf("equal-depth fragment overwrote: %v", got)
	}

	// Nearer fragment wins.
	f.WritePixel(0, 0, blue, 0.2)
	if got := f.At(0, 0); got.B != 255 {
		t.Fatalf("nearer fragment rejected: %v", got)
	}
	if got := f.DepthAt(0, 0); got != 0.2 {
		t.Fatalf("depth = %v, want 0.2", got)
	}
}

func TestWritePixelOutOfBounds(t *testing.T) {
	f := New(2, 2)
	f.Clear(color.RGBA{})

	// Must be a silent no-op, not a panic.
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {100, 100}} {
		f.WritePixel(p[0], p[1], color.RGBA{R: 255}, 0)
		f.SetRaw(p[0], p[1], color.RGBA{R: 255})
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if c := f.At(x, y); c.R != 0 {
				t.Fatalf("out-of-bounds write leaked into (%d,%d)", x, y)
			}
		}
	}
}

func TestSetRawIgnoresDepth(t *testing.T) {
	f := New(2, 2)
	f.Clear(color.RGBA{})
	f.WritePixel(1, 1, color.RGBA{R: 255}, 0.1)

	f.SetRaw(1, 1, color.RGBA{G: 255})
	if got := f.At(1, 1); got.G != 255 {
		t.Fatalf("SetRaw respected depth: %v", got)
	}
	// Depth plane untouched.
	if got := f.DepthAt(1, 1); got != 0.1 {
		t.Fatalf("SetRaw altered depth: %v", got)
	}
}

func TestClearDepthKeepsColor(t *testing.T) {
	f := New(3, 3)
	f.Clear(color.RGBA{})
	f.WritePixel(1, 1, color.RGBA{R: 255}, 0.1)

	f.ClearDepth()

	if got := f.At(1, 1); got.R != 255 {
		t.Fatalf("ClearDepth wiped color: %v", got)
	}
	// A fragment behind the old depth now lands.
	f.WritePixel(1, 1, color.RGBA{B: 255}, 0.9)
	if got := f.At(1, 1); got.B != 255 {
		t.Fatalf("depth not reset: %v", got)
	}
}

func TestImageCopies(t *testing.T) {
	f := New(2, 1)
	f.Clear(color.RGBA{})
	f.SetRaw(0, 0, color.RGBA{R: 7})

	img := f.Image()
	if img.Pix[0] != 7 {
		t.Fatalf("image pix[0] = %d", img.Pix[0])
	}
	// Mutating the image must not touch the framebuffer.
	img.Pix[0] = 99
	if f.At(0, 0).R != 7 {
		t.Fatal("Image aliases the framebuffer")
	}
}
