package engine

import (
	"strings"
	"testing"

	"orrery/engine/linear"
	"orrery/engine/mesh"
	"orrery/engine/scene"
	"orrery/engine/shade"
)

func systemFrame(t float32) Frame {
	return Frame{
		Time:   t,
		Mode:   scene.ModeSystem,
		Camera: scene.NewCamera(),
		Bodies: scene.DefaultSystem(),
	}
}

func TestRenderFrameSystem(t *testing.T) {
	r := New(160, 120, 7)
	stats := r.RenderFrame(systemFrame(0))

	// Every catalog body plus the ship HUD.
	if want := len(scene.DefaultSystem()) + 1; stats.Objects != want {
		t.Errorf("Objects = %d, want %d", stats.Objects, want)
	}
	if stats.Fragments == 0 {
		t.Error("frame shaded no fragments")
	}
	if len(stats.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", stats.Skipped)
	}

	// The frame is opaque everywhere.
	fbuf := r.Framebuffer()
	for y := 0; y < fbuf.Height(); y += 13 {
		for x := 0; x < fbuf.Width(); x += 13 {
			if fbuf.At(x, y).A != 0xFF {
				t.Fatalf("transparent pixel at (%d,%d)", x, y)
			}
		}
	}
}

func TestRenderFrameSingle(t *testing.T) {
	r := New(160, 120, 7)
	frame := systemFrame(0)
	frame.Mode = scene.ModeSingle
	frame.SingleMaterial = shade.Cheese

	stats := r.RenderFrame(frame)
	if stats.Objects != 1 {
		t.Errorf("Objects = %d, want 1", stats.Objects)
	}
	if stats.Fragments == 0 {
		t.Error("inspection body shaded no fragments")
	}
}

func TestRenderFrameDeterministic(t *testing.T) {
	a := New(120, 90, 99)
	b := New(120, 90, 99)
	fr := systemFrame(2.5)

	a.RenderFrame(fr)
	b.RenderFrame(fr)

	pa, pb := a.Framebuffer().Pix(), b.Framebuffer().Pix()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("frames diverge at byte %d: %d vs %d", i, pa[i], pb[i])
		}
	}
}

func TestSetSeedChangesFrame(t *testing.T) {
	a := New(120, 90, 1)
	b := New(120, 90, 1)
	b.SetSeed(987654)
	if b.Seed() != 987654 {
		t.Fatalf("Seed = %d", b.Seed())
	}

	fr := systemFrame(0)
	fr.Mode = scene.ModeSingle
	fr.SingleMaterial = shade.Rocky
	a.RenderFrame(fr)
	b.RenderFrame(fr)

	pa, pb := a.Framebuffer().Pix(), b.Framebuffer().Pix()
	same := true
	for i := range pa {
		if pa[i] != pb[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("reseeding produced a byte-identical frame")
	}
}

func TestRenderFrameSkipsMalformedBody(t *testing.T) {
	r := New(120, 90, 1)
	var logged []string
	r.Logf = func(format string, args ...any) {
		logged = append(logged, format)
	}

	frame := systemFrame(0)
	frame.Bodies = append(frame.Bodies, scene.Body{
		Name:     "glitch",
		Material: shade.Material(200),
		Scale:    1,
		Radius:   100,
	})

	stats := r.RenderFrame(frame)
	if len(stats.Skipped) != 1 || !strings.Contains(stats.Skipped[0], "glitch") {
		t.Fatalf("Skipped = %v, want the malformed body", stats.Skipped)
	}
	// The rest of the frame still rendered.
	if want := len(scene.DefaultSystem()) + 1; stats.Objects != want {
		t.Errorf("Objects = %d, want %d", stats.Objects, want)
	}
	if len(logged) == 0 {
		t.Error("skip was not reported")
	}
}

func TestRenderFrameSkipsInvalidMesh(t *testing.T) {
	r := New(120, 90, 1)
	if err := r.SetBodyMesh(&mesh.Mesh{}); err == nil {
		t.Fatal("SetBodyMesh accepted an empty mesh")
	}
	// The built-in sphere must still be in place.
	stats := r.RenderFrame(systemFrame(0))
	if len(stats.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", stats.Skipped)
	}
}

func TestWarpActiveSwapsHull(t *testing.T) {
	calm := New(160, 120, 3)
	hot := New(160, 120, 3)

	fr := systemFrame(1)
	calm.RenderFrame(fr)
	fr.WarpActive = true
	hot.RenderFrame(fr)

	pa, pb := calm.Framebuffer().Pix(), hot.Framebuffer().Pix()
	same := true
	for i := range pa {
		if pa[i] != pb[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("warp flash did not change the ship pixels")
	}
}

func TestSunLightAttenuation(t *testing.T) {
	nearDir, nearI := sunLight(linear.V3(0, 0, 0), linear.V3(200, 0, 0), 1)
	_, farI := sunLight(linear.V3(0, 0, 0), linear.V3(2000, 0, 0), 1)
	if nearI <= farI {
		t.Errorf("light does not attenuate: near %v, far %v", nearI, farI)
	}
	// Direction points from the body toward the sun.
	if nearDir.X >= 0 {
		t.Errorf("light direction = %v, want toward the sun", nearDir)
	}
}
