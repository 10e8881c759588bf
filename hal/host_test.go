package hal

import (
	"testing"
	"time"
)

func TestHostFramebuffer(t *testing.T) {
	h := New(4, 3).(*hostHAL)
	f := h.Display().Framebuffer()

	if f.Width() != 4 || f.Height() != 3 {
		t.Fatalf("size = %dx%d", f.Width(), f.Height())
	}
	if f.Format() != PixelFormatRGBA8888 {
		t.Fatalf("format = %v", f.Format())
	}
	if f.StrideBytes() != 16 {
		t.Fatalf("stride = %d", f.StrideBytes())
	}

	f.ClearRGB(1, 2, 3)
	src := make([]byte, 4*3*4)
	for i := range src {
		src[i] = 0xAB
	}
	f.Copy(src)

	dst := make([]byte, len(src))
	h.fb.snapshot(dst)
	for i, b := range dst {
		if b != 0xAB {
			t.Fatalf("byte %d = %#x after Copy", i, b)
		}
	}
}

func TestHostFramebufferShortCopy(t *testing.T) {
	h := New(2, 2).(*hostHAL)
	f := h.Display().Framebuffer()
	f.ClearRGB(9, 9, 9)

	// A short source only overwrites what it covers.
	f.Copy([]byte{1, 2, 3, 4})

	dst := make([]byte, 16)
	h.fb.snapshot(dst)
	if dst[0] != 1 || dst[3] != 4 {
		t.Fatalf("head = %v", dst[:4])
	}
	if dst[4] != 9 {
		t.Fatalf("tail overwritten: %v", dst[4:8])
	}
}

func TestHostTimeFixedStep(t *testing.T) {
	ht := newHostTime()
	if ht.NowMillis() != 0 {
		t.Fatalf("clock starts at %d", ht.NowMillis())
	}
	for i := 0; i < 3; i++ {
		ht.stepFixed(time.Second / 60)
	}
	// 16ms per 60Hz tick (truncated), three ticks.
	if got := ht.NowMillis(); got != 48 {
		t.Fatalf("NowMillis = %d, want 48", got)
	}
}

func TestStepHeadlessAdvancesClock(t *testing.T) {
	var samples []uint64
	err := StepHeadless(8, 8, 50, 4, func(h HAL) func() error {
		return func() error {
			samples = append(samples, h.Time().NowMillis())
			return nil
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{20, 40, 60, 80}
	if len(samples) != len(want) {
		t.Fatalf("samples = %v", samples)
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples = %v, want %v", samples, want)
		}
	}
}

func TestStepHeadlessStopsOnError(t *testing.T) {
	calls := 0
	err := StepHeadless(8, 8, 60, 100, func(h HAL) func() error {
		return func() error {
			calls++
			if calls == 3 {
				return ErrNotImplemented
			}
			return nil
		}
	})
	if err != ErrNotImplemented {
		t.Fatalf("err = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestStepHeadlessRejectsBadSize(t *testing.T) {
	if err := StepHeadless(0, 8, 60, 1, nil); err == nil {
		t.Error("accepted zero width")
	}
}
