package app

import (
	"errors"
	"strings"
	"testing"

	"orrery/hal"
)

// Test doubles for the HAL so input can be scripted.

type fakeLogger struct{ lines []string }

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }

func (l *fakeLogger) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type fakeFramebuffer struct {
	w, h int
	buf  []byte
}

func (f *fakeFramebuffer) Width() int              { return f.w }
func (f *fakeFramebuffer) Height() int             { return f.h }
func (f *fakeFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGBA8888 }
func (f *fakeFramebuffer) StrideBytes() int        { return f.w * 4 }
func (f *fakeFramebuffer) Copy(src []byte)         { copy(f.buf, src) }
func (f *fakeFramebuffer) ClearRGB(r, g, b uint8) {
	for i := 0; i < len(f.buf); i += 4 {
		f.buf[i], f.buf[i+1], f.buf[i+2], f.buf[i+3] = r, g, b, 0xFF
	}
}

type fakeKeyboard struct {
	down map[hal.KeyCode]bool
	ch   chan hal.KeyEvent
}

func (k *fakeKeyboard) Down(c hal.KeyCode) bool     { return k.down[c] }
func (k *fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }
func (k *fakeKeyboard) press(c hal.KeyCode)         { k.ch <- hal.KeyEvent{Code: c, Press: true} }

type fakeTime struct{ millis uint64 }

func (t *fakeTime) NowMillis() uint64 { return t.millis }

type fakeHAL struct {
	log *fakeLogger
	fb  *fakeFramebuffer
	kbd *fakeKeyboard
	t   *fakeTime
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		log: &fakeLogger{},
		fb:  &fakeFramebuffer{w: w, h: h, buf: make([]byte, w*h*4)},
		kbd: &fakeKeyboard{down: map[hal.KeyCode]bool{}, ch: make(chan hal.KeyEvent, 16)},
		t:   &fakeTime{},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return h.t }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }

// tick advances the fake clock and runs one app step.
func tick(t *testing.T, h *fakeHAL, step func() error, ms uint64) {
	t.Helper()
	h.t.millis += ms
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestStepRendersAndPresents(t *testing.T) {
	h := newFakeHAL(96, 64)
	step := New(h, Config{Width: 96, Height: 64, Seed: 11})

	tick(t, h, step, 16)
	tick(t, h, step, 16)

	// Every presented pixel is opaque: the renderer filled the buffer.
	for i := 3; i < len(h.fb.buf); i += 4 {
		if h.fb.buf[i] != 0xFF {
			t.Fatalf("pixel %d not opaque after present", i/4)
		}
	}
}

func TestEscapeQuits(t *testing.T) {
	h := newFakeHAL(64, 48)
	step := New(h, Config{Width: 64, Height: 48, Seed: 1})

	h.kbd.press(hal.KeyEscape)
	h.t.millis += 16
	if err := step(); !errors.Is(err, ErrQuit) {
		t.Fatalf("step = %v, want ErrQuit", err)
	}
}

func TestWarpKeyRunsFullSequence(t *testing.T) {
	h := newFakeHAL(64, 48)
	step := New(h, Config{Width: 64, Height: 48, Seed: 1})

	tick(t, h, step, 16) // settle the clock
	h.kbd.press(hal.KeySpace)

	// 40 ticks at 16ms comfortably covers the 450ms charge.
	for i := 0; i < 40; i++ {
		tick(t, h, step, 16)
	}

	if !h.log.contains("warp charging") {
		t.Error("charge never logged")
	}
	if !h.log.contains("warp arrived") {
		t.Error("jump never logged")
	}
	if !h.log.contains("warp idle") {
		t.Error("machine never returned to idle")
	}
}

func TestMaterialKeyAbortsWarp(t *testing.T) {
	h := newFakeHAL(64, 48)
	step := New(h, Config{Width: 64, Height: 48, Seed: 1})

	tick(t, h, step, 16)
	h.kbd.press(hal.KeySpace)
	tick(t, h, step, 16)
	if !h.log.contains("warp charging") {
		t.Fatal("charge never started")
	}

	// Switching to the inspection view cancels the charge.
	h.kbd.press(hal.Key5)
	tick(t, h, step, 16)
	if h.log.contains("warp arrived") {
		t.Error("aborted warp still jumped")
	}
	if !h.log.contains("warp idle") {
		t.Error("abort not logged")
	}
}

func TestSpaceIgnoredInSingleMode(t *testing.T) {
	h := newFakeHAL(64, 48)
	step := New(h, Config{Width: 64, Height: 48, Seed: 1})

	h.kbd.press(hal.Key3)
	tick(t, h, step, 16)
	h.kbd.press(hal.KeySpace)
	for i := 0; i < 40; i++ {
		tick(t, h, step, 16)
	}
	if h.log.contains("warp charging") {
		t.Error("warp charged outside the system view")
	}
}

func TestStepHeadlessIntegration(t *testing.T) {
	// End-to-end through the real host HAL, no window.
	err := hal.StepHeadless(80, 60, 60, 5, func(h hal.HAL) func() error {
		return New(h, Config{Width: 80, Height: 60, Seed: 4})
	})
	if err != nil {
		t.Fatal(err)
	}
}
