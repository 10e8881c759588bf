package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int
	Ticks   uint64 // stop after N ticks; 0 = run until ctx is done
}

// RunHeadless steps the app at a fixed rate without opening a window.
// The clock advances by exactly 1/Hz per tick, so a headless run is
// reproducible.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("hal: invalid headless size %dx%d", cfg.Width, cfg.Height)
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("hal: invalid headless hz: %d", cfg.Hz)
	}

	h := New(cfg.Width, cfg.Height).(*hostHAL)
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.stepFixed(d)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// StepHeadless runs the app for exactly n synchronous ticks with a
// fixed per-tick delta and no pacing. The snapshot tool and tests use
// it to render frames as fast as the CPU allows.
func StepHeadless(width, height, hz int, n uint64, newApp func(HAL) func() error) error {
	if hz <= 0 {
		hz = 60
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("hal: invalid headless size %dx%d", width, height)
	}
	h := New(width, height).(*hostHAL)
	step := newApp(h)
	d := time.Second / time.Duration(hz)
	for i := uint64(0); i < n; i++ {
		h.t.stepFixed(d)
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
	}
	return nil
}
