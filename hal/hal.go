// Package hal abstracts the host the renderer runs on: a presentable
// pixel buffer, keyboard input, a monotonic tick source and a line
// logger. The rendering core never touches ebiten directly; it only
// sees these interfaces.
package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp: one byte each of R, G, B, A.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is the presentable pixel buffer. The renderer draws into
// its own buffers and blits here once per frame via Copy.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	// Copy replaces the buffer contents with src (RGBA, same
	// dimensions). Short sources fill what they cover.
	Copy(src []byte)
	ClearRGB(r, g, b uint8)
}

// KeyCode is a minimal key identifier covering the renderer controls.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyZ
	KeyX
	KeyN
	KeySpace
	KeyEscape
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// KeyEvent is a key edge (press or release).
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides held-key state for continuous controls and an
// event stream for discrete triggers.
type Keyboard interface {
	// Down reports whether the key is currently held.
	Down(KeyCode) bool
	// Events delivers press/release edges (best effort, buffered).
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a monotonic millisecond clock stepped by the frame
// driver, so app logic sees the same clock in windowed and headless
// runs.
type Time interface {
	NowMillis() uint64
}

// HAL is the only contact point between the renderer and the host.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
