package hal

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keymap pairs every HAL key with its ebiten source.
var keymap = []struct {
	code KeyCode
	key  ebiten.Key
}{
	{KeyUp, ebiten.KeyArrowUp},
	{KeyDown, ebiten.KeyArrowDown},
	{KeyLeft, ebiten.KeyArrowLeft},
	{KeyRight, ebiten.KeyArrowRight},
	{KeyW, ebiten.KeyW},
	{KeyA, ebiten.KeyA},
	{KeyS, ebiten.KeyS},
	{KeyD, ebiten.KeyD},
	{KeyQ, ebiten.KeyQ},
	{KeyE, ebiten.KeyE},
	{KeyR, ebiten.KeyR},
	{KeyT, ebiten.KeyT},
	{KeyY, ebiten.KeyY},
	{KeyU, ebiten.KeyU},
	{KeyZ, ebiten.KeyZ},
	{KeyX, ebiten.KeyX},
	{KeyN, ebiten.KeyN},
	{KeySpace, ebiten.KeySpace},
	{KeyEscape, ebiten.KeyEscape},
	{Key1, ebiten.KeyDigit1},
	{Key2, ebiten.KeyDigit2},
	{Key3, ebiten.KeyDigit3},
	{Key4, ebiten.KeyDigit4},
	{Key5, ebiten.KeyDigit5},
	{Key6, ebiten.KeyDigit6},
	{Key7, ebiten.KeyDigit7},
	{Key8, ebiten.KeyDigit8},
	{Key9, ebiten.KeyDigit9},
}

type hostKeyboard struct {
	mu   sync.Mutex
	down map[KeyCode]bool
	ch   chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{
		down: make(map[KeyCode]bool),
		ch:   make(chan KeyEvent, 64),
	}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) Down(code KeyCode) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.down[code]
}

// poll refreshes held state and emits edges. Called once per ebiten
// Update; events are dropped rather than blocking the frame when the
// buffer is full.
func (k *hostKeyboard) poll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, m := range keymap {
		k.down[m.code] = ebiten.IsKeyPressed(m.key)
		if inpututil.IsKeyJustPressed(m.key) {
			select {
			case k.ch <- KeyEvent{Code: m.code, Press: true}:
			default:
			}
		}
		if inpututil.IsKeyJustReleased(m.key) {
			select {
			case k.ch <- KeyEvent{Code: m.code, Press: false}:
			default:
			}
		}
	}
}
