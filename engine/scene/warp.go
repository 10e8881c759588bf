package scene

import "orrery/engine/linear"

// WarpState enumerates the warp sequence's discrete states.
type WarpState uint8

const (
	WarpIdle WarpState = iota
	WarpCharging
	WarpJumping
	WarpArrived
)

func (s WarpState) String() string {
	switch s {
	case WarpIdle:
		return "idle"
	case WarpCharging:
		return "charging"
	case WarpJumping:
		return "jumping"
	case WarpArrived:
		return "arrived"
	}
	return "unknown"
}

// WarpMachine drives the scripted warp transition:
//
//	Idle -> Charging -> Jumping -> Arrived -> Idle
//
// Charging accumulates progress at Rate per second; reaching 1 jumps.
// Jumping performs exactly one camera relocation through Sample and
// immediately arrives. All transitions happen synchronously inside
// Update, once per rendered frame.
type WarpMachine struct {
	// Rate is charge speed in progress units per second. The default
	// matches the original 450ms charge.
	Rate float32

	// Sample produces the relocation target. It is owned by an
	// external collaborator; a nil Sample leaves the camera in place.
	Sample func() linear.Vec3

	state    WarpState
	progress float32
}

// NewWarpMachine returns an idle machine charging at rate progress/s.
func NewWarpMachine(rate float32, sample func() linear.Vec3) *WarpMachine {
	if rate <= 0 {
		rate = 1 / 0.45
	}
	return &WarpMachine{Rate: rate, Sample: sample}
}

// State returns the current state.
func (w *WarpMachine) State() WarpState { return w.state }

// Progress returns the charge progress in [0,1]. It is 0 in every
// state but Charging (and 1 during the Jumping/Arrived instant).
func (w *WarpMachine) Progress() float32 { return w.progress }

// Active reports whether a warp is in flight (anything but Idle).
func (w *WarpMachine) Active() bool { return w.state != WarpIdle }

// Start begins a charge cycle. Signals received while a cycle is
// already in flight are ignored, so repeated triggers cannot advance
// progress or cause extra relocations.
func (w *WarpMachine) Start() {
	if w.state != WarpIdle {
		return
	}
	w.state = WarpCharging
	w.progress = 0
}

// Abort cancels the sequence from any state. Progress is reset on the
// next Charging entry, so an aborted charge never leaks into a later
// cycle.
func (w *WarpMachine) Abort() {
	w.state = WarpIdle
	w.progress = 0
}

// Update advances the machine by dt seconds and returns the camera
// displacement to apply this frame (zero except on the single Jumping
// transition).
func (w *WarpMachine) Update(dt float32) (jump linear.Vec3, jumped bool) {
	switch w.state {
	case WarpCharging:
		if dt < 0 {
			dt = 0
		}
		w.progress += w.Rate * dt
		if w.progress >= 1 {
			w.progress = 1
			w.state = WarpJumping
			if w.Sample != nil {
				jump = w.Sample()
				jumped = true
			}
			w.state = WarpArrived
		}
	case WarpJumping:
		// Unreachable in normal flow (Jumping resolves inside the
		// Charging arm), kept for completeness.
		w.state = WarpArrived
	case WarpArrived:
		w.state = WarpIdle
		w.progress = 0
	}
	return jump, jumped
}
