package pop

// InputSample is one tick's worth of controller state for a single
// character, in the tri-state shape required by spec §6.4: a
// direction/button read this tick is either held-and-unconsumed
// ("fresh"), idle, or already consumed by an earlier branch this same
// tick — and must not fire a second branch until it is released and
// pressed again (spec §4.6, §9 "Tri-state input").
type InputSample struct {
	Left, Right, Up, Down, Button bool

	consumed [5]bool
}

const (
	btnLeft = iota
	btnRight
	btnUp
	btnDown
	btnButton
)

// SampleInput builds a raw, one-shot InputSample from the host's
// tri-state axes (spec §6.4): jstkX/jstkY in {-1, 0, +1}, btn held or
// not. This is just the level read off the controller this tick; it
// carries no memory of earlier ticks. The fresh/consumed distinction
// that actually prevents a held direction from re-firing lives in the
// Scheduler's own persistent InputSample, folded in by clrJstk.
func SampleInput(jstkX, jstkY int, btn bool) *InputSample {
	return &InputSample{
		Left:   jstkX < 0,
		Right:  jstkX > 0,
		Up:     jstkY < 0,
		Down:   jstkY > 0,
		Button: btn,
	}
}

// clrJstk folds this tick's raw controller levels into the receiver's
// persisted tri-state flags (spec §6.4, §9 "Tri-state input"). raw is
// this tick's freshly-sampled, memoryless InputSample (e.g. decoded
// from a replay log); the receiver is expected to be the same
// long-lived InputSample the Scheduler keeps across ticks.
//
// A released axis always resets to idle. A held axis only starts
// fresh on its rising edge (it was not held last tick); if it was
// already held, whatever fresh/consumed state it carried is left
// alone, so a direction held across many ticks fires a handler at
// most once per press — exactly until clrAll marks any
// still-unconsumed fresh flag as consumed for the remainder of the
// hold.
func (in *InputSample) clrJstk(raw *InputSample) {
	fold := func(wasHeld, isHeld bool, consumed *bool) bool {
		if !isHeld {
			*consumed = false
			return false
		}
		if !wasHeld {
			*consumed = false
		}
		return true
	}
	in.Left = fold(in.Left, raw.Left, &in.consumed[btnLeft])
	in.Right = fold(in.Right, raw.Right, &in.consumed[btnRight])
	in.Up = fold(in.Up, raw.Up, &in.consumed[btnUp])
	in.Down = fold(in.Down, raw.Down, &in.consumed[btnDown])
	in.Button = fold(in.Button, raw.Button, &in.consumed[btnButton])
}

func (in *InputSample) pressed(btn int, held bool) bool {
	if !held || in.consumed[btn] {
		return false
	}
	return true
}

// LeftFresh etc. report whether the direction/button is held and not
// yet consumed this tick.
func (in *InputSample) LeftFresh() bool   { return in.pressed(btnLeft, in.Left) }
func (in *InputSample) RightFresh() bool  { return in.pressed(btnRight, in.Right) }
func (in *InputSample) UpFresh() bool     { return in.pressed(btnUp, in.Up) }
func (in *InputSample) DownFresh() bool   { return in.pressed(btnDown, in.Down) }
func (in *InputSample) ButtonFresh() bool { return in.pressed(btnButton, in.Button) }

// ConsumeLeft etc. mark a direction/button used for this tick so the
// same tick's remaining dispatch cannot re-trigger a branch on it.
func (in *InputSample) ConsumeLeft()   { in.consumed[btnLeft] = true }
func (in *InputSample) ConsumeRight()  { in.consumed[btnRight] = true }
func (in *InputSample) ConsumeUp()     { in.consumed[btnUp] = true }
func (in *InputSample) ConsumeDown()   { in.consumed[btnDown] = true }
func (in *InputSample) ConsumeButton() { in.consumed[btnButton] = true }

// clrAll implements spec §6.4's "After player control, clrAll ensures
// any remaining fresh flags are marked consumed": any direction/button
// still held but not consumed by a handler this tick is forced to
// consumed, so a held-but-unhandled input cannot fire on a later tick
// without first being released. Idle (not held) flags are untouched.
func (in *InputSample) clrAll() {
	if in.Left {
		in.consumed[btnLeft] = true
	}
	if in.Right {
		in.consumed[btnRight] = true
	}
	if in.Up {
		in.consumed[btnUp] = true
	}
	if in.Down {
		in.consumed[btnDown] = true
	}
	if in.Button {
		in.consumed[btnButton] = true
	}
}

// facejstk reports whether the forward direction (relative to face) is
// held and unconsumed; unfacejstk reports the same for backward.
// Called facejstk/unfacejstk to match the spec's own naming (§4.6);
// facejstk(face); ...; unfacejstk(face) commutes with itself, since
// both read the same underlying flags without consuming them.
func facejstk(in *InputSample, face int) bool {
	if face > 0 {
		return in.RightFresh()
	}
	return in.LeftFresh()
}

func unfacejstk(in *InputSample, face int) bool {
	if face > 0 {
		return in.LeftFresh()
	}
	return in.RightFresh()
}

// consumeFace/consumeUnface mirror facejstk/unfacejstk for the
// consume side, so playerctrl can consume "forward" without knowing
// which raw direction that maps to for the character's current face.
func consumeFace(in *InputSample, face int) {
	if face > 0 {
		in.ConsumeRight()
	} else {
		in.ConsumeLeft()
	}
}

func consumeUnface(in *InputSample, face int) {
	if face > 0 {
		in.ConsumeLeft()
	} else {
		in.ConsumeRight()
	}
}
