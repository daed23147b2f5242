package pop

// TileView is one tile's renderer-facing snapshot: kind plus whatever
// Spec currently encodes for it (gate height, spike phase, slicer
// frame, ...). The renderer interprets Spec itself; the core only
// hands over the current value (spec §6.5).
type TileView struct {
	Kind     TileKind
	Spec     uint8
	Col, Row int
}

// RoomView is a snapshot of one room's tiles as-of the end of a tick
// (spec §6.5's "tile spec state as-of end of tick").
type RoomView struct {
	Number int
	Tiles  [tilesPerRoom]TileView
}

// CharacterView is the subset of Character a renderer is allowed to
// see: frame number, facing, position and sword flag, nothing of the
// interpreter's own bookkeeping (spec §1: "the renderer consumes a
// character's frame number, facing, XY, and sword flag").
type CharacterView struct {
	ID    int
	Room  int
	X, Y  int
	Face  int
	Posn  int
	Sword uint8
}

// HealthView is the HUD's hit-point pair (spec §6.5).
type HealthView struct {
	Cur, Max int
}

// View is the complete renderer contract of spec §6.5: the kid, an
// optional guard, the current room's tile snapshot, any pending flash
// color and screen-shake offset, plus the HUD fields. A host builds
// one of these once per tick, after Scheduler.Tick returns.
type View struct {
	Kid   CharacterView
	Guard *CharacterView
	Room  RoomView

	FlashColor uint8 // 0 = no flash pending, else a 4-bit color index
	ShakeDy    int8

	HP       HealthView
	LevelNum int
	RoomIdx  int
}

func characterView(c *Character) CharacterView {
	return CharacterView{
		ID:    c.ID,
		Room:  c.Room,
		X:     c.X,
		Y:     c.Y,
		Face:  c.Face,
		Posn:  c.Posn,
		Sword: uint8(c.SwordSlot),
	}
}

func roomView(r *Room, number int) RoomView {
	var rv RoomView
	rv.Number = number
	if r == nil {
		return rv
	}
	for i, t := range r.Tiles {
		rv.Tiles[i] = TileView{Kind: t.Kind, Spec: t.Spec, Col: t.Col, Row: t.Row}
	}
	return rv
}

// shakeDy derives a small oscillating screen offset from the mover's
// remaining shake-request duration. The exact waveform is a rendering
// concern left unspecified by spec §6.5 beyond "shakeDy: i8"; this is
// the simplest one that reads as motion rather than a static offset.
func shakeDy(frames int) int8 {
	if frames <= 0 {
		return 0
	}
	if frames%2 == 0 {
		return 2
	}
	return -2
}

// View builds this tick's renderer contract (spec §6.5). Call it
// after Tick returns; it takes no locks and does not mutate state.
func (s *Scheduler) View() View {
	v := View{
		Kid:      characterView(s.Kid),
		Room:     roomView(s.Level.Room(s.Kid.Room), s.Kid.Room),
		HP:       HealthView{Cur: s.Health.Cur, Max: s.Health.Max},
		LevelNum: s.Level.Number,
		RoomIdx:  s.Kid.Room,
		ShakeDy:  shakeDy(s.Mover.Shake.Frames),
	}
	if s.Health.FlashTimer > 0 {
		v.FlashColor = s.Health.FlashColor
	}
	if s.Guard != nil {
		gv := characterView(s.Guard)
		v.Guard = &gv
	}
	return v
}
