package pop

import "testing"

func TestDecodeLink_BitPacking(t *testing.T) {
	lvl := &Level{}
	// target=17 (0x11), scrnLo=2 (0x40), isLast set -> loc = 0xD1
	lvl.LinkLoc[0] = 0x11 | 0x40 | 0x80
	// timer=9, scrnHi=1 (0x20) -> scrn = (1<<2)|2 = 6
	lvl.LinkMap[0] = 9 | 0x20

	got := decodeLink(lvl, 0)

	want := linkEntry{targetTile: 17, targetRoom: 6, timer: 9, isLast: true}
	if got != want {
		t.Errorf("decodeLink() = %+v, want %+v", got, want)
	}
}

func TestDecodeLink_NotLastClearsFlag(t *testing.T) {
	lvl := &Level{}
	lvl.LinkLoc[3] = 0x05 // target=5, scrnLo=0, isLast=false
	lvl.LinkMap[3] = 0

	got := decodeLink(lvl, 3)
	if got.isLast {
		t.Error("isLast = true, want false when bit 7 is clear")
	}
	if got.targetTile != 5 || got.targetRoom != 0 || got.timer != 0 {
		t.Errorf("decodeLink() = %+v, want targetTile=5 targetRoom=0 timer=0", got)
	}
}

// triggerChain walks multiple hops until it hits an entry with isLast
// set (spec §4.9.7); each intermediate hop still dispatches its own
// target tile.
func TestTriggerChain_WalksMultipleHopsToLast(t *testing.T) {
	lvl := newTestLevel()
	gateA := lvl.Rooms[1].tileAt(1, 0)
	gateA.Kind = KindGate
	gateB := lvl.Rooms[1].tileAt(2, 0)
	gateB.Kind = KindGate

	idxA := gateA.Row*tileCols + gateA.Col
	idxB := gateB.Row*tileCols + gateB.Col

	// Slot 0 -> gate A, room 1, not last.
	lvl.LinkLoc[0] = byte(idxA) | 0x20
	lvl.LinkMap[0] = 0
	// Slot 1 -> gate B, room 1, last.
	lvl.LinkLoc[1] = byte(idxB) | 0x20 | 0x80
	lvl.LinkMap[1] = 0

	m := NewMover()
	triggerChain(m, lvl, 0, KindPressPlate)

	if i := m.search(TrobHandle{Room: 1, Tile: idxA}); i < 0 {
		t.Error("gate A was not queued by the chain walk")
	}
	if i := m.search(TrobHandle{Room: 1, Tile: idxB}); i < 0 {
		t.Error("gate B (the last hop) was not queued by the chain walk")
	}
}

func TestTrigobj_JammedGateIgnoresFurtherTriggers(t *testing.T) {
	lvl := newTestLevel()
	gate := lvl.Rooms[1].tileAt(4, 0)
	gate.Kind = KindGate
	gate.Spec = gateJammed

	m := NewMover()
	trigobj(m, lvl, 1, gate, KindPressPlate)

	if i := m.search(TrobHandle{Room: 1, Tile: gate.Row*tileCols + gate.Col}); i >= 0 {
		t.Error("a jammed gate should never be re-queued by a trigger")
	}
}

func TestTrigobj_RubbleSourceJamsGateOpen(t *testing.T) {
	lvl := newTestLevel()
	gate := lvl.Rooms[1].tileAt(4, 0)
	gate.Kind = KindGate

	m := NewMover()
	trigobj(m, lvl, 1, gate, KindRubble)

	i := m.search(TrobHandle{Room: 1, Tile: gate.Row*tileCols + gate.Col})
	if i < 0 {
		t.Fatal("a rubble-triggered gate should be queued")
	}
	if m.trob[i].dir != gateUpJam {
		t.Errorf("dir = %d, want gateUpJam (%d) for a rubble-sourced trigger", m.trob[i].dir, gateUpJam)
	}
}

func TestTrigobj_UnderfootPlateClosesAnOpenGate(t *testing.T) {
	lvl := newTestLevel()
	gate := lvl.Rooms[1].tileAt(4, 0)
	gate.Kind = KindGate
	gate.Spec = gateMaxVal // already fully open

	m := NewMover()
	trigobj(m, lvl, 1, gate, KindUPressPlate)

	i := m.search(TrobHandle{Room: 1, Tile: gate.Row*tileCols + gate.Col})
	if i < 0 {
		t.Fatal("gate should be queued")
	}
	if m.trob[i].dir != gateDown {
		t.Errorf("dir = %d, want gateDown (%d) once an underfoot plate is released past gateMaxVal", m.trob[i].dir, gateDown)
	}
	if gate.Spec != gateTimerStart {
		t.Errorf("Spec = %d, want gateTimerStart (%d)", gate.Spec, gateTimerStart)
	}
}
