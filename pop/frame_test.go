package pop

import "testing"

func TestFrame_OutOfRangeIsZeroValue(t *testing.T) {
	for _, posn := range []int{0, -1, numFrames + 1} {
		fr := Frame(posn, IDKid)
		if !fr.Unused() {
			t.Errorf("Frame(%d, IDKid) = %+v, want zero value", posn, fr)
		}
	}
}

func TestFrame_KidNeverUsesAltTable(t *testing.T) {
	fr := Frame(altFrameLow, IDKid)
	want := frameTable[altFrameLow-1]
	if fr != want {
		t.Errorf("Frame(%d, IDKid) = %+v, want the base table entry %+v", altFrameLow, fr, want)
	}
}

func TestFrame_GuardUsesAltTableInRange(t *testing.T) {
	fr := Frame(altFrameLow, IDGuard1)
	want := altFrameTable[0]
	if fr != want {
		t.Errorf("Frame(%d, IDGuard1) = %+v, want alt table entry %+v", altFrameLow, fr, want)
	}

	// One below the alt range: guards still read the base table.
	below := Frame(altFrameLow-1, IDGuard1)
	if below != frameTable[altFrameLow-2] {
		t.Errorf("Frame(%d, IDGuard1) = %+v, want base table entry", altFrameLow-1, below)
	}
}

func TestFrameRecord_Bits(t *testing.T) {
	fr := Frame(PosnStand, IDKid)
	if !fr.FootOnFloor() {
		t.Error("Frame(PosnStand).FootOnFloor() = false, want true")
	}
	if fr.FootMark() != 7 {
		t.Errorf("Frame(PosnStand).FootMark() = %d, want 7", fr.FootMark())
	}

	jump := Frame(PosnJumpUpFirst, IDKid)
	if jump.FootOnFloor() {
		t.Error("Frame(PosnJumpUpFirst).FootOnFloor() = true, want false")
	}
}

func TestSwordOverlay_OutOfRangeIsZeroValue(t *testing.T) {
	for _, slot := range []int{0, -1, numSwordSlot + 1} {
		sf := SwordOverlay(slot)
		if sf != (SwordFrame{}) {
			t.Errorf("SwordOverlay(%d) = %+v, want zero value", slot, sf)
		}
	}
}

func TestSwordOverlay_ValidSlot(t *testing.T) {
	sf := SwordOverlay(1)
	if sf.Image != 1 {
		t.Errorf("SwordOverlay(1).Image = %d, want 1", sf.Image)
	}
}
