package pop

// frameTable, altFrameTable and swordTable hold the static per-frame
// records (spec §4.2). Entries never explicitly set below keep their
// zero value and are treated as no-op frames: DX=DY=0, foot mark 0,
// not on floor. Image/Sword/TableLow/TableHigh are populated only
// where a frame is referenced by name here; they are opaque to the
// simulation core and exist for an external renderer to consume.
var frameTable [numFrames]FrameRecord
var altFrameTable [altFrameHigh - altFrameLow + 1]FrameRecord
var swordTable [numSwordSlot]SwordFrame

func checkByte(footMark int, onFloor bool) uint8 {
	b := uint8(footMark & 0x1F)
	if onFloor {
		b |= 0x40
	}
	return b
}

func setFrame(posn int, image uint8, dx, dy int8, footMark int, onFloor bool) {
	frameTable[posn-1] = FrameRecord{
		Image: image,
		DX:    dx,
		DY:    dy,
		Check: checkByte(footMark, onFloor),
	}
}

func setAltFrame(posn int, image uint8, dx, dy int8, footMark int, onFloor bool) {
	altFrameTable[posn-altFrameLow] = FrameRecord{
		Image: image,
		DX:    dx,
		DY:    dy,
		Check: checkByte(footMark, onFloor),
	}
}

func init() {
	setFrame(PosnStand, 1, 0, 0, 7, true)
	setFrame(PosnStandTurn1, 2, 0, 0, 7, true)
	setFrame(PosnStandTurn2, 3, 0, 0, 7, true)
	setFrame(PosnStandTurn3, 4, 0, 0, 7, true)

	setFrame(PosnStartRun1, 5, 2, 0, 5, true)
	setFrame(PosnStartRun2, 6, 3, 0, 6, true)
	setFrame(PosnStartRun3, 7, 4, 0, 7, true)

	runDX := [...]int8{5, 5, 4, 6, 5, 4, 5, 6, 4, 5, 6}
	for i, dx := range runDX {
		posn := PosnRunFirst + i
		setFrame(posn, uint8(8+i), dx, 0, 7, true)
	}

	setFrame(PosnTurn, 30, 0, 0, 7, true)

	for i, posn := 0, PosnJumpUpFirst; posn <= PosnJumpUpLast; i, posn = i+1, posn+1 {
		setFrame(posn, uint8(40+i), 1, -4, 7, false)
	}

	for i, posn := 0, PosnHangFirst; posn <= PosnHangLast; i, posn = i+1, posn+1 {
		setFrame(posn, uint8(50+i), 0, 0, 10, false)
	}

	for i, posn := 0, PosnFallonFirst; posn <= PosnFallonLast; i, posn = i+1, posn+1 {
		setFrame(posn, uint8(70+i), 0, 1, 7, true)
	}

	setFrame(PosnCrouch, 80, 0, 0, 4, true)
	setFrame(PosnDead, 90, 0, 0, 0, true)

	setFrame(PosnStepEdge, 8+(PosnStepEdge-PosnRunFirst), 5, 0, 7, true)
	setFrame(PosnStepEdge2, 8+(PosnStepEdge2-PosnRunFirst), 5, 0, 7, true)
	setFrame(PosnJumpEdge, 45, 1, -1, 7, false)
	setFrame(PosnRJumpEdge, 46, 2, -1, 7, false)

	for posn := PosnBendFirst; posn <= PosnBendLast; posn++ {
		setFrame(posn, uint8(95+posn-PosnBendFirst), 0, 0, 5, true)
	}

	for posn := 190; posn <= numFrames; posn++ {
		setFrame(posn, uint8(100+posn-190), 0, 0, 7, true)
	}

	for posn := altFrameLow; posn <= altFrameHigh; posn++ {
		setAltFrame(posn, uint8(150+posn-altFrameLow), 0, 0, 7, true)
	}

	for i := range swordTable {
		swordTable[i] = SwordFrame{Image: uint8(i + 1), DX: 0, DY: 0}
	}
}
