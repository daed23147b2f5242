package pop

// Tuning constants for the jump/run math (spec §4.6).
const (
	jumpBackThres  = 6
	rjChange       = 4
	rjLookahead    = 1
	rjLeadDist     = 14
	rjMaxFujBak    = 8
	rjMaxFujFwd    = 2
)

// fwdKind classifies the result of getfwddist (spec §4.6.2).
type fwdKind int

const (
	fwdClear fwdKind = iota
	fwdEdge
	fwdBarrier
)

// Ctrl bundles the level and the shared program a PlayerCtrl call
// needs beyond the character/input themselves; the scheduler
// constructs one per tick.
type Ctrl struct {
	Level *Level
	Prog  *Program
}

func (k *Ctrl) tileAt(room, col, row int) (*Tile, int) {
	return k.Level.GetTile(room, col, row)
}

func (k *Ctrl) kindAt(room, col, row int) (TileKind, uint8) {
	t, _ := k.tileAt(room, col, row)
	if t == nil {
		return KindBlock, 0
	}
	return t.Kind, t.Spec
}

func (k *Ctrl) setSeq(c *Character, seq int) { SetSeq(c, k.Prog, seq) }

// PlayerCtrl is the per-tick entry point of spec §4.6. Input is
// face-normalized for the call's duration: when facing right, forward
// means "right" and backward means "left", and vice versa; all of the
// handlers below read in through facejstk/unfacejstk rather than raw
// Left/Right so they never need to branch on Face themselves.
func PlayerCtrl(c *Character, in *InputSample, ctrl *Ctrl) {
	if c.Dead || c.StunTimer > 0 {
		return
	}

	switch {
	case c.Posn == PosnStand || InRange(c.Posn, PosnStandTurn1, PosnStandTurn3):
		standing(c, in, ctrl)
	case InRange(c.Posn, PosnStartRun1, PosnStartRun3):
		starting(c, in, ctrl)
	case InRange(c.Posn, PosnRunFirst, PosnRunLast):
		running(c, in, ctrl)
	case c.Posn == PosnTurn:
		turning(c, in, ctrl)
	case InRange(c.Posn, PosnJumpUpFirst, PosnJumpUpLast):
		// mid-takeoff: no further input decision until the jump lands
		// or is redirected by floor.go.
	case InRange(c.Posn, PosnHangFirst, PosnHangLast):
		hanging(c, in, ctrl)
	case c.Posn == PosnCrouch:
		crouching(c, in, ctrl)
	}
}

// standing implements spec §4.6 "Standing", in priority order.
func standing(c *Character, in *InputSample, ctrl *Ctrl) {
	if in.ButtonFresh() {
		in.ConsumeButton()
		if pickupStanding(c, ctrl) {
			return
		}
	}

	if unfacejstk(in, c.Face) {
		consumeUnface(in, c.Face)
		ctrl.setSeq(c, seqTurn)
		return
	}

	if in.UpFresh() {
		in.ConsumeUp()
		standingUp(c, in, ctrl)
		return
	}

	if in.DownFresh() {
		in.ConsumeDown()
		standingDown(c, ctrl)
		return
	}

	if facejstk(in, c.Face) {
		consumeFace(in, c.Face)
		if in.Button {
			// Button held: careful single-step movement (spec §4.6 item 5,
			// §4.6.2 doStepfwd), for lining a jump up precisely.
			doStepfwd(c, ctrl)
		} else {
			ctrl.setSeq(c, seqStartRun)
		}
	}
}

// standingUp: stairs probe, else standjump/jumpup (spec §4.6 item 3).
func standingUp(c *Character, in *InputSample, ctrl *Ctrl) {
	underKind, underSpec := ctrl.kindAt(c.Room, c.BlockX, c.BlockY+1)
	behindKind, _ := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY)
	frontKind, _ := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)

	isExit := func(k TileKind) bool { return k == KindExit || k == KindExit2 }
	if isExit(underKind) && int(underSpec)>>2 >= 30 {
		_, off := BlockXCenter(BaseX(c))
		c.X += c.Face * (BlockWidth/2 - off)
		ctrl.setSeq(c, seqClimbStairs)
		return
	}
	if isExit(behindKind) || isExit(frontKind) {
		ctrl.setSeq(c, seqClimbStairs)
		return
	}
	if facejstk(in, c.Face) {
		consumeFace(in, c.Face)
		ctrl.setSeq(c, seqStandJump)
		return
	}

	doJumpup(c, ctrl)
}

// standingDown: cliff nudge / climb-down / stoop (spec §4.6 item 4).
// The gate spec>>2==6 ambiguity is resolved towards climb-down per
// spec §9's own statement of reference behavior (DESIGN.md).
func standingDown(c *Character, ctrl *Ctrl) {
	dist, kind, _ := getfwddist(c, ctrl)
	if kind != fwdBarrier && dist <= 3 {
		AddCharX(c, 5)
		RereadBlocks(c)
		return
	}

	backKind, backSpec := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY)
	backDist := distToEdge(c)
	aboveBack, _ := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY-1)
	if backDist >= 8 && canGrabLedge(backKind, backSpec, aboveBack, -c.Face) {
		AddCharX(c, -9)
		ctrl.setSeq(c, seqClimbDown)
		return
	}

	ctrl.setSeq(c, seqStoop)
}

func starting(c *Character, in *InputSample, ctrl *Ctrl) {
	if unfacejstk(in, c.Face) {
		consumeUnface(in, c.Face)
		ctrl.setSeq(c, seqTurn)
	}
}

// running implements spec §4.6 "Running".
func running(c *Character, in *InputSample, ctrl *Ctrl) {
	if c.Posn == PosnRunCenterA || c.Posn == PosnRunCenterB {
		// The button-held-means-careful-movement convention (see
		// standing's fresh-forward branch) applies here too: pressing
		// the button while running requests a stop into walking mode,
		// matching turning's own (correctly signed) !in.Button check.
		if in.Button {
			ctrl.setSeq(c, seqRunStop)
			return
		}
	}
	if unfacejstk(in, c.Face) {
		consumeUnface(in, c.Face)
		ctrl.setSeq(c, seqRunTurn)
		return
	}
	if facejstk(in, c.Face) {
		if in.UpFresh() {
			in.ConsumeUp()
			consumeFace(in, c.Face)
			doRunjump(c, ctrl)
			return
		}
		if in.DownFresh() {
			in.ConsumeDown()
			consumeFace(in, c.Face)
			ctrl.setSeq(c, seqRDiveRoll)
			return
		}
	}
}

// turning implements spec §4.6 "Turning (frame 48)".
func turning(c *Character, in *InputSample, ctrl *Ctrl) {
	if !in.Button && facejstk(in, -c.Face) && !in.UpFresh() {
		// facejstk(in, -c.Face) reads the not-yet-flipped forward
		// direction, i.e. the direction the character is turning
		// *into*; aboutface happens later in the sequence itself.
		ctrl.setSeq(c, seqTurnRun)
	}
}

// hanging implements spec §4.6 "Hanging".
func hanging(c *Character, in *InputSample, ctrl *Ctrl) {
	if c.StunTimer == 0 && in.UpFresh() {
		in.ConsumeUp()
		aboveKind, aboveSpec := ctrl.kindAt(c.Room, c.BlockX, c.BlockY-1)
		switch aboveKind {
		case KindMirror, KindSlicer:
			if c.Face < 0 {
				ctrl.setSeq(c, seqClimbUp)
			} else {
				ctrl.setSeq(c, seqClimbFail)
			}
		case KindGate:
			if c.Face > 0 || int(aboveSpec)>>2 >= 6 {
				ctrl.setSeq(c, seqClimbUp)
			} else {
				ctrl.setSeq(c, seqClimbFail)
			}
		default:
			ctrl.setSeq(c, seqClimbUp)
		}
		return
	}

	if !in.Button {
		behindKind, _ := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY)
		underKind, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY+1)
		if isPassable(behindKind) {
			AddCharX(c, -7)
			ctrl.setSeq(c, seqHangDrop)
			return
		}
		if isPassable(underKind) {
			ctrl.setSeq(c, seqHangFall)
			return
		}
		ctrl.setSeq(c, seqHangDrop)
		return
	}

	if c.Action != ActionHangStatic {
		underKind, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY+1)
		if underKind == KindBlock || (underKind == KindPanelWOF && c.Face < 0) {
			ctrl.setSeq(c, seqHangStraight)
			return
		}
		aboveKind, aboveSpec := ctrl.kindAt(c.Room, c.BlockX, c.BlockY-1)
		frontAboveKind, frontAboveSpec := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY-1)
		if !canGrabLedge(frontAboveKind, frontAboveSpec, aboveKind, c.Face) {
			ctrl.setSeq(c, seqHangFall)
		}
	}
}

// crouching implements spec §4.6 "Crouching".
func crouching(c *Character, in *InputSample, ctrl *Ctrl) {
	if in.ButtonFresh() {
		in.ConsumeButton()
		if pickupCrouched(c, ctrl) {
			return
		}
	}
	if !in.Down {
		ctrl.setSeq(c, seqStandUp)
		return
	}
	if facejstk(in, c.Face) {
		consumeFace(in, c.Face)
		ctrl.setSeq(c, seqCrawl)
	}
}

// doJumpup implements spec §4.6 standing/running jumps: doJumpup.
func doJumpup(c *Character, ctrl *Ctrl) {
	aboveFront, aboveFrontSpec := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY-1)
	above, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY-1)
	if canGrabLedge(aboveFront, aboveFrontSpec, above, c.Face) {
		doJumphang(c, ctrl, true)
		return
	}

	aboveBack, aboveBackSpec := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY-1)
	dist := distToEdge(c)
	if canGrabLedge(aboveBack, aboveBackSpec, above, -c.Face) && dist >= jumpBackThres {
		behind, _ := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY)
		if isWall(behind, -c.Face) {
			AddCharX(c, -BlockWidth)
			doJumphang(c, ctrl, true)
		} else {
			AddCharX(c, -dist)
			ctrl.setSeq(c, seqJumpBackHang)
		}
		return
	}

	doJumphigh(c, ctrl)
}

func doJumphigh(c *Character, ctrl *Ctrl) {
	k, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY-1)
	if k == KindBlock {
		ctrl.setSeq(c, seqJumpUp)
	} else {
		ctrl.setSeq(c, seqHighJump)
	}
}

// doJumphang implements spec §4.6 doJumphang. forward indicates
// whether the grab was discovered looking ahead (true) or behind
// (false, already handled by the caller snapping X).
func doJumphang(c *Character, ctrl *Ctrl, forward bool) {
	dist := distToEdge(c)
	if dist >= 4 {
		AddCharX(c, dist-4)
		ctrl.setSeq(c, seqJumpHangLong)
		return
	}

	front, _ := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)
	if isWall(front, c.Face) && dist < 4 {
		ctrl.setSeq(c, seqJumpHangLong)
		return
	}

	AddCharX(c, dist)
	ctrl.setSeq(c, seqJumpHangMed)
}

// doRunjump implements spec §4.6 doRunjump, available only from
// posn >= PosnRunCenterA (the spec's "posn >= 7").
func doRunjump(c *Character, ctrl *Ctrl) {
	if c.Posn < PosnRunCenterA {
		return
	}

	base := BaseX(c) + c.Face*rjChange
	blocks := 0
	found := false
	pixelsToEdge := 0
	for blocks = 0; blocks <= rjLookahead; blocks++ {
		bx, off := BlockXCenter(base + c.Face*blocks*BlockWidth)
		k, _ := ctrl.kindAt(c.Room, bx, c.BlockY)
		if k == KindSpikes || isPassable(k) {
			found = true
			if c.Face > 0 {
				pixelsToEdge = BlockWidth - 1 - off
			} else {
				pixelsToEdge = off
			}
			break
		}
	}

	c.RJumpFlag = PosnRJumpEdge
	if !found {
		ctrl.setSeq(c, seqRunJump)
		return
	}

	diff := (pixelsToEdge + blocks*BlockWidth) - rjLeadDist
	if diff < -rjMaxFujBak {
		// Too soon to commit: wait for the edge to get closer.
		return
	}
	if diff > rjMaxFujFwd {
		diff = -3
	}

	AddCharX(c, diff+rjChange)
	ctrl.setSeq(c, seqRunJump)
}

// doStepfwd implements spec §4.6.1 the numeric step-forward sequence
// selection.
func doStepfwd(c *Character, ctrl *Ctrl) {
	dist, kind, _ := getfwddist(c, ctrl)
	if dist != 0 {
		c.Repeat = dist
		ctrl.setSeq(c, seqStep1+dist-1)
		return
	}

	if kind == fwdBarrier {
		c.Repeat = 11
		ctrl.setSeq(c, seqStep11)
		return
	}
	if dist == c.Repeat {
		c.Repeat = 11
		ctrl.setSeq(c, seqStep11)
		return
	}
	c.Repeat = 0
}

// pickupStanding implements spec §4.6.1 phase 1.
func pickupStanding(c *Character, ctrl *Ctrl) bool {
	underKind, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY)
	behindKind, _ := ctrl.kindAt(c.Room, c.BlockX-c.Face, c.BlockY)
	if (underKind == KindFlask || underKind == KindSword) && isWall(behindKind, -c.Face) {
		AddCharX(c, -14)
		RereadBlocks(c)
	}

	frontKind, _ := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)
	if frontKind == KindFlask || frontKind == KindSword {
		ctrl.setSeq(c, seqStoop)
		return true
	}
	return false
}

// pickupCrouched implements spec §4.6.1 phase 2.
func pickupCrouched(c *Character, ctrl *Ctrl) bool {
	dist, _, _ := getfwddist(c, ctrl)
	if dist != 0 {
		AddCharX(c, dist)
		if c.Face > 0 {
			AddCharX(c, -2)
		}
		RereadBlocks(c)
		return true
	}

	bx, by := c.BlockX+c.Face, c.BlockY
	t, room := ctrl.tileAt(c.Room, bx, by)
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindSword:
		t.setFloor()
		_ = room
		c.PendingPotion = rawPotionSword
		ctrl.setSeq(c, seqPickupSword)
		return true
	case KindFlask:
		lastPotion := int(t.Spec>>5) & 0x7
		t.setFloor()
		c.PendingPotion = lastPotion
		ctrl.setSeq(c, seqDrink)
		return true
	}
	return false
}

// distToEdge is a small wrapper over position.go's DistToEdge kept
// local to this file's naming (spec calls it distToEdge throughout
// §4.6).
func distToEdge(c *Character) int { return DistToEdge(c) }

// getfwddist implements spec §4.6.2.
func getfwddist(c *Character, ctrl *Ctrl) (dist int, kind fwdKind, tileKind TileKind) {
	curKind, curSpec := ctrl.kindAt(c.Room, c.BlockX, c.BlockY)
	if code := barrierCode(curKind); code != barClear {
		return dbarr(c, curKind, curSpec, code), fwdBarrier, curKind
	}

	frontKind, frontSpec := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)
	if code := barrierCode(frontKind); code != barClear {
		return dbarr(c, frontKind, frontSpec, code), fwdBarrier, frontKind
	}
	if frontKind == KindPanelWOF && c.Face > 0 {
		return dbarr(c, frontKind, frontSpec, barPanel), fwdBarrier, frontKind
	}

	d := distToEdge(c)
	switch frontKind {
	case KindLoose:
		return d, fwdEdge, frontKind
	case KindPressPlate, KindUPressPlate, KindSword, KindFlask:
		if d == 0 {
			return 11, fwdClear, frontKind
		}
		return d, fwdEdge, frontKind
	}
	if isPassable(frontKind) {
		return d, fwdEdge, frontKind
	}
	return 11, fwdClear, frontKind
}

// dbarr implements spec §4.6.2's barrier-distance math.
func dbarr(c *Character, k TileKind, spec uint8, code int) int {
	if k == KindGate && spec >= 24 {
		return 11
	}
	blockEdge := BlockEj(c.BlockX) + Angle
	if c.Face > 0 {
		return (blockEdge + BarL[code]) - BaseX(c)
	}
	return BaseX(c) - (blockEdge + BlockWidth - 1 - BarR[code])
}
