package pop

// Landing-severity thresholds on yVel (spec §4.7 hitFloor, §8 boundary
// behaviors).
const (
	softLandMaxVel = 22 // < this: soft landing, no damage
	medLandMaxVel  = 33 // < this: medium landing, -1 HP
	// >= medLandMaxVel is a hard landing: death.
)

// fallonStun is the StunTimer value set on a successful ledge grab
// from a fall (spec §4.7 fallon).
const fallonStun = 12

// CheckFloor implements spec §4.7: post-physics classification of a
// character's contact with the ground, run after animChar + gravity +
// addFall for every live character, every tick. decstr queues a
// hit-point delta on the supplied Health (nil for characters with no
// health track, e.g. a guard).
func CheckFloor(c *Character, ctrl *Ctrl, in *InputSample, decstr func(int)) {
	switch c.Action {
	case ActionHangStatic:
		return
	case ActionBumped:
		if c.Posn == PosnCrouch || c.Posn == PosnDead {
			onGround(c, ctrl)
		}
	case ActionFreefall:
		falling(c, ctrl, in, decstr)
	case ActionControlledFall:
		if InRange(c.Posn, PosnFallonFirst, PosnFallonLast) {
			fallon(c, ctrl, in, decstr)
		}
	case ActionHang:
		return
	case ActionNormal, ActionOnGround, ActionOnGroundAlt:
		onGround(c, ctrl)
	}
}

// falling implements spec §4.7 "falling".
func falling(c *Character, ctrl *Ctrl, in *InputSample, decstr func(int)) {
	if c.Y < FloorY[c.BlockY+1] {
		fallon(c, ctrl, in, decstr)
		return
	}

	underKind, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY)
	switch {
	case underKind == KindBlock:
		insideBlock(c, ctrl)
	case isPassable(underKind):
		c.BlockY++
	default:
		hitFloor(c, ctrl, decstr)
	}
}

// fallon implements spec §4.7 "fallon (ledge-grab)". If the
// preconditions for attempting a grab at all aren't met, the
// character is not near a ledge worth probing and simply keeps
// falling under the existing velocity (the next tick's falling/fallon
// call will re-evaluate).
func fallon(c *Character, ctrl *Ctrl, in *InputSample, decstr func(int)) {
	if !(in != nil && in.Button) || c.Dead || c.YVel >= 32 || c.Y+25 < FloorY[c.BlockY+1] {
		return
	}

	savedX := c.X
	AddCharX(c, -8)
	RereadBlocks(c)

	aboveFront, aboveFrontSpec := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY-1)
	above, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY-1)
	if !canGrabLedge(aboveFront, aboveFrontSpec, above, c.Face) {
		c.X = savedX
		RereadBlocks(c)
		return
	}

	d := distToEdge(c)
	AddCharX(c, d)
	c.Y = FloorY[c.BlockY+1]
	c.YVel = 0
	ctrl.setSeq(c, seqFallHang)
	c.StunTimer = fallonStun
}

// hitFloor implements spec §4.7 "hitFloor".
func hitFloor(c *Character, ctrl *Ctrl, decstr func(int)) {
	c.Y = FloorY[c.BlockY+1]

	frontKind, _ := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)
	if isPassable(frontKind) && distToEdge(c) < 4 {
		AddCharX(c, -3)
	}

	if c.Dead {
		landed(c)
		ctrl.setSeq(c, seqHardLand)
		return
	}

	switch {
	case c.YVel < softLandMaxVel:
		landed(c)
		ctrl.setSeq(c, seqSoftLand)
	case c.YVel < medLandMaxVel:
		landed(c)
		if decstr != nil {
			decstr(-1)
		}
		ctrl.setSeq(c, seqMedLand)
	default:
		landed(c)
		c.Dead = true
		ctrl.setSeq(c, seqHardLand)
	}
}

// onGround implements spec §4.7 "onGround": only fires on frames whose
// fcheck foot-on-floor bit is set.
func onGround(c *Character, ctrl *Ctrl) {
	fr := Frame(c.Posn, c.ID)
	if !fr.FootOnFloor() {
		return
	}

	underKind, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY)
	switch {
	case underKind == KindBlock:
		insideBlock(c, ctrl)
	case isPassable(underKind):
		startfall(c, ctrl)
	}
}

// startfall implements spec §4.7 "startfall": the posn the character
// occupied the instant its floor vanished selects which falling
// sequence it drops into.
func startfall(c *Character, ctrl *Ctrl) {
	c.RJumpFlag = c.Posn
	c.SwordSlot = 0
	c.BlockY++

	var seq int
	switch {
	case c.Posn == PosnStepEdge:
		seq = seqStepFall
	case c.Posn == PosnStepEdge2:
		seq = seqStepFall2
	case c.Posn == PosnJumpEdge:
		seq = seqJumpFall
	case c.Posn == PosnRJumpEdge:
		seq = seqRJumpFall
	case InRange(c.Posn, PosnBendFirst, PosnBendLast):
		AddCharX(c, 5)
		seq = seqStepFall2
	case InRange(c.Posn, PosnAltFirst, PosnAltLast):
		seq = seqStepFall
	default:
		seq = seqStepFall
	}
	ctrl.setSeq(c, seq)
	RereadBlocks(c)

	underKind, _ := ctrl.kindAt(c.Room, c.BlockX, c.BlockY)
	if isWall(underKind, c.Face) {
		insideBlock(c, ctrl)
		return
	}
	frontKind, _ := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)
	if isWall(frontKind, c.Face) {
		cdpatch(c)
	}
}

// cdpatch implements spec §4.7's startfall wall-correction patch.
func cdpatch(c *Character) {
	if c.RJumpFlag == PosnRJumpEdge && distToEdge(c) < 6 {
		// patchfall: let the running-jump fall continue unmodified;
		// the distance is already tight enough not to clip the wall.
		return
	}
	AddCharX(c, -1)
}

// insideBlock implements spec §4.7 "insideBlock (bump-out)".
func insideBlock(c *Character, ctrl *Ctrl) {
	d := distToEdge(c)
	frontKind, _ := ctrl.kindAt(c.Room, c.BlockX+c.Face, c.BlockY)
	if d < 8 && !isWall(frontKind, c.Face) {
		AddCharX(c, d+4)
	} else {
		AddCharX(c, -(BlockWidth-d)+4)
	}
	RereadBlocks(c)
}
