package pop

import "testing"

func TestCutcheck_LeftWrapsIntoNeighbor(t *testing.T) {
	lvl := newTestLevel()
	lvl.Rooms[1].Left = 2
	c := &Character{Room: 1, X: cutLeftX - 1, Y: 100}
	cut := &Cut{}

	res := cutcheck(lvl, c, cut)

	if !res.Cut || res.Dir != CutLeft {
		t.Fatalf("cutcheck() = %+v, want Cut=true Dir=CutLeft", res)
	}
	if c.Room != 2 {
		t.Errorf("Room = %d, want 2", c.Room)
	}
	if c.X != cutLeftX-1+cutWrapX {
		t.Errorf("X = %d, want %d", c.X, cutLeftX-1+cutWrapX)
	}
	if cut.cooldown != cutCooldown {
		t.Errorf("cooldown = %d, want %d", cut.cooldown, cutCooldown)
	}
}

func TestCutcheck_RightWrapsIntoNeighbor(t *testing.T) {
	lvl := newTestLevel()
	lvl.Rooms[1].Right = 3
	c := &Character{Room: 1, X: cutRightX + 1, Y: 100}
	cut := &Cut{}

	res := cutcheck(lvl, c, cut)

	if !res.Cut || res.Dir != CutRight || c.Room != 3 {
		t.Fatalf("cutcheck() = %+v, Room=%d, want Cut=true Dir=CutRight Room=3", res, c.Room)
	}
	if c.X != cutRightX+1-cutWrapX {
		t.Errorf("X = %d, want %d", c.X, cutRightX+1-cutWrapX)
	}
}

func TestCutcheck_NoNeighborStaysPut(t *testing.T) {
	lvl := newTestLevel() // no neighbors set, all zero
	c := &Character{Room: 1, X: cutLeftX - 1, Y: 100}
	cut := &Cut{}

	res := cutcheck(lvl, c, cut)

	if res.Cut {
		t.Errorf("cutcheck() = %+v, want no cut with no neighbor room", res)
	}
	if c.Room != 1 {
		t.Errorf("Room = %d, want unchanged 1", c.Room)
	}
	if cut.cooldown != 0 {
		t.Errorf("cooldown = %d, want 0 (no cut took place)", cut.cooldown)
	}
}

func TestCutcheck_UpWrapsBlockYAndY(t *testing.T) {
	lvl := newTestLevel()
	lvl.Rooms[1].Up = 4
	c := &Character{Room: 1, X: 100, Y: cutUpY - 1, BlockY: 0}
	cut := &Cut{}

	res := cutcheck(lvl, c, cut)

	if !res.Cut || res.Dir != CutUp || c.Room != 4 {
		t.Fatalf("cutcheck() = %+v, Room=%d, want Cut=true Dir=CutUp Room=4", res, c.Room)
	}
	if c.Y != cutUpY-1+cutWrapY {
		t.Errorf("Y = %d, want %d", c.Y, cutUpY-1+cutWrapY)
	}
	if c.BlockY != cutWrapBlockY {
		t.Errorf("BlockY = %d, want %d", c.BlockY, cutWrapBlockY)
	}
}

func TestCutcheck_DownFellOffWithNoNeighbor(t *testing.T) {
	lvl := newTestLevel() // Down == 0
	c := &Character{Room: 1, X: 100, Y: cutDownY, BlockY: 2}
	cut := &Cut{}

	res := cutcheck(lvl, c, cut)

	if !res.FellOff {
		t.Errorf("cutcheck() = %+v, want FellOff=true", res)
	}
	if res.Cut {
		t.Errorf("cutcheck() = %+v, want Cut=false when falling off the bottom of the level", res)
	}
	if c.Room != 1 {
		t.Errorf("Room = %d, want unchanged 1 (FellOff does not relocate the character)", c.Room)
	}
}

func TestCutcheck_DownWrapsIntoNeighbor(t *testing.T) {
	lvl := newTestLevel()
	lvl.Rooms[1].Down = 5
	c := &Character{Room: 1, X: 100, Y: cutDownY, BlockY: 2}
	cut := &Cut{}

	res := cutcheck(lvl, c, cut)

	if !res.Cut || res.Dir != CutDown || c.Room != 5 {
		t.Fatalf("cutcheck() = %+v, Room=%d, want Cut=true Dir=CutDown Room=5", res, c.Room)
	}
	if c.Y != cutDownY-cutWrapY {
		t.Errorf("Y = %d, want %d", c.Y, cutDownY-cutWrapY)
	}
	if c.BlockY != 2-cutWrapBlockY {
		t.Errorf("BlockY = %d, want %d", c.BlockY, 2-cutWrapBlockY)
	}
}

func TestCutcheck_CooldownSuppressesImmediateReCross(t *testing.T) {
	lvl := newTestLevel()
	lvl.Rooms[1].Left = 2
	lvl.Rooms[2].Left = 1 // mirrored geometry so the second cut can fire the same way
	c := &Character{Room: 1, X: cutLeftX - 1, Y: 100}
	cut := &Cut{}

	first := cutcheck(lvl, c, cut)
	if !first.Cut {
		t.Fatalf("first cutcheck() = %+v, want a cut", first)
	}

	// Immediately push back across the (now mirrored) left threshold in
	// the new room; the cooldown should suppress any cut for the next
	// cutCooldown ticks even though the geometry would otherwise fire.
	c.X = cutLeftX - 1
	for i := 0; i < cutCooldown; i++ {
		res := cutcheck(lvl, c, cut)
		if res.Cut {
			t.Errorf("tick %d: cutcheck() = %+v, want suppressed by cooldown", i, res)
		}
	}

	res := cutcheck(lvl, c, cut)
	if !res.Cut {
		t.Errorf("cutcheck() after cooldown elapsed = %+v, want a cut to fire again", res)
	}
}
