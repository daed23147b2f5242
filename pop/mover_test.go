package pop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_OpensThenAutoClosesAfterTimer(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	t2 := lvl.Rooms[1].tileAt(5, 0)
	t2.Kind = KindGate
	t2.Spec = 0

	m := NewMover()
	m.add(TrobHandle{Room: 1, Tile: t2.Row*tileCols + t2.Col}, 1, gateUp)

	for i := 0; i < 60 && t2.Spec < gateMaxVal; i++ {
		m.AnimTick(lvl, 1)
	}
	a.GreaterOrEqual(int(t2.Spec), gateMaxVal, "gate should reach gateMaxVal while raising")

	// Once open, animGate flips it to timed auto-close (gateDown).
	for i := 0; i < 300 && t2.Spec > 0; i++ {
		m.AnimTick(lvl, 1)
	}
	a.EqualValues(0, t2.Spec, "gate should fully close once its open timer elapses")
}

func TestGate_JamHoldsOpenForever(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	gt := lvl.Rooms[1].tileAt(5, 0)
	gt.Kind = KindGate
	gt.Spec = 0

	m := NewMover()
	m.add(TrobHandle{Room: 1, Tile: gt.Row*tileCols + gt.Col}, 1, gateUpJam)

	for i := 0; i < 200; i++ {
		m.AnimTick(lvl, 1)
	}
	a.EqualValues(gateJammed, gt.Spec, "a jammed gate should latch at gateJammed, not cycle back down")
}

func TestSpike_Cycle(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	sp := lvl.Rooms[1].tileAt(2, 1)
	sp.Kind = KindSpikes
	sp.Spec = spikeRetracted

	m := NewMover()
	trigSpikes(m, lvl, 1, sp.Col, sp.Row)
	a.EqualValues(1, sp.Spec, "triggering a retracted spike should start it extending")
	a.Equal(spikeSafe, getSpikes(spikeRetracted))

	for i := 0; i < spikeExtended-1; i++ {
		m.AnimTick(lvl, 1)
	}
	a.EqualValues(spikeTimerBit|spikeTimerMax, sp.Spec, "spike should hold extended with its timer bit set")
	a.Equal(spikeDeadly, getSpikes(sp.Spec))

	for i := 0; i < spikeTimerMax+1; i++ {
		m.AnimTick(lvl, 1)
	}
	a.True(sp.Spec == 0 || getSpikes(sp.Spec) == spikeSpringing, "spike should have begun retracting once its hold timer elapsed")
}

func TestSpike_RetriggerDuringHoldResetsTimer(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	sp := lvl.Rooms[1].tileAt(2, 1)
	sp.Kind = KindSpikes
	sp.Spec = spikeTimerBit | 2 // mid hold, about to expire

	m := NewMover()
	trigSpikes(m, lvl, 1, sp.Col, sp.Row)

	a.EqualValues(spikeTimerBit|spikeTimerMax, sp.Spec, "stepping on a held spike again should reset its hold timer")
}

func TestSlicer_PurgesWhenKidLeavesScreen(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	sl := lvl.Rooms[1].tileAt(6, 2)
	sl.Kind = KindSlicer
	sl.Spec = slicerRet - 1 // one tick from reaching the retract frame

	m := NewMover()
	m.add(TrobHandle{Room: 1, Tile: sl.Row*tileCols + sl.Col}, 1, 0)

	// Kid is in a different room this tick: the slicer should be purged
	// once it reaches its retract frame (spec §4.9.4).
	m.AnimTick(lvl, 2)

	a.EqualValues(0, sl.Spec, "slicer should reset once purged off-screen")
}

func TestSlicer_StaysRunningOnCurrentScreen(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	sl := lvl.Rooms[1].tileAt(6, 2)
	sl.Kind = KindSlicer
	sl.Spec = slicerRet - 1

	m := NewMover()
	m.add(TrobHandle{Room: 1, Tile: sl.Row*tileCols + sl.Col}, 1, 0)

	m.AnimTick(lvl, 1)

	a.EqualValues(slicerRet, sl.Spec, "slicer on the current screen should keep cycling past its retract frame")
}

func TestLooseFloor_WigglesThenFallsIntoMob(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	lf := lvl.Rooms[1].tileAt(4, 1)
	lf.Kind = KindLoose

	m := NewMover()
	knockLoose := func() { m.knockLoose(lvl, 1, lf.Col, lf.Row) }
	knockLoose()
	a.EqualValues(looseWiggleBit, lf.Spec, "first knock should start the wiggle")

	// Wiggle for a few ticks, then let it cross into the falling range.
	for i := 0; i < 3; i++ {
		m.AnimTick(lvl, 1)
	}
	for lf.Kind == KindLoose && lf.Spec < looseFFalling {
		lf.Spec = looseFFalling
		m.AnimTick(lvl, 1)
		break
	}

	a.Equal(KindSpace, lf.Kind, "a loose floor tile should clear once it detaches into a MOB")
	if a.Len(m.mob, 1) {
		a.Equal(1, m.mob[0].Row, "the spawned MOB should start at the loose tile's own row")
	}
}

func TestPressurePlate_PushTriggersLinkedGate(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	plate := lvl.Rooms[1].tileAt(1, 2)
	plate.Kind = KindPressPlate
	plate.Spec = 0 // link chain starts at LinkLoc[0]

	gate := lvl.Rooms[1].tileAt(8, 0)
	gate.Kind = KindGate
	gate.Spec = 0

	// LinkLoc[0]/LinkMap[0] encode: target tile = gate's index, target
	// room = 1 (screen low bits == 1, high bits == 0), isLast. See
	// decodeLink (spec §6.3).
	gateIdx := gate.Row*tileCols + gate.Col
	lvl.LinkLoc[0] = byte(gateIdx) | 0x20 | 0x80 // scrnLo=1, isLast bit set
	lvl.LinkMap[0] = 0                           // scrnHi=0, timer=0

	m := NewMover()
	pushpp(m, lvl, 1, plate, plate.Kind)

	// A fresh press should have queued the gate; a plain pressplate
	// queues fast-close (gateFast3).
	i := m.search(TrobHandle{Room: 1, Tile: gateIdx})
	if a.GreaterOrEqual(i, 0, "pushing the plate should have queued the gate in the TROB list") {
		a.Contains([]int{gateUp, gateFast3, gateUpJam}, m.trob[i].dir)
	}
}

func TestCheckImpale_JamsDeadlySpikeAndReportsHit(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	sp := lvl.Rooms[1].tileAt(3, 1)
	sp.Kind = KindSpikes
	sp.Spec = spikeExtended

	c := &Character{Room: 1, BlockX: 3, BlockY: 1}
	a.True(checkImpale(lvl, c))
	a.EqualValues(spikeJammed, sp.Spec)

	// A retracted spike is not deadly.
	sp.Spec = spikeRetracted
	a.False(checkImpale(lvl, c))
}

func TestCheckSlice_MarksBloodOnExtendedSlicer(t *testing.T) {
	a := assert.New(t)

	lvl := newTestLevel()
	sl := lvl.Rooms[1].tileAt(3, 1)
	sl.Kind = KindSlicer
	sl.Spec = slicerExt

	c := &Character{Room: 1, BlockX: 3, BlockY: 1}
	a.True(checkSlice(lvl, c))
	a.NotZero(sl.Spec & slicerBlood)

	// A slicer outside its extended frame does not slice.
	sl.Spec = 0
	a.False(checkSlice(lvl, c))
}
