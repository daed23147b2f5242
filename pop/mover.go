package pop

// Capacities of the two fixed-size mover lists (spec §4.9).
const (
	trobCapacity = 31
	mobCapacity  = 15
)

// Gate spec state space (spec §4.9.1).
const (
	gateMaxVal     = 188
	gateTimerStart = 238
	gateJammed     = 0xFF
)

var gateCloseVel = [9]int{0, 0, 0, 20, 40, 60, 80, 100, 120}

// Gate TROB direction modes.
const (
	gateDown   = 0
	gateUp     = 1
	gateUpJam  = 2
	gateFast3  = 3
	gateFastMax = 8
)

// Exit door spec cap (spec §4.9.2).
const exitMaxVal = 172

// Spike spec state space (spec §4.9.3).
const (
	spikeRetracted = 0
	spikeExtended  = 5
	spikeTimerBit  = 0x80
	spikeTimerMax  = 15
	spikeDone      = 9
	spikeJammed    = 0xFF

	spikeRetractStart = 6
)

// Spike classification returned by getSpikes.
const (
	spikeSafe = iota
	spikeDeadly
	spikeSpringing
)

// Slicer constants (spec §4.9.4).
const (
	sliceTimer   = 15
	slicerRet    = 6
	slicerExt    = 2
	slicerBlood  = 0x80
	slicerSync   = 3
	slicerInit   = 1
)

// Loose-floor constants (spec §4.9.5, §4.9.6).
const (
	looseWiggleBit = 0x80
	looseFFalling  = 10
	crumbleTime    = 2
)

// TrobHandle identifies one animated tile by (room, tile index) so the
// mover list never holds a raw *Tile pointer across ticks (spec §9
// Design Notes, SPEC_FULL §3).
type TrobHandle struct {
	Room int
	Tile int // index 0..29 within Rooms[Room].Tiles
}

type trobEntry struct {
	loc    TrobHandle
	screen int
	dir    int
}

// MobEntry is one falling loose-floor piece (spec §4.9, §4.9.6).
type MobEntry struct {
	X, Y   int
	Screen int
	YVel   int
	Row    int
}

// ShakeRequest records a pending screen-shake request (spec §4.9.1,
// §4.9.6): a duration in frames, raised but not itself animated by the
// core (rendering concern).
type ShakeRequest struct {
	Frames int
}

// Mover owns the TROB/MOB lists (the plate link table lives on Level),
// and steps every animated/falling tile once per tick (spec §4.9).
type Mover struct {
	trob []trobEntry
	mob  []MobEntry

	Shake ShakeRequest
}

func NewMover() *Mover { return &Mover{} }

func (m *Mover) search(loc TrobHandle) int {
	for i, e := range m.trob {
		if e.loc == loc {
			return i
		}
	}
	return -1
}

func (m *Mover) add(loc TrobHandle, screen, dir int) {
	if i := m.search(loc); i >= 0 {
		m.trob[i].dir = dir
		return
	}
	if len(m.trob) >= trobCapacity {
		return
	}
	m.trob = append(m.trob, trobEntry{loc: loc, screen: screen, dir: dir})
}

func (m *Mover) stop(i int) {
	m.trob[i].dir = -1
}

func (m *Mover) compact() {
	out := m.trob[:0]
	for _, e := range m.trob {
		if e.dir != -1 {
			out = append(out, e)
		}
	}
	m.trob = out
}

func (m *Mover) addMob(e MobEntry) {
	if len(m.mob) >= mobCapacity {
		return
	}
	m.mob = append(m.mob, e)
}

func (m *Mover) tile(lvl *Level, h TrobHandle) *Tile {
	r := lvl.Room(h.Room)
	if r == nil || h.Tile < 0 || h.Tile >= tilesPerRoom {
		return nil
	}
	return &r.Tiles[h.Tile]
}

// AnimTick runs one tick of every mover for the given level, scoped to
// the current screen where spec §4.9 says so. Order: animMobs, then
// animTrans, each scanning back-to-front.
func (m *Mover) AnimTick(lvl *Level, currentScreen int) {
	currentSlicerScreen = currentScreen
	m.animMobs(lvl, currentScreen)
	m.animTrans(lvl)
	m.compact()
}

func (m *Mover) animMobs(lvl *Level, currentScreen int) {
	out := m.mob[:0]
	for i := len(m.mob) - 1; i >= 0; i-- {
		e := m.mob[i]
		if m.stepMob(lvl, &e) {
			out = append(out, e)
		}
	}
	// Preserve original relative order (back-to-front scan, but the
	// list itself is order-independent for lookups); reverse back.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	m.mob = out
}

// stepMob advances one MOB entry; it returns false when the entry
// should be removed (landed into rubble, vanished offscreen).
func (m *Mover) stepMob(lvl *Level, e *MobEntry) bool {
	if e.YVel < 0 {
		e.YVel++
		return e.YVel != 0
	}

	e.YVel += 3
	if e.YVel > 29 {
		e.YVel = 29
	}
	e.Y += e.YVel

	if e.Screen == 0 && e.Y >= 192+17 {
		return false
	}

	nextRow := e.Row + 1
	if nextRow <= 3 && e.Y >= FloorY[nextRow] {
		if e.Row >= 2 {
			room := lvl.Room(e.Screen)
			if room != nil && room.Down != 0 {
				e.Screen = room.Down
				e.Row = 0
				e.Y -= BlockHeight
				return true
			}
			e.Screen = 0
			return true
		}

		col := (e.X - ScrnLeft) / BlockWidth
		t, _ := lvl.GetTile(e.Screen, col, nextRow)
		if t == nil {
			e.Y = FloorY[nextRow]
			m.crashMob(lvl, e, e.Screen, col, nextRow)
			return true
		}
		switch t.Kind {
		case KindSpace:
			e.Row = nextRow
		case KindLoose:
			m.knockLoose(lvl, e.Screen, col, nextRow)
			e.YVel /= 2
			e.Row = nextRow
		default:
			e.Y = FloorY[nextRow]
			m.crashMob(lvl, e, e.Screen, col, nextRow)
		}
	}
	return true
}

func (m *Mover) crashMob(lvl *Level, e *MobEntry, room, col, row int) {
	t, rm := lvl.GetTile(room, col, row)
	if t == nil {
		return
	}
	if t.Kind == KindPressPlate || t.Kind == KindUPressPlate {
		jampp(m, lvl, rm, t)
	}
	t.Kind = KindRubble
	t.Spec = 0
	e.YVel = -crumbleTime
	m.Shake = ShakeRequest{Frames: 4}
}

func (m *Mover) knockLoose(lvl *Level, room, col, row int) {
	t, _ := lvl.GetTile(room, col, row)
	if t == nil || t.Kind != KindLoose || t.Modifier {
		return
	}
	if t.Spec == 0 {
		t.Spec = looseWiggleBit
		m.add(TrobHandle{Room: room, Tile: row*tileCols + col}, room, 0)
	}
}

func (m *Mover) animTrans(lvl *Level) {
	for i := len(m.trob) - 1; i >= 0; i-- {
		e := m.trob[i]
		if e.dir == -1 {
			continue
		}
		t := m.tile(lvl, e.loc)
		if t == nil {
			m.stop(i)
			continue
		}
		switch t.Kind {
		case KindGate:
			m.animGate(lvl, i, t)
		case KindExit, KindExit2:
			m.animExit(i, t)
		case KindSpikes:
			m.animSpike(i, t)
		case KindSlicer:
			m.animSlicer(lvl, e, i, t)
		case KindLoose:
			m.animLoose(lvl, e.loc, i, t)
		case KindDPressPlate, KindPressPlate, KindUPressPlate:
			m.animPlate(i)
		default:
			m.stop(i)
		}
	}
}

// animGate implements spec §4.9.1's four gate modes.
func (m *Mover) animGate(lvl *Level, i int, t *Tile) {
	e := &m.trob[i]
	switch e.dir {
	case gateDown:
		if int(t.Spec) > gateMaxVal {
			t.Spec--
			if int(t.Spec) <= gateMaxVal {
				return
			}
		} else if t.Spec > 0 {
			t.Spec--
		} else {
			m.stop(i)
		}
	case gateUp:
		v := int(t.Spec) + 4
		if v >= gateMaxVal {
			t.Spec = gateTimerStart
			e.dir = gateDown
		} else {
			t.Spec = uint8(v)
		}
	case gateUpJam:
		v := int(t.Spec) + 4
		if v >= gateMaxVal {
			t.Spec = gateJammed
			m.stop(i)
		} else {
			t.Spec = uint8(v)
		}
	default:
		vel := gateCloseVel[e.dir]
		v := int(t.Spec) - vel
		if v <= 0 {
			t.Spec = 0
			m.stop(i)
			m.Shake = ShakeRequest{Frames: 2}
		} else {
			t.Spec = uint8(v)
			if e.dir < gateFastMax {
				e.dir++
			}
		}
	}
}

func (m *Mover) animExit(i int, t *Tile) {
	if int(t.Spec)+4 >= exitMaxVal {
		t.Spec = exitMaxVal
		m.stop(i)
		return
	}
	t.Spec += 4
}

// animSpike implements spec §4.9.3.
func (m *Mover) animSpike(i int, t *Tile) {
	if t.Spec == spikeJammed {
		return
	}
	if t.Spec&spikeTimerBit != 0 {
		low := t.Spec &^ spikeTimerBit
		if low == 0 {
			t.Spec = spikeRetractStart // timer elapsed: begin retracting
		} else {
			t.Spec = spikeTimerBit | (low - 1)
		}
		return
	}
	t.Spec++
	switch {
	case t.Spec == spikeExtended:
		t.Spec = spikeTimerBit | spikeTimerMax
	case t.Spec >= spikeDone:
		t.Spec = 0
		m.stop(i)
	}
}

func trigSpikes(m *Mover, lvl *Level, room, col, row int) {
	t, rm := lvl.GetTile(room, col, row)
	if t == nil || t.Kind != KindSpikes {
		return
	}
	switch {
	case t.Spec == spikeJammed:
		return
	case t.Spec == spikeRetracted:
		t.Spec = 1
		m.add(TrobHandle{Room: rm, Tile: row*tileCols + col}, rm, 0)
	case t.Spec&spikeTimerBit != 0:
		t.Spec = spikeTimerBit | spikeTimerMax
	}
}

// getSpikes classifies a spike tile's spec (spec §4.9.3): safe at
// rest, deadly fully extended (including its timer hold and a jam),
// springing while extending or retracting.
func getSpikes(spec uint8) int {
	switch {
	case spec == spikeRetracted:
		return spikeSafe
	case spec == spikeJammed, spec&spikeTimerBit != 0, spec == spikeExtended:
		return spikeDeadly
	default:
		return spikeSpringing
	}
}

// animSlicer implements spec §4.9.4.
func (m *Mover) animSlicer(lvl *Level, e trobEntry, i int, t *Tile) {
	blood := t.Spec & slicerBlood
	frame := (t.Spec &^ slicerBlood) + 1
	if frame >= sliceTimer {
		frame = 0
	}
	if frame == slicerRet && e.screen != currentSlicerScreen {
		t.Spec = 0
		m.stop(i)
		return
	}
	t.Spec = blood | frame
}

// currentSlicerScreen is set by AnimTick from the room the scheduler
// passes it, so animSlicer can purge off-screen slicers (spec §4.9.4).
// It is package state rather than a Mover field because slicers are
// only ever purged relative to "the room the kid is currently in",
// which the scheduler already tracks.
var currentSlicerScreen int

func trigSlicer(m *Mover, lvl *Level, room, col, row int) {
	t, rm := lvl.GetTile(room, col, row)
	if t == nil || t.Kind != KindSlicer {
		return
	}
	frame := t.Spec &^ slicerBlood
	if frame == 0 || frame >= slicerRet {
		blood := t.Spec & slicerBlood
		t.Spec = blood | slicerInit
		m.add(TrobHandle{Room: rm, Tile: row*tileCols + col}, rm, 0)
	}
}

// addSlicers implements spec §4.9.4's room-entry stagger: every slicer
// in room is restarted SYNC frames apart (mod sliceTimer) so a
// corridor of slicers isn't in lockstep.
func (m *Mover) addSlicers(lvl *Level, room int) {
	r := lvl.Room(room)
	if r == nil {
		return
	}
	slot := 0
	for i := range r.Tiles {
		t := &r.Tiles[i]
		if t.Kind != KindSlicer {
			continue
		}
		t.Spec = uint8((slot * slicerSync) % sliceTimer)
		m.add(TrobHandle{Room: room, Tile: i}, room, 0)
		slot++
	}
}

// animLoose implements spec §4.9.5.
func (m *Mover) animLoose(lvl *Level, h TrobHandle, i int, t *Tile) {
	switch {
	case t.Spec&looseWiggleBit != 0:
		w := t.Spec &^ looseWiggleBit
		if w >= 3 {
			t.Spec = 1
		} else {
			t.Spec = looseWiggleBit | (w + 1)
		}
	case t.Spec == 0:
		m.stop(i)
	case int(t.Spec) >= looseFFalling:
		centerX := ScrnLeft + t.Col*BlockWidth + BlockWidth/2
		y := FloorY[t.Row]
		room := h.Room
		t.clear()
		m.addMob(MobEntry{X: centerX, Y: y, Screen: room, Row: t.Row})
		m.stop(i)
	default:
		t.Spec++
	}
}

func breakloose(m *Mover, lvl *Level, room, col, row int) {
	t, rm := lvl.GetTile(room, col, row)
	if t == nil || t.Kind != KindLoose || t.Modifier {
		return
	}
	if t.Spec == 0 {
		t.Spec = 1
		m.add(TrobHandle{Room: rm, Tile: row*tileCols + col}, rm, 0)
	}
}

func shakem(m *Mover, lvl *Level, room, row int) {
	r := lvl.Room(room)
	if r == nil {
		return
	}
	for col := 0; col < tileCols; col++ {
		t := r.tileAt(col, row)
		if t.Kind != KindLoose || t.Modifier {
			continue
		}
		if t.Spec == 0 {
			t.Spec = looseWiggleBit
			m.add(TrobHandle{Room: room, Tile: row*tileCols + col}, room, 0)
		}
	}
}

// animPlate decrements a pressure plate's own press-debounce timer
// each tick (spec §4.9.7). The timer lives in the TROB entry's dir
// field, not the tile's Spec byte: Spec holds the plate's (permanent)
// link-table index, which pushpp/triggerChain must still be able to
// read after the plate has been stepped on.
func (m *Mover) animPlate(i int) {
	timer := m.trob[i].dir
	if timer <= 0 {
		m.stop(i)
		return
	}
	timer--
	m.trob[i].dir = timer
	if timer == 0 {
		m.stop(i)
	}
}

// checkSpikes implements spec §4.11 step 12's "checkspikes": stepping
// onto an idle spike tile triggers it, same as any other trigger path.
func checkSpikes(m *Mover, lvl *Level, c *Character) {
	t, rm := lvl.GetTile(c.Room, c.BlockX, c.BlockY)
	if t == nil || t.Kind != KindSpikes {
		return
	}
	trigSpikes(m, lvl, rm, t.Col, t.Row)
}

// checkImpale implements spec §4.9.8.
func checkImpale(lvl *Level, c *Character) bool {
	t, _ := lvl.GetTile(c.Room, c.BlockX, c.BlockY)
	if t == nil || t.Kind != KindSpikes {
		return false
	}
	if getSpikes(t.Spec) == spikeSafe {
		return false
	}
	t.Spec = spikeJammed
	return true
}

// checkSlice implements spec §4.9.8.
func checkSlice(lvl *Level, c *Character) bool {
	sliced := false
	for col := c.BlockX - 1; col <= c.BlockX+1; col++ {
		t, _ := lvl.GetTile(c.Room, col, c.BlockY)
		if t == nil || t.Kind != KindSlicer {
			continue
		}
		if t.Spec&^slicerBlood == slicerExt {
			t.Spec |= slicerBlood
			sliced = true
		}
	}
	return sliced
}

// shakeLoose implements spec §4.9.8.
func shakeLoose(m *Mover, lvl *Level, c *Character) {
	t, rm := lvl.GetTile(c.Room, c.BlockX, c.BlockY)
	if t == nil || t.Kind != KindLoose {
		return
	}
	breakloose(m, lvl, rm, t.Col, t.Row)
}
