package pop

// Snapshot is the minimum persisted-state set of spec §6.6. Save/load
// logic (file I/O, UI) stays out of scope, but the shape itself is not
// left unaddressed: a host that wants to persist across sessions has
// somewhere to put the bytes.
type Snapshot struct {
	LevelNum int

	KidRoom   int
	KidX      int
	KidY      int
	KidFace   int
	KidBlockX int
	KidBlockY int
	KidPosn   int
	KidAction int
	KidXVel   int
	KidYVel   int
	KidSeq    int
	KidSword  int
	KidDead   bool

	HealthCur int
	HealthMax int

	GotSword bool

	// TileSpecs[room][i] mirrors Level.Rooms[room].Tiles[i].Spec,
	// 1-indexed by room to match Level.Rooms.
	TileSpecs [roomsPerLevel + 1][tilesPerRoom]uint8
}

// Snapshot captures the persisted-state subset of the Scheduler's
// current state.
func (s *Scheduler) Snapshot() Snapshot {
	var snap Snapshot
	snap.LevelNum = s.Level.Number

	snap.KidRoom = s.Kid.Room
	snap.KidX = s.Kid.X
	snap.KidY = s.Kid.Y
	snap.KidFace = s.Kid.Face
	snap.KidBlockX = s.Kid.BlockX
	snap.KidBlockY = s.Kid.BlockY
	snap.KidPosn = s.Kid.Posn
	snap.KidAction = s.Kid.Action
	snap.KidXVel = s.Kid.XVel
	snap.KidYVel = s.Kid.YVel
	snap.KidSeq = s.Kid.Seq
	snap.KidSword = s.Kid.SwordSlot
	snap.KidDead = s.Kid.Dead

	snap.HealthCur = s.Health.Cur
	snap.HealthMax = s.Health.Max

	snap.GotSword = s.gotSword

	for room := 1; room <= roomsPerLevel; room++ {
		for i, t := range s.Level.Rooms[room].Tiles {
			snap.TileSpecs[room][i] = t.Spec
		}
	}
	return snap
}

// Restore applies a previously captured Snapshot onto the Scheduler's
// current Level (which must be the same level the snapshot was taken
// from — room/tile-kind layout is not itself persisted). The kid's
// sequence cursor is restored via SetSeq rather than a raw PC write,
// since PC is an offset into a Program that may differ across builds.
func (s *Scheduler) Restore(snap Snapshot) {
	s.Kid.Room = snap.KidRoom
	s.Kid.X = snap.KidX
	s.Kid.Y = snap.KidY
	s.Kid.Face = snap.KidFace
	s.Kid.BlockX = snap.KidBlockX
	s.Kid.BlockY = snap.KidBlockY
	s.Kid.Posn = snap.KidPosn
	s.Kid.Action = snap.KidAction
	s.Kid.XVel = snap.KidXVel
	s.Kid.YVel = snap.KidYVel
	s.Kid.SwordSlot = snap.KidSword
	s.Kid.Dead = snap.KidDead
	SetSeq(s.Kid, s.Prog, snap.KidSeq)

	s.Health.Cur = snap.HealthCur
	s.Health.Max = snap.HealthMax

	s.gotSword = snap.GotSword

	for room := 1; room <= roomsPerLevel; room++ {
		for i := range s.Level.Rooms[room].Tiles {
			s.Level.Rooms[room].Tiles[i].Spec = snap.TileSpecs[room][i]
		}
	}
}
