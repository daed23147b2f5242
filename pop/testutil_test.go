package pop

// newTestLevel builds a single-room level (room 1, all floor tiles)
// with no neighbors, suitable as a fixture for tests that only need a
// tile grid to stand a character on. Callers mutate Rooms[1].Tiles or
// the Left/Right/Up/Down links directly for cases that need more.
func newTestLevel() *Level {
	lvl := &Level{Number: 1}
	r := &lvl.Rooms[1]
	for i := range r.Tiles {
		r.Tiles[i] = Tile{Kind: KindFloor, Col: i % tileCols, Row: i / tileCols}
	}
	return lvl
}

func newTestCtrl(lvl *Level) *Ctrl {
	return &Ctrl{Level: lvl, Prog: DefaultProgram}
}
