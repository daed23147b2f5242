package pop

// linkEntry is one decoded slot of the level's pressure-plate link
// chain (spec §6.3): linkLoc[i]/linkMap[i] together describe one hop
// from a plate to a remote target tile, possibly continuing to
// further hops until isLast.
type linkEntry struct {
	targetTile int  // 0..29 within the target room
	targetRoom int  // 1..24
	timer      int  // 0..31, 31 = permanent
	isLast     bool
}

func decodeLink(lvl *Level, i int) linkEntry {
	loc := lvl.LinkLoc[i]
	mp := lvl.LinkMap[i]

	target := int(loc & 0x1F)
	scrnLo := int((loc & 0x60) >> 5)
	isLast := loc&0x80 != 0
	timer := int(mp & 0x1F)
	scrnHi := int((mp & 0xE0) >> 5)
	scrn := (scrnHi << 2) | scrnLo

	return linkEntry{targetTile: target, targetRoom: scrn, timer: timer, isLast: isLast}
}

// checkpress implements spec §4.9.7's per-tick hazard trigger: if the
// character is standing on a pressure plate, push it.
func checkpress(m *Mover, lvl *Level, c *Character) {
	t, rm := lvl.GetTile(c.Room, c.BlockX, c.BlockY)
	if t == nil {
		return
	}
	if t.Kind == KindPressPlate || t.Kind == KindUPressPlate {
		pushpp(m, lvl, rm, t, t.Kind)
	}
}

// pushpp implements spec §4.9.7: debounces repeated presses of the
// same plate and, on a genuine new press, triggers the plate's link
// chain. srcKind identifies what is doing the pushing — the plate
// tile's own kind for a character's footstep, or KindRubble when a
// MOB crash lands on the plate (jampp).
func pushpp(m *Mover, lvl *Level, room int, t *Tile, srcKind TileKind) {
	handle := TrobHandle{Room: room, Tile: t.Row*tileCols + t.Col}
	i := m.search(handle)
	timer := 0
	if i >= 0 {
		timer = m.trob[i].dir
	}

	switch {
	case timer >= 31:
		return
	case timer >= 2:
		if i >= 0 {
			m.trob[i].dir = 5
		}
		triggerChain(m, lvl, int(t.Spec), srcKind)
	default:
		if i >= 0 {
			m.trob[i].dir = 5
		} else {
			m.add(handle, room, 5)
		}
		triggerChain(m, lvl, int(t.Spec), srcKind)
	}
}

// triggerChain walks the link chain starting at startIdx (spec
// §4.9.7's "chain walk"), dispatching each target tile per its kind.
func triggerChain(m *Mover, lvl *Level, startIdx int, srcKind TileKind) {
	i := startIdx
	for {
		if i < 0 || i >= len(lvl.LinkLoc) {
			return
		}
		e := decodeLink(lvl, i)

		t, rm := lvl.GetTile(e.targetRoom, e.targetTile%tileCols, e.targetTile/tileCols)
		if t != nil {
			trigobj(m, lvl, rm, t, srcKind)
		}

		if e.isLast {
			return
		}
		i++
	}
}

// trigobj dispatches one link-chain target (spec §4.9.7's gate/exit
// branch table).
func trigobj(m *Mover, lvl *Level, room int, t *Tile, srcKind TileKind) {
	handle := TrobHandle{Room: room, Tile: t.Row*tileCols + t.Col}

	switch t.Kind {
	case KindGate:
		switch {
		case t.Spec == gateJammed:
			return
		case srcKind == KindRubble:
			m.add(handle, room, gateUpJam)
		case srcKind == KindUPressPlate:
			if int(t.Spec) >= gateMaxVal {
				t.Spec = gateTimerStart
				m.add(handle, room, gateDown)
			} else {
				m.add(handle, room, gateUp)
			}
		default:
			m.add(handle, room, gateFast3)
		}

	case KindExit, KindExit2:
		m.add(handle, room, 0)
	}
}

// jampp implements spec §4.9.7: a MOB crash landing on a plate forces
// it into its jammed/depressed state and cascades the jam down the
// plate's own link chain as if a rubble tile had pushed it.
func jampp(m *Mover, lvl *Level, room int, t *Tile) {
	link := t.Spec
	switch t.Kind {
	case KindPressPlate:
		t.Kind = KindDPressPlate
	case KindUPressPlate:
		t.setFloor()
	}
	t.Spec = link
	pushpp(m, lvl, room, t, KindRubble)
}
