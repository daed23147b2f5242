package pop

// isPassable reports whether a tile of this kind has no floor: it
// does not stop a fall (spec §4.5). "Passable" is a misnomer kept
// from the spec text — these tiles are walked *through* vertically,
// not stood on.
func isPassable(k TileKind) bool {
	switch k {
	case KindSpace, KindPillarTop, KindPanelWOF, KindBlock,
		KindArchTop1, KindArchTop2, KindArchTop3, KindArchTop4:
		return true
	default:
		return false
	}
}

// Barrier codes (spec §4.5): 0 clear, 1 panel/gate, 3 mirror/slicer, 4
// solid block. Code 2 is reserved (unused by any tile kind) but kept
// in the BarL/BarR tables to preserve index alignment with the spec's
// own 5-entry tables.
const (
	barClear  = 0
	barPanel  = 1
	barMirror = 3
	barBlock  = 4
)

// BarL and BarR give the inset, in pixels, of a barrier body from the
// block's left/right edge respectively, indexed by barrier code.
var BarL = [5]int{0, 12, 2, 0, 0}
var BarR = [5]int{0, 0, 9, 11, 0}

// barrierCode classifies a tile for the forward-distance/barrier math
// in playerctrl.go's getfwddist/dbarr.
func barrierCode(k TileKind) int {
	switch k {
	case KindGate, KindPanelWIF:
		return barPanel
	case KindMirror, KindSlicer:
		return barMirror
	case KindBlock, KindPillarBottom, KindPosts:
		return barBlock
	default:
		return barClear
	}
}

// isWall reports whether a tile of this kind stops horizontal motion
// for a character facing face. A panelwof only blocks a left-facing
// character (spec §4.5: "left-facing characters for which panels act
// as walls").
func isWall(k TileKind, face int) bool {
	switch k {
	case KindBlock, KindPillarBottom, KindPosts, KindGate, KindPanelWIF, KindMirror:
		return true
	case KindPanelWOF:
		return face < 0
	default:
		return false
	}
}

// neighborTile fetches the tile directly adjacent to (col, row) in
// direction (dcol, drow), wrapping across rooms via Level.GetTile. A
// nil tile (room edge with no neighbor) is reported to callers as
// solid block, per spec §7 category 3.
func neighborTile(lvl *Level, room, col, row, dcol, drow int) (TileKind, uint8, bool) {
	t, _ := lvl.GetTile(room, col+dcol, row+drow)
	if t == nil {
		return KindBlock, 0, false
	}
	return t.Kind, t.Spec, true
}

// canGrabLedge implements the ledge-grab predicate of spec §4.5: the
// tile above the ledge candidate must be clear, and the ledge
// candidate itself must have a floor that is actually grabbable from
// the given facing.
func canGrabLedge(ledgeID TileKind, ledgeSpec uint8, aboveID TileKind, face int) bool {
	switch aboveID {
	case KindBlock:
		return false
	case KindPanelWOF:
		if face > 0 {
			return false
		}
	default:
		if !isPassable(aboveID) && aboveID != KindPanelWOF {
			return false
		}
	}

	if isPassable(ledgeID) {
		return false
	}
	if ledgeID == KindLoose && ledgeSpec != 0 {
		return false
	}
	if ledgeID == KindPanelWIF && face < 0 {
		return false
	}
	return true
}
