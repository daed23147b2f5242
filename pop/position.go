package pop

// Screen layout constants (140-res coordinate space, spec §4.1).
const (
	ScrnLeft    = 58
	ScrnWidth   = 140
	BlockWidth  = 14
	BlockHeight = 63
	Angle       = 7 // center-plane offset within a block
	VertDist    = 10
)

// FloorY[blockY+1] gives the Y scanline of the floor for block row
// blockY (-1..3, the extra entries cover one row above/below the room).
var FloorY = [5]int{-8, 55, 118, 181, 244}

// BlockTop and BlockBot give the top/bottom Y scanline of block row
// blockY (0..2), indexed the same way as FloorY.
var BlockTop = [5]int{-8, 55, 118, 181, 244}
var BlockBot = [5]int{54, 117, 180, 243, 306}

// BlockX returns the block column and the 0..13 pixel offset within it
// for a given X coordinate.
func BlockX(x int) (block, offset int) {
	rel := x - ScrnLeft
	block = rel / BlockWidth
	offset = rel % BlockWidth
	if offset < 0 {
		offset += BlockWidth
		block--
	}
	return block, offset
}

// BlockXCenter is BlockX on the character's center plane (x-Angle).
func BlockXCenter(x int) (block, offset int) {
	return BlockX(x - Angle)
}

// BlockY scans BlockTop/BlockBot to find which block row y falls into.
func BlockY(y int) int {
	for row := 0; row < 3; row++ {
		if y >= BlockTop[row] && y <= BlockBot[row] {
			return row
		}
	}
	if y < BlockTop[0] {
		return -1
	}
	return 3
}

// BlockYCenter scans FloorY the same way, used where the spec calls
// for measuring from the floor line rather than the block band.
func BlockYCenter(y int) int {
	for row := 0; row < 3; row++ {
		if y < FloorY[row+1] {
			return row
		}
	}
	return 3
}

// AddCharX moves x by dx in the character's facing-relative direction:
// forward is +X when facing right, -X when facing left.
func AddCharX(c *Character, dx int) {
	c.X += c.Face * dx
}

// BaseX returns the character's notional foot/center X, derived from
// the current frame's fdx and foot-mark (fcheck bits 0..4).
func BaseX(c *Character) int {
	fr := Frame(c.Posn, c.ID)
	footMark := int(fr.Check & 0x1F)
	return c.X + c.Face*(fr.DX-footMark)
}

// DistToEdge returns the 0..13 pixel distance from the character's
// base X to the facing-direction edge of its current block.
func DistToEdge(c *Character) int {
	_, offset := BlockXCenter(BaseX(c))
	if c.Face > 0 {
		return BlockWidth - 1 - offset
	}
	return offset
}

// RereadBlocks recomputes BlockX/BlockY from the character's current
// position. It is called at least twice per tick (spec §3.3).
func RereadBlocks(c *Character) {
	c.BlockX, _ = BlockXCenter(BaseX(c))
	c.BlockY = BlockY(c.Y)
}

// BlockEj returns the screen-space X of the left edge of block column b.
func BlockEj(b int) int {
	return ScrnLeft + b*BlockWidth
}
