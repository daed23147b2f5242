package pop

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

const (
	roomsPerLevel  = 24
	tilesPerRoom   = 30
	tileRows       = 3
	tileCols       = 10
	levelFileSize  = 2304
	bluetypeOffset = 0x000
	bluetypeSize   = 720
	bluespecOffset = 0x2D0
	bluespecSize   = 720
	linklocOffset  = 0x5A0
	linklocSize    = 256
	linkmapOffset  = 0x6A0
	linkmapSize    = 256
	mapOffset      = 0x7A0
	mapSize        = 96
	infoOffset     = 0x800
	infoSize       = 256
)

// LoadError wraps a fatal, unrecoverable level-loading failure (§7,
// category 1: "fatal malformed asset"). The caller is expected to
// reject the level outright; no partial Level is ever returned
// alongside a non-nil error.
type LoadError struct {
	cause error
}

func (e *LoadError) Error() string { return fmt.Sprintf("pop: load level: %s", e.cause) }
func (e *LoadError) Unwrap() error { return e.cause }

func loadErrorf(format string, args ...interface{}) error {
	return &LoadError{cause: errors.Errorf(format, args...)}
}

func wrapLoadError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &LoadError{cause: errors.Wrap(err, msg)}
}

// KidStart describes where and which way the kid spawns.
type KidStart struct {
	Screen int
	Block  int
	Face   int // -1 or +1
}

// SwordStart describes where a free-standing sword, if any, spawns.
type SwordStart struct {
	Screen int
	Block  int
}

// GuardStart describes a room's guard spawn. Block >= 30 means the
// room has no guard.
type GuardStart struct {
	Block int
	Face  int
	Skill int
}

// Room is one of the 24 rooms making up a level: a 3x10 grid of tiles
// plus up to four neighbor room numbers (0 = void/no neighbor).
type Room struct {
	Tiles [tilesPerRoom]Tile
	Left  int
	Right int
	Up    int
	Down  int
}

func (r *Room) tileAt(col, row int) *Tile {
	return &r.Tiles[row*tileCols+col]
}

// Level is the immutable-at-load structure described in spec §3.1. The
// only things that mutate post-load are each Tile's Spec byte and Kind,
// via mover.go, link.go, playerctrl.go and floor.go.
type Level struct {
	Name   string
	Number int

	Rooms [roomsPerLevel + 1]Room // 1-indexed; Rooms[0] is unused

	LinkLoc [256]byte
	LinkMap [256]byte

	Kid   KidStart
	Sword SwordStart
	Guard [roomsPerLevel + 1]GuardStart
}

// Room returns the room by 1-based number, or nil for 0/void.
func (l *Level) Room(n int) *Room {
	if n <= 0 || n > roomsPerLevel {
		return nil
	}
	return &l.Rooms[n]
}

// GetTile performs the cross-room tile lookup described in spec §3.2:
// out-of-range columns/rows wrap into the neighboring room, and a
// missing neighbor yields (nil, 0) — callers must treat a nil tile as
// solid block.
func (l *Level) GetTile(room, col, row int) (*Tile, int) {
	r := l.Room(room)
	if r == nil {
		return nil, 0
	}

	for col < 0 {
		room = r.Left
		r = l.Room(room)
		if r == nil {
			return nil, 0
		}
		col += tileCols
	}
	for col >= tileCols {
		room = r.Right
		r = l.Room(room)
		if r == nil {
			return nil, 0
		}
		col -= tileCols
	}
	for row < 0 {
		room = r.Up
		r = l.Room(room)
		if r == nil {
			return nil, 0
		}
		row += tileRows
	}
	for row >= tileRows {
		room = r.Down
		r = l.Room(room)
		if r == nil {
			return nil, 0
		}
		row -= tileRows
	}

	return r.tileAt(col, row), room
}

// LoadLevel parses the 2,304-byte level binary format (spec §6.1).
func LoadLevel(r io.Reader) (*Level, error) {
	buf, err := ioutil.ReadAll(io.LimitReader(r, levelFileSize+1))
	if err != nil {
		return nil, wrapLoadError(err, "reading level data")
	}
	if len(buf) != levelFileSize {
		return nil, loadErrorf("expected %d bytes, got %d", levelFileSize, len(buf))
	}

	lvl := &Level{}

	bluetype := buf[bluetypeOffset : bluetypeOffset+bluetypeSize]
	bluespec := buf[bluespecOffset : bluespecOffset+bluespecSize]
	for room := 1; room <= roomsPerLevel; room++ {
		for i := 0; i < tilesPerRoom; i++ {
			idx := (room-1)*tilesPerRoom + i
			typeByte := bluetype[idx]
			kind := TileKind(typeByte & 0x1F)
			if kind >= numTileKinds {
				return nil, loadErrorf("room %d tile %d: invalid tile kind %d", room, i, kind)
			}
			t := &lvl.Rooms[room].Tiles[i]
			t.Kind = kind
			t.Modifier = typeByte&0x20 != 0
			t.Section = (typeByte >> 6) & 0x03
			t.Spec = bluespec[idx]
			t.Row = i / tileCols
			t.Col = i % tileCols
		}
	}

	copy(lvl.LinkLoc[:], buf[linklocOffset:linklocOffset+linklocSize])
	copy(lvl.LinkMap[:], buf[linkmapOffset:linkmapOffset+linkmapSize])

	mp := buf[mapOffset : mapOffset+mapSize]
	for room := 1; room <= roomsPerLevel; room++ {
		base := (room - 1) * 4
		lvl.Rooms[room].Left = int(mp[base+0])
		lvl.Rooms[room].Right = int(mp[base+1])
		lvl.Rooms[room].Up = int(mp[base+2])
		lvl.Rooms[room].Down = int(mp[base+3])
	}

	info := buf[infoOffset : infoOffset+infoSize]

	lvl.Kid.Screen = int(info[0x40])
	lvl.Kid.Block = int(info[0x41])
	if info[0x42] == 0xFF {
		lvl.Kid.Face = -1
	} else {
		lvl.Kid.Face = 1
	}

	lvl.Sword.Screen = int(info[0x44])
	lvl.Sword.Block = int(info[0x45])

	for room := 1; room <= roomsPerLevel; room++ {
		i := room - 1
		block := int(info[0x47+i])
		faceByte := info[0x5F+i]
		skill := int(info[0xA7+i])

		face := 1
		if faceByte == 0xFF {
			face = -1
		}

		lvl.Guard[room] = GuardStart{Block: block, Face: face, Skill: skill}
	}

	return lvl, nil
}

// SaveLevel serializes a Level back into the on-disk format, restoring
// BLUESPEC from the current (possibly mutated) tile Spec bytes. This is
// not required by gameplay but is handy for fixture generation and for
// dev tooling; no command in this module calls it.
func SaveLevel(w io.Writer, l *Level) error {
	buf := make([]byte, levelFileSize)

	for room := 1; room <= roomsPerLevel; room++ {
		for i := 0; i < tilesPerRoom; i++ {
			idx := (room-1)*tilesPerRoom + i
			t := l.Rooms[room].Tiles[i]
			typeByte := byte(t.Kind) & 0x1F
			if t.Modifier {
				typeByte |= 0x20
			}
			typeByte |= (t.Section & 0x03) << 6
			buf[bluetypeOffset+idx] = typeByte
			buf[bluespecOffset+idx] = t.Spec
		}
	}

	copy(buf[linklocOffset:linklocOffset+linklocSize], l.LinkLoc[:])
	copy(buf[linkmapOffset:linkmapOffset+linkmapSize], l.LinkMap[:])

	for room := 1; room <= roomsPerLevel; room++ {
		base := mapOffset + (room-1)*4
		buf[base+0] = byte(l.Rooms[room].Left)
		buf[base+1] = byte(l.Rooms[room].Right)
		buf[base+2] = byte(l.Rooms[room].Up)
		buf[base+3] = byte(l.Rooms[room].Down)
	}

	info := buf[infoOffset : infoOffset+infoSize]
	info[0x40] = byte(l.Kid.Screen)
	info[0x41] = byte(l.Kid.Block)
	if l.Kid.Face < 0 {
		info[0x42] = 0xFF
	}
	info[0x44] = byte(l.Sword.Screen)
	info[0x45] = byte(l.Sword.Block)
	for room := 1; room <= roomsPerLevel; room++ {
		i := room - 1
		g := l.Guard[room]
		info[0x47+i] = byte(g.Block)
		if g.Face < 0 {
			info[0x5F+i] = 0xFF
		}
		info[0xA7+i] = byte(g.Skill)
	}

	_, err := io.Copy(w, bytes.NewReader(buf))
	return err
}
