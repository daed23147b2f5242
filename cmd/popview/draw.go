package main

import (
	"image/color"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/flga/popcore/pop"
)

// drawRect fills one rectangle in c, adapted from the teacher's own
// drawRect helper (cmd/vnes/draw.go): set the draw color, fill, done.
func drawRect(r *sdl.Renderer, rect *sdl.Rect, c color.RGBA) error {
	if err := r.SetDrawColor(c.R, c.G, c.B, c.A); err != nil {
		return err
	}
	return r.FillRect(rect)
}

// tileColor picks a flat debug color per tile kind. popview does not
// attempt sprite-accurate rendering (spec §1 Non-goals); it exists so
// a human watching a replay can tell a gate from a spike from a floor.
func tileColor(k pop.TileKind) color.RGBA {
	switch k {
	case pop.KindSpace:
		return color.RGBA{0x10, 0x10, 0x18, 0xFF}
	case pop.KindFloor, pop.KindBlock, pop.KindPillarBottom, pop.KindPosts:
		return color.RGBA{0x80, 0x70, 0x50, 0xFF}
	case pop.KindSpikes:
		return color.RGBA{0xC0, 0x20, 0x20, 0xFF}
	case pop.KindGate:
		return color.RGBA{0x90, 0x90, 0x20, 0xFF}
	case pop.KindSlicer:
		return color.RGBA{0xD0, 0xD0, 0xD0, 0xFF}
	case pop.KindLoose:
		return color.RGBA{0xA0, 0x60, 0x30, 0xFF}
	case pop.KindPressPlate, pop.KindDPressPlate, pop.KindUPressPlate:
		return color.RGBA{0x30, 0x90, 0xC0, 0xFF}
	case pop.KindFlask:
		return color.RGBA{0x40, 0xC0, 0x40, 0xFF}
	case pop.KindSword:
		return color.RGBA{0xC0, 0xC0, 0xF0, 0xFF}
	case pop.KindExit, pop.KindExit2:
		return color.RGBA{0x60, 0x40, 0x20, 0xFF}
	case pop.KindMirror:
		return color.RGBA{0x60, 0x80, 0xF0, 0xFF}
	case pop.KindRubble:
		return color.RGBA{0x50, 0x45, 0x35, 0xFF}
	default:
		return color.RGBA{0x00, 0x00, 0x00, 0x00}
	}
}

var (
	kidColor   = color.RGBA{0xF0, 0xE0, 0x40, 0xFF}
	guardColor = color.RGBA{0xE0, 0x40, 0x40, 0xFF}
)

// renderView draws one View (spec §6.5) into the window: the current
// room's tiles, then the kid and guard as flat rectangles sized to
// one block. X/Y are the 140-res simulation coordinates; zoom maps
// them onto the SDL window's pixel space.
func renderView(r *sdl.Renderer, v pop.View, zoom int32) error {
	if err := r.SetDrawColor(0, 0, 0, 0xFF); err != nil {
		return err
	}
	if err := r.Clear(); err != nil {
		return err
	}

	for _, t := range v.Room.Tiles {
		rect := &sdl.Rect{
			X: int32(pop.ScrnLeft+t.Col*pop.BlockWidth) * zoom,
			Y: int32(pop.BlockTop[t.Row+1]) * zoom,
			W: int32(pop.BlockWidth) * zoom,
			H: int32(pop.BlockHeight) * zoom,
		}
		if err := drawRect(r, rect, tileColor(t.Kind)); err != nil {
			return err
		}
	}

	if err := drawActor(r, v.Kid, zoom, kidColor); err != nil {
		return err
	}
	if v.Guard != nil {
		if err := drawActor(r, *v.Guard, zoom, guardColor); err != nil {
			return err
		}
	}

	if v.FlashColor != 0 {
		flashRect := &sdl.Rect{X: 0, Y: 0, W: int32(pop.ScrnWidth) * zoom, H: 8 * zoom}
		shade := color.RGBA{v.FlashColor * 16, v.FlashColor * 16, v.FlashColor * 16, 0x80}
		if err := drawRect(r, flashRect, shade); err != nil {
			return err
		}
	}

	r.Present()
	return nil
}

func drawActor(r *sdl.Renderer, c pop.CharacterView, zoom int32, col color.RGBA) error {
	const w, h = 10, 50 // rough kid silhouette footprint in 140-res pixels
	rect := &sdl.Rect{
		X: int32(c.X-w/2) * zoom,
		Y: int32(c.Y-h) * zoom,
		W: w * zoom,
		H: h * zoom,
	}
	return drawRect(r, rect, col)
}
