// Command popview is a minimal SDL2 debug viewer for pop.Scheduler:
// the same kind of thin, non-authoritative front end as the teacher's
// cmd/vnes, but drawing flat per-tile/per-actor rectangles from the
// renderer contract (spec §6.5) instead of decoding real sprite data,
// since pixel-accurate rendering is explicitly out of scope (spec §1).
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/flga/popcore/cmd/internal/meter"
	"github.com/flga/popcore/pop"
)

func init() {
	runtime.LockOSThread()
}

func initSDL() (func(), error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return func() {}, fmt.Errorf("initSDL: unable to init sdl: %s", err)
	}
	return sdl.Quit, nil
}

func loadLevel(path string) (*pop.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open level: %s", err)
	}
	defer f.Close()
	return pop.LoadLevel(f)
}

// keyState tracks which of the five logical inputs (spec §6.4) are
// currently held, translated from SDL keysyms the same way the
// teacher's gui package maps KeyboardEvents to controller bits.
type keyState struct {
	left, right, up, down, button bool
}

func (k keyState) sample() *pop.InputSample {
	jx := 0
	switch {
	case k.left:
		jx = -1
	case k.right:
		jx = 1
	}
	jy := 0
	switch {
	case k.up:
		jy = -1
	case k.down:
		jy = 1
	}
	return pop.SampleInput(jx, jy, k.button)
}

func (k *keyState) handle(evt *sdl.KeyboardEvent) {
	down := evt.Type == sdl.KEYDOWN
	switch evt.Keysym.Sym {
	case sdl.K_LEFT, sdl.K_j:
		k.left = down
	case sdl.K_RIGHT, sdl.K_l:
		k.right = down
	case sdl.K_UP, sdl.K_i:
		k.up = down
	case sdl.K_DOWN, sdl.K_k:
		k.down = down
	case sdl.K_LSHIFT, sdl.K_RSHIFT:
		k.button = down
	}
}

const tickInterval = 83 * time.Millisecond

func run(levelPath string, zoom int, levelNum int) error {
	lvl, err := loadLevel(levelPath)
	if err != nil {
		return err
	}
	// The on-disk level format (spec §6.1) carries no level-number
	// field of its own; the host assigns it from whatever catalog it
	// loaded the file out of (spec SPEC_FULL §3).
	lvl.Number = levelNum

	quitSDL, err := initSDL()
	if err != nil {
		return err
	}
	defer quitSDL()

	window, err := sdl.CreateWindow(
		"popview",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(pop.ScrnWidth*zoom), int32(192*zoom),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return fmt.Errorf("unable to create window: %s", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("unable to create renderer: %s", err)
	}
	defer renderer.Destroy()

	sched := pop.NewScheduler(lvl, pop.DefaultProgram, pop.DefaultStartSeq(lvl.Number))
	m := meter.New(meter.DefaultBufferLen)

	var keys keyState
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
			switch evt := evt.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				keys.handle(evt)
			}
		}

		<-ticker.C
		start := time.Now()
		sched.Tick(keys.sample())
		m.Record(time.Since(start))

		v := sched.View()
		if err := renderView(renderer, v, int32(zoom)); err != nil {
			return fmt.Errorf("render: %s", err)
		}
		window.SetTitle(fmt.Sprintf("popview — room %d  hp %d/%d  %.2fms/tick", v.RoomIdx, v.HP.Cur, v.HP.Max, m.Ms()))
	}
}

func main() {
	levelPath := flag.String("level", "", "path to a level binary (spec §6.1 format)")
	zoom := flag.Int("zoom", 4, "pixel zoom factor")
	levelNum := flag.Int("level-num", 1, "1-based level number, selects the kid's start sequence (spec §4.4)")
	flag.Parse()

	if *levelPath == "" {
		fmt.Fprintln(os.Stderr, "popview: -level is required")
		os.Exit(2)
	}

	if err := run(*levelPath, *zoom, *levelNum); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
