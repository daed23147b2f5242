package pop

import (
	"fmt"
	"io"
)

// deathWindDownTicks is how long the death sequence plays before
// restartLevel fires (spec §4.11 step 1).
const deathWindDownTicks = 90

// rawPotionSword is the raw 3-bit flask encoding mapped onto
// PotionSword (spec §4.11's potion dispatch names −1 as one of the
// kinds but the flask's spec byte only ever carries 0..7): values
// 1..5 already line up 1:1 with the named PotionHeal..PotionPoison
// constants, so 6 is the one spare slot given to "contains a sword",
// and 0/7 are treated as no-op.
const rawPotionSword = 6

// PendingLevelChange is the state captured when the 'nextlevel' opcode
// fires (spec §4.11 "Level advancement"), surfaced to the host via
// Scheduler.PendingLevel so it can drive the external asset-loader
// suspension point spec §5 describes: the scheduler does not know how
// to load the next level's asset itself, so it parks here and waits
// for the host to call DoAdvanceLevel with the result.
type PendingLevelChange struct {
	Target       int // 1-based target level number
	OrigStrength int // Health.Max to carry into the next level
	HadSword     bool
}

// Scheduler owns every piece of per-run mutable state outside the
// Level asset itself and drives the 17-step per-tick pipeline of spec
// §4.11. One Scheduler plays one level for one kid, with at most one
// live guard sharing the kid's current room.
type Scheduler struct {
	Level *Level
	Prog  *Program
	Mover *Mover
	Health Health
	Cut    Cut

	Kid   *Character
	Guard *Character

	deathTimer      int
	lightningFrames int
	weightless      int
	gotSword        bool
	nextLevel       int

	// jstk is the kid's persistent tri-state input record (spec §6.4's
	// clrF/clrB/clrU/clrD/clrBtn), carried across ticks so a held
	// direction or button is only ever fresh on the tick it was
	// pressed; see InputSample.clrJstk.
	jstk InputSample

	// PendingLevel is non-nil between the tick the 'nextlevel' opcode
	// fired and the host's call to DoAdvanceLevel: spec §5's "the
	// scheduler sets nextLevel, completes the current tick, and
	// suspends further ticking until the host invokes
	// _doAdvanceLevel". While set, Tick is a no-op.
	PendingLevel *PendingLevelChange

	// Won is set once a level-advance target exceeds the highest level
	// (spec §4.11: "Above level 14 → show win state"). The scheduler
	// has no further representation of victory; a host checks Won and
	// stops ticking.
	Won bool

	// Trace receives one line per tick when non-nil (spec §10.4's
	// "injected io.Writer" ambient-logging idiom, matching the
	// teacher's debugOut).
	Trace io.Writer

	// LastFault records the most recent runaway-sequence event for a
	// host to surface as a diagnostic without the core logging
	// directly (SPEC_FULL §10.6).
	LastFault *RunawayFault
}

// NewScheduler builds a Scheduler for a freshly loaded level, spawning
// the kid at its level-encoded start position and a guard in that
// room if one is configured. startSeq lets callers match spec §4.4's
// per-level kid start sequence; pass DefaultStartSeq(lvl.Number) unless
// a test needs to force a specific entry sequence.
func NewScheduler(lvl *Level, prog *Program, startSeq int) *Scheduler {
	room := lvl.Kid.Screen
	s := &Scheduler{
		Level:      lvl,
		Prog:       prog,
		Mover:      NewMover(),
		Health:     NewHealth(),
		deathTimer: -1,
		nextLevel:  -1,
		Kid:        createKid(lvl, room, prog, startSeq),
	}
	s.spawnGuard(room)
	s.Mover.addSlicers(lvl, room)
	return s
}

func (s *Scheduler) spawnGuard(room int) {
	g := s.Level.Guard[room]
	if g.Block >= tileCols*tileRows {
		s.Guard = nil
		return
	}
	s.Guard = createGuard(IDGuard1, room, g, s.Prog)
}

// ctrl builds the Ctrl value PlayerCtrl/floor.go need this tick.
func (s *Scheduler) ctrl() *Ctrl { return &Ctrl{Level: s.Level, Prog: s.Prog} }

// Tick advances the simulation by exactly one 83 ms frame (spec §4.11,
// §5). in is this tick's raw controller sample; pass a zero-value
// InputSample (or nil) on ticks with no fresh reading, e.g. while
// paused — callers still must step Tick once per 83 ms.
func (s *Scheduler) Tick(in *InputSample) ErrorList {
	var errs ErrorList
	if in == nil {
		in = &InputSample{}
	}

	// Suspended: the host hasn't yet supplied the next level (spec §5)
	// or the run has reached the win state. Neither is a per-tick
	// failure; Tick simply does nothing until the host acts.
	if s.PendingLevel != nil || s.Won {
		return errs
	}

	// Step 1-2: death wind-down / begin death.
	if s.deathTimer >= 0 {
		s.stepDeathWindDown()
		s.traceLine(in)
		return errs
	}
	if s.Kid.Dead {
		s.deathTimer = 0
		s.traceLine(in)
		return errs
	}

	// Step 3: movers.
	s.Mover.AnimTick(s.Level, s.Kid.Room)

	// Step 4: input, then clrJstk. in is this tick's raw, memoryless
	// sample; s.jstk is the persistent tri-state record that actually
	// drives PlayerCtrl, so a direction held across many ticks reports
	// fresh only on the tick it was first pressed (spec §6.4, §9).
	s.jstk.clrJstk(in)

	// Step 5: reread blocks.
	RereadBlocks(s.Kid)

	// Step 6: player control. clrAll (spec §6.4) runs right after: any
	// flag PlayerCtrl left fresh-but-unconsumed is forced to consumed
	// so it can't fire again next tick while still held.
	ctrl := s.ctrl()
	PlayerCtrl(s.Kid, &s.jstk, ctrl)
	s.jstk.clrAll()

	// Step 7: animChar.
	s.Kid.WaitTless = s.weightless > 0
	ctx := s.stepContext()
	if fault := Step(s.Kid, ctx, s.Prog); fault != nil {
		s.LastFault = fault
		errs = errs.Add(fault)
	}

	// Step 8-9: gravity, addFall.
	applyGravity(s.Kid, s.weightless > 0)
	addFall(s.Kid)

	// Step 10: reread blocks.
	RereadBlocks(s.Kid)

	// Step 11: floor check.
	CheckFloor(s.Kid, ctrl, &s.jstk, s.Health.decstr)

	// Step 12: hazard triggers, only while still alive.
	if !s.Kid.Dead {
		checkpress(s.Mover, s.Level, s.Kid)
		checkSpikes(s.Mover, s.Level, s.Kid)
		if checkImpale(s.Level, s.Kid) {
			s.Health.decstr(-100)
			s.Kid.Dead = true
		}
		if checkSlice(s.Level, s.Kid) {
			s.Health.decstr(-100)
			s.Kid.Dead = true
		}
		shakeLoose(s.Mover, s.Level, s.Kid)
	}

	// Step 13: cutcheck.
	cutRes := cutcheck(s.Level, s.Kid, &s.Cut)
	if cutRes.Cut {
		s.spawnGuard(s.Kid.Room)
		s.Mover.addSlicers(s.Level, s.Kid.Room)
	} else if cutRes.FellOff {
		s.Kid.Dead = true
	}

	// Step 14: apply pending HP delta.
	if s.Health.chgmeters() {
		s.Kid.Dead = true
	}

	// Step 15: decay weightless / shake.
	if s.weightless > 0 {
		s.weightless--
	}
	if s.lightningFrames > 0 {
		s.lightningFrames--
	}
	if s.Mover.Shake.Frames > 0 {
		s.Mover.Shake.Frames--
	}
	if s.Health.FlashTimer > 0 {
		s.Health.FlashTimer--
	}

	// Step 16: passive guard animation.
	if s.Guard != nil && !s.Guard.Dead {
		if fault := Step(s.Guard, nil, s.Prog); fault != nil {
			errs = errs.Add(fault)
		}
	}

	// Step 17: level advancement.
	if s.nextLevel >= 0 {
		s.advanceLevel(s.nextLevel)
	}

	s.traceLine(in)
	return errs
}

// stepContext wires the interpreter's notification callbacks to the
// scheduler's own state for this tick (spec §4.11 step 7).
func (s *Scheduler) stepContext() *StepContext {
	return &StepContext{
		OnJarUp:   func(c *Character) { shakem(s.Mover, s.Level, c.Room, c.BlockY-1) },
		OnJarDown: func(c *Character) { shakem(s.Mover, s.Level, c.Room, c.BlockY+1) },
		OnEffect: func(c *Character, code uint8) {
			if code == 1 {
				s.potionEffect(c)
			}
		},
		OnNextLevel: func(c *Character) {
			s.nextLevel = s.Level.Number + 1
		},
	}
}

// potionEffect runs the potion dispatch of spec §4.11 for the kid's
// pending flask pickup.
func (s *Scheduler) potionEffect(c *Character) {
	raw := c.PendingPotion
	var kind int
	switch raw {
	case rawPotionSword:
		kind = PotionSword
	case 0, 7:
		return
	default:
		kind = raw
	}

	weightlessTimer, gotSword, _ := applyPotion(&s.Health, kind)
	if weightlessTimer > 0 {
		s.weightless = weightlessTimer
	}
	if gotSword {
		s.gotSword = true
	}
	c.PendingPotion = 0
}

// stepDeathWindDown implements spec §4.11 step 1.
func (s *Scheduler) stepDeathWindDown() {
	_ = Step(s.Kid, nil, s.Prog)
	if s.Mover.Shake.Frames > 0 {
		s.Mover.Shake.Frames--
	}
	s.deathTimer++
	if s.deathTimer >= deathWindDownTicks {
		s.restartLevel()
	}
}

// advanceLevel implements spec §4.11's "Level advancement". Loading
// the next level's asset is the external asset-loader's job (spec §1,
// §5): this only records what must survive the load (origStrength,
// gotSword) and parks the run on s.PendingLevel, suspending further
// ticking (per spec §5) until the host calls DoAdvanceLevel with the
// freshly loaded *Level.
func (s *Scheduler) advanceLevel(target int) {
	origStrength := s.Health.Max
	hadSword := s.gotSword
	s.nextLevel = -1
	if target > 14 {
		// Win state: the host is expected to stop calling Tick; the
		// scheduler itself has no "you won" representation beyond
		// simply not advancing further.
		s.Won = true
		return
	}
	s.PendingLevel = &PendingLevelChange{Target: target, OrigStrength: origStrength, HadSword: hadSword}
}

// DoAdvanceLevel completes the asynchronous level-change suspension
// point spec §5 describes, once the host has finished loading the
// target level named by s.PendingLevel.Target: it swaps lvl/prog in,
// respawns the kid/guard/movers against it, and carries the saved
// strength and sword state forward (spec §4.11's `_doAdvanceLevel`).
// It is a no-op if no level change is pending. prog may be nil to keep
// using the current Program (the bytecode table rarely differs
// per-level).
func (s *Scheduler) DoAdvanceLevel(lvl *Level, prog *Program) {
	pending := s.PendingLevel
	if pending == nil {
		return
	}
	s.PendingLevel = nil

	s.Level = lvl
	if prog != nil {
		s.Prog = prog
	}

	room := lvl.Kid.Screen
	s.Kid = createKid(lvl, room, s.Prog, DefaultStartSeq(lvl.Number))
	_ = Step(s.Kid, nil, s.Prog)

	s.Mover = NewMover()
	s.Mover.addSlicers(lvl, room)
	s.spawnGuard(room)

	s.Health = Health{Cur: pending.OrigStrength, Max: pending.OrigStrength}

	s.gotSword = pending.HadSword
	if pending.Target <= 1 {
		s.gotSword = false
	}

	s.deathTimer = -1
	s.weightless = 0
	s.lightningFrames = 0
	s.Cut = Cut{}
	s.jstk = InputSample{}
}

// restartLevel implements spec §4.11's "Restart": identical to
// advancement but keeps the current level. Once acquired, gotSword
// survives a restart except on level 1, where restartLevel clears it
// itself (the same rule DoAdvanceLevel applies to a target <= 1).
func (s *Scheduler) restartLevel() {
	lvl := s.Level
	room := lvl.Kid.Screen
	s.Kid = createKid(lvl, room, s.Prog, DefaultStartSeq(lvl.Number))
	_ = Step(s.Kid, nil, s.Prog)

	s.Mover = NewMover()
	s.Mover.addSlicers(lvl, room)
	s.spawnGuard(room)

	origStrength := s.Health.Max
	s.Health = Health{Cur: origStrength, Max: origStrength}
	if lvl.Number <= 1 {
		s.gotSword = false
	}

	s.deathTimer = -1
	s.weightless = 0
	s.lightningFrames = 0
	s.Cut = Cut{}
	s.jstk = InputSample{}
}

func (s *Scheduler) traceLine(in *InputSample) {
	if s.Trace == nil {
		return
	}
	fmt.Fprintf(s.Trace, "room=%d x=%d y=%d posn=%d action=%d hp=%d/%d\n",
		s.Kid.Room, s.Kid.X, s.Kid.Y, s.Kid.Posn, s.Kid.Action, s.Health.Cur, s.Health.Max)
}
