package pop

import "testing"

func TestStep_FrameByteSetsPosnAndAdvancesPC(t *testing.T) {
	prog := &Program{Code: []byte{42, 7}}
	c := &Character{PC: 0}

	if fault := Step(c, nil, prog); fault != nil {
		t.Fatalf("Step() unexpected fault: %v", fault)
	}
	if c.Posn != 42 {
		t.Errorf("Posn = %d, want 42", c.Posn)
	}
	if c.PC != 1 {
		t.Errorf("PC = %d, want 1", c.PC)
	}
}

func TestStep_Goto(t *testing.T) {
	prog := &Program{
		Dispatch: [numSequences]uint16{5: 10},
		Code:     append(make([]byte, 10), 99),
	}
	prog.Code[0] = opGoto
	prog.Code[1] = 5
	prog.Code[2] = 0

	c := &Character{PC: 0}
	if fault := Step(c, nil, prog); fault != nil {
		t.Fatalf("Step() unexpected fault: %v", fault)
	}
	if c.Seq != 5 {
		t.Errorf("Seq = %d, want 5", c.Seq)
	}
	if c.Posn != 99 {
		t.Errorf("Posn = %d, want 99 (frame at dispatch target)", c.Posn)
	}
}

func TestStep_Ifwtless(t *testing.T) {
	mkProg := func() *Program {
		p := &Program{
			Dispatch: [numSequences]uint16{3: 20},
			Code:     make([]byte, 21),
		}
		p.Code[0] = opIfwtless
		p.Code[1] = 3
		p.Code[2] = 0
		p.Code[3] = 77 // fallthrough frame if not weightless
		p.Code[20] = 88 // frame at seq 3's dispatch target
		return p
	}

	t.Run("not weightless falls through", func(t *testing.T) {
		prog := mkProg()
		c := &Character{PC: 0, WaitTless: false}
		Step(c, nil, prog)
		if c.Posn != 77 {
			t.Errorf("Posn = %d, want 77", c.Posn)
		}
	})

	t.Run("weightless branches", func(t *testing.T) {
		prog := mkProg()
		c := &Character{PC: 0, WaitTless: true}
		Step(c, nil, prog)
		if c.Posn != 88 {
			t.Errorf("Posn = %d, want 88", c.Posn)
		}
		if c.Seq != 3 {
			t.Errorf("Seq = %d, want 3", c.Seq)
		}
	})
}

func TestStep_RunawaySequenceFreezesAndFaults(t *testing.T) {
	// A program that gotos itself forever never reaches a frame byte.
	prog := &Program{
		Dispatch: [numSequences]uint16{0: 0},
		Code:     []byte{opGoto, 0, 0},
	}
	c := &Character{ID: IDKid, Seq: 0, Room: 3, PC: 0}

	fault := Step(c, nil, prog)
	if fault == nil {
		t.Fatal("Step() expected a RunawayFault, got nil")
	}
	if fault.ID != IDKid || fault.Room != 3 {
		t.Errorf("fault = %+v, want ID=%d Room=3", fault, IDKid)
	}
	if c.StunTimer != stunTicks {
		t.Errorf("StunTimer = %d, want %d", c.StunTimer, stunTicks)
	}
}

func TestStep_StunnedCharacterSkipsATick(t *testing.T) {
	prog := &Program{Code: []byte{42}}
	c := &Character{PC: 0, StunTimer: 2}

	if fault := Step(c, nil, prog); fault != nil {
		t.Fatalf("Step() unexpected fault: %v", fault)
	}
	if c.PC != 0 {
		t.Errorf("PC = %d, want 0 (stunned characters do not advance)", c.PC)
	}
	if c.StunTimer != 1 {
		t.Errorf("StunTimer = %d, want 1", c.StunTimer)
	}
}

func TestStep_OutOfBoundsPCFreezes(t *testing.T) {
	prog := &Program{Code: []byte{1, 2}}
	c := &Character{ID: IDGuard1, PC: 50}

	fault := Step(c, nil, prog)
	if fault == nil {
		t.Fatal("Step() expected a RunawayFault for an out-of-range PC")
	}
}

func TestStep_NotificationOpcodesInvokeCallbacks(t *testing.T) {
	prog := &Program{Code: []byte{
		opEffect, 9,
		opJaru,
		opJard,
		opDie,
		opTap, 3,
		opNextlevel,
		55,
	}}
	c := &Character{PC: 0}

	var effects []uint8
	var jarUp, jarDown, died, nextLevel bool
	var tapSound uint8

	ctx := &StepContext{
		OnEffect:    func(_ *Character, code uint8) { effects = append(effects, code) },
		OnJarUp:     func(_ *Character) { jarUp = true },
		OnJarDown:   func(_ *Character) { jarDown = true },
		OnDie:       func(_ *Character) { died = true },
		OnTap:       func(_ *Character, sound uint8) { tapSound = sound },
		OnNextLevel: func(_ *Character) { nextLevel = true },
	}

	if fault := Step(c, ctx, prog); fault != nil {
		t.Fatalf("Step() unexpected fault: %v", fault)
	}
	if len(effects) != 1 || effects[0] != 9 {
		t.Errorf("effects = %v, want [9]", effects)
	}
	if !jarUp || !jarDown || !died || !nextLevel {
		t.Errorf("callbacks fired = jarUp=%v jarDown=%v died=%v nextLevel=%v, want all true", jarUp, jarDown, died, nextLevel)
	}
	if tapSound != 3 {
		t.Errorf("tapSound = %d, want 3", tapSound)
	}
	if !c.LevelComplete {
		t.Error("LevelComplete = false, want true")
	}
	if c.Posn != 55 {
		t.Errorf("Posn = %d, want 55", c.Posn)
	}
}

func TestStep_ChxChyAct(t *testing.T) {
	prog := &Program{Code: []byte{
		opChx, 5,
		opChy, 0xFE, // -2 as int8
		opAct, ActionFreefall,
		70,
	}}
	c := &Character{Face: FaceRight, X: 100, Y: 50}

	Step(c, nil, prog)
	if c.X != 105 {
		t.Errorf("X = %d, want 105", c.X)
	}
	if c.Y != 48 {
		t.Errorf("Y = %d, want 48", c.Y)
	}
	if c.Action != ActionFreefall {
		t.Errorf("Action = %d, want %d", c.Action, ActionFreefall)
	}
	if c.Posn != 70 {
		t.Errorf("Posn = %d, want 70", c.Posn)
	}
}

func TestSetSeq(t *testing.T) {
	prog := &Program{Dispatch: [numSequences]uint16{7: 33}, Code: make([]byte, 34)}
	c := &Character{}
	SetSeq(c, prog, 7)
	if c.Seq != 7 {
		t.Errorf("Seq = %d, want 7", c.Seq)
	}
	if c.PC != 33 {
		t.Errorf("PC = %d, want 33", c.PC)
	}
}
