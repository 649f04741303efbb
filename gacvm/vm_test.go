package gacvm

import (
	"math/rand"
	"testing"

	"github.com/gac-toolkit/gac/gacdb"
	"github.com/gac-toolkit/gac/gacdb/gaccmd"
	"github.com/gac-toolkit/gac/gacdb/gaccore"
)

// fakeIO is a minimal gacio.Facade recording every Print call, for tests
// that only need to assert on output.
type fakeIO struct {
	printed []string
	inputs  []string
}

func (f *fakeIO) Print(s string)            { f.printed = append(f.printed, s) }
func (f *fakeIO) SetWidth(w int)            {}
func (f *fakeIO) SetSeparators(s []string)  {}
func (f *fakeIO) WaitKeyOrTimeout(n int)    {}
func (f *fakeIO) Input() string {
	if len(f.inputs) == 0 {
		return ""
	}
	s := f.inputs[0]
	f.inputs = f.inputs[1:]
	return s
}

func push(v uint16) gaccmd.Instr { return gaccmd.Push(v) }
func op(id byte) gaccmd.Instr    { return gaccmd.Instruction(gaccmd.OpByID(id)) }

func newTestMachine() (*Machine, *fakeIO) {
	db := &gacdb.Database{
		Messages: map[int]string{
			int(gaccore.MsgCantSee):  "You can't see that here",
			int(gaccore.MsgTooMuch):  "That's too much to carry",
			int(gaccore.MsgDontHave): "You don't have that",
		},
		Objects: map[byte]*gacdb.Object{
			1: {Weight: 5, InitialLoc: 100, Name: "lamp"},
			2: {Weight: 250, InitialLoc: 100, Name: "anvil"},
		},
		Locations: map[uint16]*gacdb.Room{
			100: {Desc: "A small room."},
			101: {Desc: "A dark corridor."},
		},
		InitLoc: 100,
	}
	io := &fakeIO{}
	m := NewMachine(db, io, rand.New(rand.NewSource(1)))
	return m, io
}

func TestStackArithmetic(t *testing.T) {
	m, _ := newTestMachine()
	cond := gacdb.Cond{push(3), push(4), op(gaccmd.OpADD), op(gaccmd.OpEND)}
	m.Run(cond, false)
	if len(m.State.Stack) != 1 || m.State.Stack[0] != 7 {
		t.Errorf("stack = %v, want [7]", m.State.Stack)
	}
}

func TestEndifClearsStack(t *testing.T) {
	m, _ := newTestMachine()
	cond := gacdb.Cond{push(1), push(2), op(gaccmd.OpENDIF)}
	m.Run(cond, false)
	if len(m.State.Stack) != 0 {
		t.Errorf("stack after END = %v, want empty (spec §8)", m.State.Stack)
	}
}

func TestIfSkipsUntilEnd(t *testing.T) {
	m, _ := newTestMachine()
	// IF 0 (false) should skip the SET and the flag stays clear.
	cond := gacdb.Cond{
		push(0), op(gaccmd.OpIF),
		push(5), op(gaccmd.OpSET),
		op(gaccmd.OpENDIF),
	}
	out := m.Run(cond, false)
	if m.State.Flags[5] {
		t.Error("flag 5 should not be set: IF(0) should have skipped it")
	}
	if out.IfTrue {
		t.Error("IfTrue should be false when IF popped zero")
	}
}

func TestIfTrueRunsBody(t *testing.T) {
	m, _ := newTestMachine()
	cond := gacdb.Cond{
		push(1), op(gaccmd.OpIF),
		push(5), op(gaccmd.OpSET),
		op(gaccmd.OpENDIF),
	}
	out := m.Run(cond, false)
	if !m.State.Flags[5] {
		t.Error("flag 5 should be set")
	}
	if !out.IfTrue {
		t.Error("IfTrue should be true when IF popped non-zero")
	}
}

func TestGetRespectsWeightBudget(t *testing.T) {
	m, io := newTestMachine()
	m.State.MaxWeight = 10
	m.State.CurrentLoc = 100

	cond := gacdb.Cond{push(2), op(gaccmd.OpGET), op(gaccmd.OpEND)} // anvil weighs 250
	m.Run(cond, false)

	if m.State.Objects[2].Loc.IsCarried() {
		t.Error("anvil should not have been picked up")
	}
	if len(io.printed) == 0 {
		t.Fatal("expected a too-much message")
	}
}

func TestGetPicksUpPresentObject(t *testing.T) {
	m, _ := newTestMachine()
	m.State.CurrentLoc = 100

	cond := gacdb.Cond{push(1), op(gaccmd.OpGET), op(gaccmd.OpEND)}
	m.Run(cond, false)

	if !m.State.Objects[1].Loc.IsCarried() {
		t.Error("lamp should have been picked up")
	}
}

func TestGetAbsentObjectPrintsCantSee(t *testing.T) {
	m, io := newTestMachine()
	m.State.CurrentLoc = 101 // lamp is in 100, not here

	cond := gacdb.Cond{push(1), op(gaccmd.OpGET), op(gaccmd.OpEND)}
	m.Run(cond, false)

	if m.State.Objects[1].Loc.IsCarried() {
		t.Error("lamp should not have been picked up")
	}
	if len(io.printed) == 0 || io.printed[0] != "You can't see that here\n" {
		t.Errorf("printed = %v, want CantSee message", io.printed)
	}
}

func TestDropRequiresCarried(t *testing.T) {
	m, io := newTestMachine()
	cond := gacdb.Cond{push(1), op(gaccmd.OpDROP), op(gaccmd.OpEND)}
	m.Run(cond, false)
	if len(io.printed) == 0 || io.printed[0] != "You don't have that\n" {
		t.Errorf("printed = %v, want DontHave message", io.printed)
	}
}

func TestCounterIncrDecrSaturate(t *testing.T) {
	m, _ := newTestMachine()
	m.State.Counters[5] = 255
	cond := gacdb.Cond{push(5), op(gaccmd.OpINCR), op(gaccmd.OpEND)}
	m.Run(cond, false)
	if m.State.Counters[5] != 255 {
		t.Errorf("counter = %d, want saturated at 255", m.State.Counters[5])
	}

	m.State.Counters[6] = 0
	cond = gacdb.Cond{push(6), op(gaccmd.OpDECR), op(gaccmd.OpEND)}
	m.Run(cond, false)
	if m.State.Counters[6] != 0 {
		t.Errorf("counter = %d, want saturated at 0", m.State.Counters[6])
	}
}

func TestStackUnderflowAbortsScriptCleanly(t *testing.T) {
	m, _ := newTestMachine()
	// AND needs two values; the stack is empty.
	cond := gacdb.Cond{op(gaccmd.OpAND), push(99), op(gaccmd.OpEND)}
	out := m.Run(cond, false)
	if out.Finished {
		t.Error("underflow abort should not mark the session finished")
	}
	if len(m.State.Stack) != 0 {
		t.Errorf("stack after abort = %v, want empty", m.State.Stack)
	}
}

func TestOkaySignalsDone(t *testing.T) {
	m, _ := newTestMachine()
	m.DB.Messages[int(gaccore.MsgOkay)] = "OK."
	cond := gacdb.Cond{op(gaccmd.OpOKAY), op(gaccmd.OpEND)}
	out := m.Run(cond, false)
	if !out.Done {
		t.Error("OKAY should signal Done")
	}
}

func TestExitFinishesDespiteExitIfDoneFalse(t *testing.T) {
	m, _ := newTestMachine()
	cond := gacdb.Cond{op(gaccmd.OpEXIT), op(gaccmd.OpEND)}
	out := m.Run(cond, false)
	if !out.Finished {
		t.Error("EXIT should signal Finished")
	}
}

func TestWithPushesCarriedConstant(t *testing.T) {
	m, _ := newTestMachine()
	cond := gacdb.Cond{op(gaccmd.OpWITH), op(gaccmd.OpEND)}
	m.Run(cond, false)
	if len(m.State.Stack) != 1 || gaccore.Location(m.State.Stack[0]) != gaccore.Carried {
		t.Errorf("stack = %v, want [Carried]", m.State.Stack)
	}
}
