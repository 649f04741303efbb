package gacvm

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"

	"github.com/gac-toolkit/gac/gacdb"
	"github.com/gac-toolkit/gac/gacdb/gaccmd"
	"github.com/gac-toolkit/gac/gacdb/gaccore"
	"github.com/gac-toolkit/gac/gacio"
)

// Machine is the condition-script interpreter bound to one decoded game
// and one session's runtime state (spec §4.6). It is the gacvm analog of
// the teacher's repdecoder.Decoder: a small stateful engine the driver
// (gacvm.Driver) steps turn by turn.
type Machine struct {
	DB    *gacdb.Database
	State *State
	IO    gacio.Facade
	Rand  *rand.Rand
	Log   *log.Logger
}

// NewMachine builds a Machine over a freshly decoded game. rng may be nil,
// in which case a new source seeded with 1 is used.
func NewMachine(db *gacdb.Database, io gacio.Facade, rng *rand.Rand) *Machine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Machine{
		DB:    db,
		State: NewState(db),
		IO:    io,
		Rand:  rng,
		Log:   log.Default(),
	}
}

// Outcome reports how one condition-script run ended (spec §4.6).
type Outcome struct {
	// Finished means EXIT ran, or QUIT ran and was answered
	// affirmatively: the whole session should end.
	Finished bool

	// Done means OKAY or WAIT ran: a script flagged with exitIfDone
	// should stop the turn's remaining scripts.
	Done bool

	// IfTrue means at least one IF in this script popped a non-zero
	// value (used by the driver to decide whether to print the
	// "don't understand" / "can't do that" fallback).
	IfTrue bool
}

// Run executes cond from the start, resetting the evaluation stack first
// (spec §3 "stack depth is script-local"). If exitIfDone is true,
// execution stops as soon as a prior opcode has set Done — except that a
// skip-mode scan still only ever treats END specially, exactly like the
// source's `while pos < len(cond) and not (done and exit_if_done)` guard.
func (m *Machine) Run(cond gacdb.Cond, exitIfDone bool) Outcome {
	m.State.Stack = m.State.Stack[:0]
	skip := false
	var out Outcome

	for pos := 0; pos < len(cond) && !(out.Done && exitIfDone); pos++ {
		instr := cond[pos]

		if skip && !(!instr.IsPush && instr.Op.ID == gaccmd.OpENDIF) {
			continue
		}

		if instr.IsPush {
			m.State.push(instr.Imm)
			continue
		}

		switch instr.Op.ID {
		case gaccmd.OpEND: // OP0 in the source: end-of-script sentinel, no-op
		case gaccmd.OpAND:
			if !m.binary(func(s1, s0 uint16) uint16 { return s1 & s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpOR:
			if !m.binary(func(s1, s0 uint16) uint16 { return s1 | s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpXOR:
			if !m.binary(func(s1, s0 uint16) uint16 { return s1 ^ s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpNOT:
			if s0, ok := m.State.pop(); ok {
				if s0 == 0 {
					m.State.push(1)
				} else {
					m.State.push(0)
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpHOLD:
			if s0, ok := m.State.pop(); ok {
				m.IO.WaitKeyOrTimeout(int(s0))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpGET:
			if !m.opGet() {
				return m.abort(out)
			}
		case gaccmd.OpDROP:
			if !m.opDrop() {
				return m.abort(out)
			}
		case gaccmd.OpSWAP:
			if !m.opSwap() {
				return m.abort(out)
			}
		case gaccmd.OpTO:
			if !m.opTo() {
				return m.abort(out)
			}
		case gaccmd.OpOBJ:
			if o, ok := m.State.pop(); ok {
				if obj := m.State.Objects[byte(o)]; obj != nil {
					m.IO.Print(obj.Name + "\n")
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpSET:
			if f, ok := m.State.pop(); ok {
				if int(f) < len(m.State.Flags) {
					m.State.Flags[f] = true
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpRESET:
			if f, ok := m.State.pop(); ok {
				if int(f) < len(m.State.Flags) {
					m.State.Flags[f] = false
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpSETQ:
			if !m.opFlagQuery(true) {
				return m.abort(out)
			}
		case gaccmd.OpRESQ:
			if !m.opFlagQuery(false) {
				return m.abort(out)
			}
		case gaccmd.OpCSET:
			if !m.opCSet() {
				return m.abort(out)
			}
		case gaccmd.OpCTR:
			if s0, ok := m.State.pop(); ok {
				var v byte
				if int(s0) < len(m.State.Counters) {
					v = m.State.Counters[s0]
				}
				m.State.push(uint16(v))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpINCR:
			if s0, ok := m.State.pop(); ok {
				if int(s0) < len(m.State.Counters) && m.State.Counters[s0] < 255 {
					m.State.Counters[s0]++
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpDECR:
			if s0, ok := m.State.pop(); ok {
				if int(s0) < len(m.State.Counters) && m.State.Counters[s0] > 0 {
					m.State.Counters[s0]--
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpEQUQ:
			if !m.opCounterEq() {
				return m.abort(out)
			}
		case gaccmd.OpDESC:
			if r, ok := m.State.pop(); ok {
				if _, exists := m.DB.Locations[r]; exists {
					m.displayRoom(gaccore.Location(r))
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpLOOK:
			if _, exists := m.DB.Locations[uint16(m.State.CurrentLoc)]; exists {
				m.displayRoom(m.State.CurrentLoc)
			}
		case gaccmd.OpMESS:
			if msg, ok := m.State.pop(); ok {
				if text, exists := m.DB.Messages[int(msg)]; exists {
					m.IO.Print(text)
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpPRIN:
			if v, ok := m.State.pop(); ok {
				m.IO.Print(fmt.Sprintf("%d", v))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpRAND:
			if n, ok := m.State.pop(); ok {
				m.State.push(uint16(m.Rand.Intn(int(n) + 1)))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpLT:
			if !m.compare(func(s1, s0 uint16) bool { return s1 < s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpGT:
			if !m.compare(func(s1, s0 uint16) bool { return s1 > s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpEQ:
			if !m.compare(func(s1, s0 uint16) bool { return s1 == s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpSAVE:
			if err := m.save(); err != nil {
				m.Log.Printf("gacvm: save failed: %v", err)
			}
		case gaccmd.OpLOAD:
			if err := m.load(); err != nil {
				m.Log.Printf("gacvm: load failed: %v", err)
			}
		case gaccmd.OpHERE:
			if !m.objectPredicate(func(o *RuntimeObject) bool {
				return o.Loc == m.State.CurrentLoc
			}) {
				return m.abort(out)
			}
		case gaccmd.OpCARR:
			if !m.objectPredicate(func(o *RuntimeObject) bool {
				return o.Loc.IsCarried()
			}) {
				return m.abort(out)
			}
		case gaccmd.OpAVAIL:
			if !m.objectPredicate(func(o *RuntimeObject) bool {
				return o.Loc == m.State.CurrentLoc || o.Loc.IsCarried()
			}) {
				return m.abort(out)
			}
		case gaccmd.OpADD:
			if !m.binary(func(s1, s0 uint16) uint16 { return s1 + s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpSUB:
			if !m.binary(func(s1, s0 uint16) uint16 { return s1 - s0 }) {
				return m.abort(out)
			}
		case gaccmd.OpTURN:
			m.State.push(uint16(m.State.Counters[CounterTurnHigh])*256 + uint16(m.State.Counters[CounterTurnLow]))
		case gaccmd.OpAT:
			if r, ok := m.State.pop(); ok {
				m.pushBool(gaccore.Location(r) == m.State.CurrentLoc)
			} else {
				return m.abort(out)
			}
		case gaccmd.OpNOP28, gaccmd.OpNOP29:
			// no-op opcodes the disassembly preserves but the VM ignores
		case gaccmd.OpOKAY:
			if text, exists := m.DB.Messages[int(gaccore.MsgOkay)]; exists {
				m.IO.Print(text + "\n")
			}
			out.Done = true
		case gaccmd.OpWAIT:
			out.Done = true
		case gaccmd.OpQUIT:
			if text, exists := m.DB.Messages[int(gaccore.MsgYouSure)]; exists {
				m.IO.Print(text)
			}
			if affirmative(m.IO.Input()) {
				out.Finished = true
			}
		case gaccmd.OpEXIT:
			out.Finished = true
		case gaccmd.OpROOM:
			m.State.push(uint16(m.State.CurrentLoc))
		case gaccmd.OpNOUN:
			if r, ok := m.State.pop(); ok {
				m.pushBool(r == m.State.Noun1 || r == m.State.Noun2)
			} else {
				return m.abort(out)
			}
		case gaccmd.OpVERB:
			if r, ok := m.State.pop(); ok {
				m.pushBool(r == m.State.Verb)
			} else {
				return m.abort(out)
			}
		case gaccmd.OpADVE:
			if r, ok := m.State.pop(); ok {
				m.pushBool(r == m.State.Adverb)
			} else {
				return m.abort(out)
			}
		case gaccmd.OpGOTO:
			if r, ok := m.State.pop(); ok {
				m.State.CurrentLoc = gaccore.Location(r)
				if _, exists := m.DB.Locations[r]; exists {
					m.displayRoom(m.State.CurrentLoc)
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpNO1:
			m.State.push(m.State.Noun1)
		case gaccmd.OpNO2:
			m.State.push(m.State.Noun2)
		case gaccmd.OpVBNO:
			m.State.push(m.State.Verb)
		case gaccmd.OpLIST:
			if r, ok := m.State.pop(); ok {
				m.opList(gaccore.Location(r))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpCONN:
			if d, ok := m.State.pop(); ok {
				m.State.push(m.opConn(byte(d)))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpWEIG:
			if s0, ok := m.State.pop(); ok {
				var w byte
				if obj := m.State.Objects[byte(s0)]; obj != nil {
					w = obj.Weight
				}
				m.State.push(uint16(w))
			} else {
				return m.abort(out)
			}
		case gaccmd.OpWITH:
			m.State.push(uint16(gaccore.Carried))
		case gaccmd.OpSTREN:
			if s0, ok := m.State.pop(); ok {
				m.State.MaxWeight = byte(s0)
			} else {
				return m.abort(out)
			}
		case gaccmd.OpLF:
			m.IO.Print("\n")
		case gaccmd.OpENDIF:
			skip = false
			m.State.Stack = m.State.Stack[:0]
		case gaccmd.OpIF:
			if s0, ok := m.State.pop(); ok {
				if s0 == 0 {
					skip = true
				} else {
					out.IfTrue = true
					skip = false
				}
			} else {
				return m.abort(out)
			}
		case gaccmd.OpPICT, gaccmd.OpTEXT:
			// graphics-mode switches: stubbed, no front-end to drive (spec §9)
		default:
			m.Log.Printf("gacvm: unknown opcode %s (0x%02x)", instr.Op.Name, instr.Op.ID)
		}
	}

	return out
}

// abort stops the current script the way an interpreter with real memory
// safety must: the source leaves stack underflow as undefined behaviour,
// so this treats it as an immediate, logged halt of just this script
// (spec §4.6 "Stack discipline").
func (m *Machine) abort(out Outcome) Outcome {
	m.Log.Printf("gacvm: stack underflow, aborting script")
	return out
}

func (m *Machine) binary(f func(s1, s0 uint16) uint16) bool {
	s0, ok0 := m.State.pop()
	if !ok0 {
		return false
	}
	s1, ok1 := m.State.pop()
	if !ok1 {
		return false
	}
	m.State.push(f(s1, s0))
	return true
}

func (m *Machine) compare(f func(s1, s0 uint16) bool) bool {
	s0, ok0 := m.State.pop()
	if !ok0 {
		return false
	}
	s1, ok1 := m.State.pop()
	if !ok1 {
		return false
	}
	m.pushBool(f(s1, s0))
	return true
}

func (m *Machine) pushBool(b bool) {
	if b {
		m.State.push(1)
	} else {
		m.State.push(0)
	}
}

func (m *Machine) objectPredicate(f func(*RuntimeObject) bool) bool {
	s0, ok := m.State.pop()
	if !ok {
		return false
	}
	obj := m.State.Objects[byte(s0)]
	m.pushBool(obj != nil && f(obj))
	return true
}

func (m *Machine) opFlagQuery(setMeansOne bool) bool {
	f, ok := m.State.pop()
	if !ok {
		return false
	}
	if int(f) >= len(m.State.Flags) {
		m.pushBool(!setMeansOne)
		return true
	}
	m.pushBool(m.State.Flags[f] == setMeansOne)
	return true
}

func (m *Machine) opCSet() bool {
	s1, ok1 := m.State.pop()
	if !ok1 {
		return false
	}
	s0, ok0 := m.State.pop()
	if !ok0 {
		return false
	}
	if int(s0) < len(m.State.Counters) {
		m.State.Counters[s0] = byte(s1)
	}
	return true
}

func (m *Machine) opCounterEq() bool {
	s1, ok1 := m.State.pop()
	if !ok1 {
		return false
	}
	s0, ok0 := m.State.pop()
	if !ok0 {
		return false
	}
	if int(s0) >= len(m.State.Counters) {
		m.pushBool(false)
		return true
	}
	m.pushBool(uint16(m.State.Counters[s0]) == s1)
	return true
}

func (m *Machine) opGet() bool {
	s0, ok := m.State.pop()
	if !ok {
		return false
	}
	obj := m.State.Objects[byte(s0)]
	if obj == nil {
		return true
	}
	if obj.Loc != m.State.CurrentLoc {
		m.printMessage(gaccore.MsgCantSee, true)
		return true
	}
	var carried uint16
	for _, o := range m.State.Objects {
		if o.Loc.IsCarried() {
			carried += uint16(o.Weight)
		}
	}
	if carried+uint16(obj.Weight) > uint16(m.State.MaxWeight) {
		m.printMessage(gaccore.MsgTooMuch, true)
		return true
	}
	obj.Loc = gaccore.Carried
	return true
}

func (m *Machine) opDrop() bool {
	s0, ok := m.State.pop()
	if !ok {
		return false
	}
	obj := m.State.Objects[byte(s0)]
	if obj == nil || !obj.Loc.IsCarried() {
		m.printMessage(gaccore.MsgDontHave, true)
		return true
	}
	obj.Loc = m.State.CurrentLoc
	return true
}

func (m *Machine) opSwap() bool {
	s0, ok0 := m.State.pop()
	if !ok0 {
		return false
	}
	s1, ok1 := m.State.pop()
	if !ok1 {
		return false
	}
	o0, o1 := m.State.Objects[byte(s0)], m.State.Objects[byte(s1)]
	if o0 != nil && o1 != nil {
		o0.Loc, o1.Loc = o1.Loc, o0.Loc
	}
	return true
}

func (m *Machine) opTo() bool {
	r, okR := m.State.pop()
	if !okR {
		return false
	}
	o, okO := m.State.pop()
	if !okO {
		return false
	}
	if obj := m.State.Objects[byte(o)]; obj != nil {
		obj.Loc = gaccore.Location(r)
	}
	return true
}

func (m *Machine) opList(room gaccore.Location) {
	for _, id := range m.sortedObjectIDs() {
		if o := m.State.Objects[id]; o.Loc == room {
			m.IO.Print(o.Name + "\n")
		}
	}
}

func (m *Machine) opConn(dir byte) uint16 {
	room, exists := m.DB.Locations[uint16(m.State.CurrentLoc)]
	if !exists {
		return 0
	}
	for _, exit := range room.Exits {
		if exit.Dir == dir {
			return exit.Dest
		}
	}
	return 0
}

func (m *Machine) printMessage(id byte, trailingNewline bool) {
	text, exists := m.DB.Messages[int(id)]
	if !exists {
		return
	}
	if trailingNewline {
		text += "\n"
	}
	m.IO.Print(text)
}

func affirmative(s string) bool {
	switch strings.TrimSpace(upper.String(s)) {
	case "YES", "Y", "SI", "S":
		return true
	}
	return false
}

// sortedObjectIDs gives LIST and displayRoom's item listing a stable
// iteration order; Go map iteration is randomized and the source's dict
// insertion order has no equivalent to preserve otherwise.
func (m *Machine) sortedObjectIDs() []byte {
	ids := make([]byte, 0, len(m.State.Objects))
	for id := range m.State.Objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// displayRoom prints a room's description and its visible contents
// (spec §4.7 step 1, grounded in the source's __display_room): nothing is
// shown but the darkness message unless the lighting or lamp flag is set.
func (m *Machine) displayRoom(loc gaccore.Location) {
	if !m.State.Flags[FlagLighting] && !m.State.Flags[FlagLamp] {
		m.printMessage(gaccore.MsgItsDark, false)
		return
	}
	room, exists := m.DB.Locations[uint16(loc)]
	if !exists {
		return
	}
	m.IO.Print(room.Desc)

	var here []string
	for _, id := range m.sortedObjectIDs() {
		if o := m.State.Objects[id]; o.Loc == loc {
			here = append(here, o.Name)
		}
	}
	if len(here) > 0 {
		text, _ := m.DB.Messages[int(gaccore.MsgObjHere)]
		line := text
		for i, name := range here {
			if i > 0 {
				line += ","
			}
			line += name
		}
		m.IO.Print(line)
	}
}
