// Package gacvm is the condition-script interpreter: a stack machine
// executing the three condition scripts per turn against a small mutable
// world state (spec §3 "Machine state", §4.6 "Condition VM").
package gacvm

import (
	"github.com/gac-toolkit/gac/gacdb"
	"github.com/gac-toolkit/gac/gacdb/gaccore"
)

// Fixed flag indices the source reserves (spec §3, DatabaseGAC class
// constants FLAG_ROOM_DESC/LIGHTING_FLAG/LAMP_FLAG/SCORE_DIS_FLAG).
const (
	FlagRoomDesc = 0
	FlagLighting = 1
	FlagLamp     = 2
	FlagScoreDis = 3
)

// Fixed counter indices that together hold the 16-bit turn counter.
const (
	CounterTurnLow  = 126
	CounterTurnHigh = 127
	CounterScore    = 0
)

// defaultMaxWeight is the carry budget a session starts with when the
// database does not otherwise constrain it (spec §3).
const defaultMaxWeight = 255

// RuntimeObject is one object's mutable session state: its static
// definition plus the location the VM has moved it to.
type RuntimeObject struct {
	Weight byte
	Name   string
	Loc    gaccore.Location
}

// State is the interpreter's entire mutable world (spec §3 "Machine
// state (runtime)"). It is built once by NewState and then owned
// exclusively by the turn driver and the VM.
type State struct {
	Counters [128]byte
	Flags    [256]bool

	CurrentLoc gaccore.Location

	Verb, Adverb, Noun1, Noun2 uint16
	OldNoun                    uint16

	MaxWeight byte
	Objects   map[byte]*RuntimeObject

	Stack []uint16
}

// NewState builds the initial runtime state for a freshly decoded
// database (spec §4.7 "Initial state"): player placed at init_loc, the
// light flag set, every object at its initial location, counters and
// stack cleared.
func NewState(db *gacdb.Database) *State {
	st := &State{
		CurrentLoc: gaccore.Location(db.InitLoc),
		MaxWeight:  defaultMaxWeight,
		Objects:    make(map[byte]*RuntimeObject, len(db.Objects)),
	}
	st.Flags[FlagLighting] = true
	for id, obj := range db.Objects {
		st.Objects[id] = &RuntimeObject{
			Weight: obj.Weight,
			Name:   obj.Name,
			Loc:    gaccore.Location(obj.InitialLoc),
		}
	}
	return st
}

// push appends a value to the evaluation stack.
func (st *State) push(v uint16) {
	st.Stack = append(st.Stack, v)
}

// pop removes and returns the top of the evaluation stack. ok is false on
// underflow, which callers treat as a per-script abort (spec §4.6 "Stack
// discipline").
func (st *State) pop() (v uint16, ok bool) {
	n := len(st.Stack)
	if n == 0 {
		return 0, false
	}
	v = st.Stack[n-1]
	st.Stack = st.Stack[:n-1]
	return v, true
}
