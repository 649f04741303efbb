package gacvm

import (
	"fmt"

	"github.com/gac-toolkit/gac/gacdb/gaccore"
)

// displayWidth is the fixed line width the source configures
// unconditionally ("For now...", per the source's start_adventure).
const displayWidth = 32

// Driver orchestrates the per-turn sequence (spec §4.7): HPC, room
// display/movement, LC, LPC, then the unresolved-input fallback message.
// It is the gacvm analog of the teacher's top-level replay-walking loop:
// a thin sequencer around Machine.Run.
type Driver struct {
	M *Machine

	statements []string
	newRoom    bool
}

// NewDriver builds a Driver ready for RunAdventure, having already
// applied the fixed display width and the database's punctuation (as
// line-break characters) to the façade and validated init_loc (spec §4.7 "Initial state", §7 BadInitialLocation).
func NewDriver(m *Machine) (*Driver, error) {
	if m.DB.InitLoc == 0 {
		return nil, fmt.Errorf("gacvm: init_loc is zero")
	}
	m.IO.SetWidth(displayWidth)
	m.IO.SetSeparators(m.DB.Punctuation)
	return &Driver{M: m, newRoom: true}, nil
}

// RunAdventure runs turns until the game ends (QUIT confirmed, or EXIT in
// any of the three scripts).
func (d *Driver) RunAdventure() {
	for {
		if d.newRoom {
			d.M.displayRoom(d.M.State.CurrentLoc)
			d.newRoom = false
		}

		advanceTurnCounter(d.M.State)

		hpc := d.M.Run(d.M.DB.HPCs, false)
		if hpc.Finished {
			return
		}

		if len(d.statements) == 0 {
			d.promptAndSplit()
		}

		if finished := d.consumeStatement(); finished {
			return
		}
		if d.newRoom {
			continue
		}

		ifTrue := false

		if lc, ok := d.M.DB.LCs[uint16(d.M.State.CurrentLoc)]; ok {
			out := d.M.Run(lc, true)
			if out.Finished {
				return
			}
			if d.newRoom || out.Done {
				continue
			}
			ifTrue = ifTrue || out.IfTrue
		}

		lpc := d.M.Run(d.M.DB.LPCs, true)
		if lpc.Finished {
			return
		}
		if d.newRoom || lpc.Done {
			continue
		}
		ifTrue = ifTrue || lpc.IfTrue

		if !ifTrue {
			if d.M.State.Verb == 0 {
				d.M.printMessage(gaccore.MsgNotUnderstand, true)
			} else {
				d.M.printMessage(gaccore.MsgCantDo, true)
			}
		}
	}
}

// advanceTurnCounter increments the low turn-counter byte, rolling into
// the high byte once it saturates, both saturating at 255 overall (spec
// §4.7 step 2, §8 "counters[126]+counters[127]*256 strictly increases
// until both saturate").
func advanceTurnCounter(st *State) {
	if st.Counters[CounterTurnLow] < 255 {
		st.Counters[CounterTurnLow]++
	} else if st.Counters[CounterTurnHigh] < 255 {
		st.Counters[CounterTurnLow] = 0
		st.Counters[CounterTurnHigh]++
	}
}

// promptAndSplit blocks for a non-empty input line, then splits it into
// pending statements and resets old_noun (spec §4.7 step 4): a fresh line
// of input severs pronoun memory from whatever the last line referred to.
func (d *Driver) promptAndSplit() {
	var line string
	for line == "" {
		d.M.IO.Print("\n" + d.M.DB.Messages[int(gaccore.MsgAsk)])
		line = d.M.IO.Input()
	}
	d.statements = SplitStatements(d.M.DB, line)
	d.M.State.OldNoun = 0
}

// consumeStatement pops and parses exactly one statement that fills a
// parser slot (skipping any that fill nothing), checks it against the
// current room's exits, and stops — whether or not that statement moved
// the player (spec §4.7 step 5, grounded in the source's
// `if new_room or valid_input: break`, which is unconditional once
// valid_input is true). Movement itself is reported through d.newRoom,
// not a return value, since the statement loop above it ("while len(words)
// > 0") is not re-entered once a slot-filling statement is consumed.
func (d *Driver) consumeStatement() (finished bool) {
	for len(d.statements) > 0 {
		stmt := d.statements[0]
		d.statements = d.statements[1:]

		anySlot, quit := Parse(d.M.DB, d.M.State, stmt)
		if quit {
			return true
		}
		if !anySlot {
			continue
		}

		if room, ok := d.M.DB.Locations[uint16(d.M.State.CurrentLoc)]; ok {
			for _, exit := range room.Exits {
				if uint16(exit.Dir) == d.M.State.Verb {
					d.M.State.CurrentLoc = gaccore.Location(exit.Dest)
					d.newRoom = true
					break
				}
			}
		}
		return false
	}
	return false
}
