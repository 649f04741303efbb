// Package gacdb contains the types that model a decoded GAC game: the
// portable, serializable snapshot the decoder produces and the interpreter
// consumes. Nothing in this package depends on how the snapshot was
// produced or how it will be played — it is the handoff point of the
// pipeline (spec §5: no shared mutable state between decoder and
// interpreter).
package gacdb

import (
	"encoding/json"
	"fmt"

	"github.com/gac-toolkit/gac/gacdb/gaccmd"
)

// Model names the host computer model the database was extracted for.
// Only one is currently supported; the field exists so a future toolkit
// variant can be distinguished without breaking the format.
type Model string

// SPECTRUM is the only currently supported model.
const SPECTRUM Model = "SPECTRUM"

// Exit is a single room exit: a verb id and the destination room.
type Exit struct {
	// Dir is the verb id that triggers this exit.
	Dir byte `json:"dir"`

	// Dest is the destination room id.
	Dest uint16 `json:"dest"`
}

// Room models a single location.
type Room struct {
	// GraphicID references the Gfx record drawn for this room.
	GraphicID uint16 `json:"graphic_id"`

	// Exits lists the directions leading out of this room.
	Exits []Exit `json:"exits"`

	// Desc is the room's description text.
	Desc string `json:"desc"`
}

// Object models a single portable item.
type Object struct {
	// Weight the object contributes to the player's carry load.
	Weight byte `json:"weight"`

	// InitialLoc is where the object starts the game.
	InitialLoc uint16 `json:"initial_loc"`

	// Name is the object's printable name.
	Name string `json:"name"`
}

// Gfx is a sequence of drawing instructions for a single room's graphic.
type Gfx []gaccmd.GfxInstr

// MarshalJSON renders a Gfx as a list of [opcode-name, id, params...]
// tuples, mirroring the tuple-tagged instruction shape the original
// toolkit used, so a hand-inspected database file stays readable. The id
// is carried alongside the name (rather than name alone) so unmarshaling
// is unambiguous.
func (g Gfx) MarshalJSON() ([]byte, error) {
	out := make([][]any, len(g))
	for i, inst := range g {
		row := []any{inst.Op.Name, inst.Op.ID}
		for p := 0; p < inst.Op.Params; p++ {
			row = append(row, inst.Params[p])
		}
		out[i] = row
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the tuple form produced by MarshalJSON.
func (g *Gfx) UnmarshalJSON(data []byte) error {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	out := make(Gfx, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return fmt.Errorf("gacdb: gfx instruction %d: too few fields", i)
		}
		var id int64
		if err := json.Unmarshal(row[1], &id); err != nil {
			return fmt.Errorf("gacdb: gfx instruction %d: %w", i, err)
		}
		op := gaccmd.GfxOpByID(byte(id))
		if op == nil {
			return fmt.Errorf("gacdb: gfx instruction %d: unknown opcode id %d", i, id)
		}
		var inst gaccmd.GfxInstr
		inst.Op = op
		for p := 0; p < op.Params && p+2 < len(row); p++ {
			var v int64
			if err := json.Unmarshal(row[p+2], &v); err != nil {
				return fmt.Errorf("gacdb: gfx instruction %d: %w", i, err)
			}
			inst.Params[p] = byte(v)
		}
		out[i] = inst
	}
	*g = out
	return nil
}

// Cond is a linear, terminated condition-script: the disassembled form of
// one HPC/LPC/LC entry.
type Cond []gaccmd.Instr

// MarshalJSON renders a Cond as a list of tuples: ["PUSH", n] or
// ["OPNAME", id], mirroring the original toolkit's tuple-tagged bytecode.
// The id travels alongside the opcode name so round-tripping never has to
// guess between opcodes that share a display name (e.g. the two NOPs).
func (c Cond) MarshalJSON() ([]byte, error) {
	out := make([][]any, len(c))
	for i, instr := range c {
		if instr.IsPush {
			out[i] = []any{"PUSH", instr.Imm}
		} else {
			out[i] = []any{instr.Op.Name, instr.Op.ID}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the tuple form produced by MarshalJSON. Each row is
// ["PUSH", imm] or [opName, opID]; the first element is only ever used for
// readability, the second disambiguates.
func (c *Cond) UnmarshalJSON(data []byte) error {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	out := make(Cond, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return fmt.Errorf("gacdb: condition instruction %d: too few fields", i)
		}
		var name string
		if err := json.Unmarshal(row[0], &name); err != nil {
			return fmt.Errorf("gacdb: condition instruction %d: %w", i, err)
		}
		var n uint64
		if err := json.Unmarshal(row[1], &n); err != nil {
			return fmt.Errorf("gacdb: condition instruction %d: %w", i, err)
		}
		if name == "PUSH" {
			out[i] = gaccmd.Push(uint16(n))
		} else {
			out[i] = gaccmd.Instruction(gaccmd.OpByID(byte(n)))
		}
	}
	*c = out
	return nil
}

// Database is the complete, portable description of a decoded game: the
// handoff artifact between the decoder and the interpreter (spec §6,
// "Portable database format").
type Database struct {
	// Font is the 8x8 bitmap font, 96 characters x 8 bytes, front-padded
	// with 256 zero bytes for the unprintable/control range (see the
	// decoder's font extraction).
	Font []byte `json:"font"`

	// Verbs maps uppercase verb text to verb id.
	Verbs map[string]byte `json:"verbs"`

	// Nouns maps uppercase noun text (excluding pronouns) to noun id.
	Nouns map[string]byte `json:"nouns"`

	// Adverbs maps uppercase adverb text to adverb id.
	Adverbs map[string]byte `json:"adverbs"`

	// Pronouns lists the noun-table entries whose id was 255 (the pronoun
	// marker); these resolve to OldNoun at parse time instead of a fixed id.
	Pronouns []string `json:"pronouns"`

	// Messages maps message id to its text.
	Messages map[int]string `json:"messages"`

	// Objects maps object id to its definition.
	Objects map[byte]*Object `json:"objects"`

	// Locations maps room id to its definition.
	Locations map[uint16]*Room `json:"locations"`

	// HPCs is the global high-priority condition script.
	HPCs Cond `json:"hpcs"`

	// LPCs is the global low-priority condition script.
	LPCs Cond `json:"lpcs"`

	// LCs maps room id to that room's local condition script.
	LCs map[uint16]Cond `json:"lcs"`

	// Gfx maps graphic id to its drawing instructions.
	Gfx map[uint16]Gfx `json:"gfx"`

	// Model names the host computer model.
	Model Model `json:"model"`

	// Punctuation is the 8 possible phrase-ending glyphs (index 0 is
	// terminator/NUL, as a single-character string).
	Punctuation []string `json:"punctuation"`

	// Separators are additional sub-statement separator words (e.g. "then",
	// "and") beyond Punctuation.
	Separators []string `json:"separators"`

	// InitLoc is the room the player starts in.
	InitLoc uint16 `json:"init_loc"`

	// NoObjsMsg is printed in place of an empty object listing.
	NoObjsMsg string `json:"no_objs_msg"`
}

// validate rejects a malformed document the way the original __check_ddb
// did (spec §7, SchemaViolation), without replicating its exhaustive
// per-field shape check — Go's static struct decoding already rejects any
// field whose JSON shape doesn't match.
func (db *Database) validate() error {
	switch {
	case db.Verbs == nil:
		return fmt.Errorf("gacdb: missing field %q", "verbs")
	case db.Nouns == nil:
		return fmt.Errorf("gacdb: missing field %q", "nouns")
	case db.Messages == nil:
		return fmt.Errorf("gacdb: missing field %q", "messages")
	case db.Objects == nil:
		return fmt.Errorf("gacdb: missing field %q", "objects")
	case db.Locations == nil:
		return fmt.Errorf("gacdb: missing field %q", "locations")
	case db.Model != SPECTRUM:
		return fmt.Errorf("gacdb: unsupported model %q", db.Model)
	case db.InitLoc == 0:
		return fmt.Errorf("gacdb: init_loc is zero")
	}
	return nil
}

// Encode serializes the database as indented JSON, the portable format
// handed to the interpreter.
func (db *Database) Encode() ([]byte, error) {
	return json.MarshalIndent(db, "", "  ")
}

// Decode parses a portable database document. Go's encoding/json already
// round-trips integer map keys through their JSON string form, so — unlike
// the dynamically-typed original, which has to re-parse every stringified
// key by hand — loading a Database here never requires a second pass to
// turn room/object/message ids back into integers (Design Note: "a
// faithful port must never compare a room id as a string" is enforced by
// the type system itself).
func Decode(data []byte) (*Database, error) {
	db := new(Database)
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("gacdb: decode: %w", err)
	}
	if err := db.validate(); err != nil {
		return nil, err
	}
	return db, nil
}
