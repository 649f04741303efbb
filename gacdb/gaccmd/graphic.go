package gaccmd

import "github.com/gac-toolkit/gac/gacdb/gaccore"

// Graphic opcode IDs, as used in room graphic records.
const (
	GfxBORDER byte = 0x01
	GfxPLOT   byte = 0x02
	GfxELLIPS byte = 0x03
	GfxFILL   byte = 0x04
	GfxBGFILL byte = 0x05
	GfxSHADE  byte = 0x06
	GfxCALL   byte = 0x07
	GfxRECT   byte = 0x08
	GfxLINE   byte = 0x09
	GfxINK    byte = 0x10
	GfxPAPER  byte = 0x11
	GfxBRIGHT byte = 0x12
	GfxFLASH  byte = 0x13
)

// GfxOp describes a graphic opcode, including the fixed parameter width
// (in bytes) that follows the opcode byte in the on-disk record.
type GfxOp struct {
	gaccore.Enum

	// ID as it appears in graphic records.
	ID byte

	// Params is the number of parameter bytes following the opcode byte.
	Params int
}

// GfxOps is an enumeration of the possible graphic opcodes.
var GfxOps = []*GfxOp{
	{e("BORDER"), GfxBORDER, 1},
	{e("PLOT"), GfxPLOT, 2},
	{e("ELLIPSE"), GfxELLIPS, 4},
	{e("FILL"), GfxFILL, 2},
	{e("BGFILL"), GfxBGFILL, 2},
	{e("SHADE"), GfxSHADE, 2},
	{e("CALL"), GfxCALL, 2},
	{e("RECT"), GfxRECT, 4},
	{e("LINE"), GfxLINE, 4},
	{e("INK"), GfxINK, 1},
	{e("PAPER"), GfxPAPER, 1},
	{e("BRIGHT"), GfxBRIGHT, 1},
	{e("FLASH"), GfxFLASH, 1},
}

var gfxIDOp = map[byte]*GfxOp{}

func init() {
	for _, g := range GfxOps {
		gfxIDOp[g.ID] = g
	}
}

// GfxOpByID returns the GfxOp for a given ID, or nil if ID names no known
// graphic opcode (the extractor then stops the record, as the source does).
func GfxOpByID(id byte) *GfxOp {
	return gfxIDOp[id]
}

// GfxInstr is a single decoded graphic instruction.
type GfxInstr struct {
	Op     *GfxOp
	Params [4]byte
}

// CallAddr returns the little-endian address encoded by a CALL instruction's
// first two parameter bytes.
func (gi GfxInstr) CallAddr() uint16 {
	return uint16(gi.Params[0]) | uint16(gi.Params[1])<<8
}
