// Package gaccmd models the condition-script bytecode: the opcode
// descriptors and the tagged instruction type the disassembler (gacdecoder)
// produces and the interpreter (gacvm) executes.
package gaccmd

import "github.com/gac-toolkit/gac/gacdb/gaccore"

// Opcode IDs, as they appear in condition script bytes (low 6 bits, after
// the continuation bit has been stripped).
const (
	OpEND   byte = 0x00
	OpAND   byte = 0x01
	OpOR    byte = 0x02
	OpNOT   byte = 0x03
	OpXOR   byte = 0x04
	OpHOLD  byte = 0x05
	OpGET   byte = 0x06
	OpDROP  byte = 0x07
	OpSWAP  byte = 0x08
	OpTO    byte = 0x09
	OpOBJ   byte = 0x0A
	OpSET   byte = 0x0B
	OpRESET byte = 0x0C
	OpSETQ  byte = 0x0D // SET?
	OpRESQ  byte = 0x0E // RESET?
	OpCSET  byte = 0x0F
	OpCTR   byte = 0x10
	OpDECR  byte = 0x11
	OpINCR  byte = 0x12
	OpEQUQ  byte = 0x13 // EQU?
	OpDESC  byte = 0x14
	OpLOOK  byte = 0x15
	OpMESS  byte = 0x16
	OpPRIN  byte = 0x17
	OpRAND  byte = 0x18
	OpLT    byte = 0x19
	OpGT    byte = 0x1A
	OpEQ    byte = 0x1B
	OpSAVE  byte = 0x1C
	OpLOAD  byte = 0x1D
	OpHERE  byte = 0x1E
	OpCARR  byte = 0x1F
	OpAVAIL byte = 0x20
	OpADD   byte = 0x21
	OpSUB   byte = 0x22
	OpTURN  byte = 0x23
	OpAT    byte = 0x24
	OpBRING byte = 0x25
	OpFIND  byte = 0x26
	OpIN    byte = 0x27
	OpNOP28 byte = 0x28
	OpNOP29 byte = 0x29
	OpOKAY  byte = 0x2A
	OpWAIT  byte = 0x2B
	OpQUIT  byte = 0x2C
	OpEXIT  byte = 0x2D
	OpROOM  byte = 0x2E
	OpNOUN  byte = 0x2F
	OpVERB  byte = 0x30
	OpADVE  byte = 0x31
	OpGOTO  byte = 0x32
	OpNO1   byte = 0x33
	OpNO2   byte = 0x34
	OpVBNO  byte = 0x35
	OpLIST  byte = 0x36
	OpPICT  byte = 0x37
	OpTEXT  byte = 0x38
	OpCONN  byte = 0x39
	OpWEIG  byte = 0x3A
	OpWITH  byte = 0x3B
	OpSTREN byte = 0x3C
	OpLF    byte = 0x3D
	OpIF    byte = 0x3E
	OpENDIF byte = 0x3F
)

// Op describes one condition-script opcode.
type Op struct {
	gaccore.Enum

	// ID as it appears (masked) in condition script bytes.
	ID byte
}

// e is a helper to build an Enum from a literal name.
func e(name string) gaccore.Enum {
	return gaccore.Enum{Name: name}
}

// Ops is an enumeration of the possible condition-script opcodes, listed in
// ID order the way the teacher lists contiguous small enumerations
// (repcmd.Latencies). OpByID looks them up through a map built from it.
var Ops = []*Op{
	{e("END-of-script"), OpEND},
	{e("AND"), OpAND},
	{e("OR"), OpOR},
	{e("NOT"), OpNOT},
	{e("XOR"), OpXOR},
	{e("HOLD"), OpHOLD},
	{e("GET"), OpGET},
	{e("DROP"), OpDROP},
	{e("SWAP"), OpSWAP},
	{e("TO"), OpTO},
	{e("OBJ"), OpOBJ},
	{e("SET"), OpSET},
	{e("RESET"), OpRESET},
	{e("SET?"), OpSETQ},
	{e("RESET?"), OpRESQ},
	{e("CSET"), OpCSET},
	{e("CTR"), OpCTR},
	{e("DECR"), OpDECR},
	{e("INCR"), OpINCR},
	{e("EQU?"), OpEQUQ},
	{e("DESC"), OpDESC},
	{e("LOOK"), OpLOOK},
	{e("MESS"), OpMESS},
	{e("PRIN"), OpPRIN},
	{e("RAND"), OpRAND},
	{e("LT"), OpLT},
	{e("GT"), OpGT},
	{e("EQ"), OpEQ},
	{e("SAVE"), OpSAVE},
	{e("LOAD"), OpLOAD},
	{e("HERE"), OpHERE},
	{e("CARR"), OpCARR},
	{e("AVAIL"), OpAVAIL},
	{e("ADD"), OpADD},
	{e("SUB"), OpSUB},
	{e("TURN"), OpTURN},
	{e("AT"), OpAT},
	{e("BRING"), OpBRING},
	{e("FIND"), OpFIND},
	{e("IN"), OpIN},
	{e("NOP"), OpNOP28},
	{e("NOP"), OpNOP29},
	{e("OKAY"), OpOKAY},
	{e("WAIT"), OpWAIT},
	{e("QUIT"), OpQUIT},
	{e("EXIT"), OpEXIT},
	{e("ROOM"), OpROOM},
	{e("NOUN"), OpNOUN},
	{e("VERB"), OpVERB},
	{e("ADVE"), OpADVE},
	{e("GOTO"), OpGOTO},
	{e("NO1"), OpNO1},
	{e("NO2"), OpNO2},
	{e("VBNO"), OpVBNO},
	{e("LIST"), OpLIST},
	{e("PICT"), OpPICT},
	{e("TEXT"), OpTEXT},
	{e("CONN"), OpCONN},
	{e("WEIG"), OpWEIG},
	{e("WITH"), OpWITH},
	{e("STREN"), OpSTREN},
	{e("LF"), OpLF},
	{e("IF"), OpIF},
	{e("END"), OpENDIF},
}

// opIDOp maps from opcode ID to Op.
var opIDOp = map[byte]*Op{}

func init() {
	for _, o := range Ops {
		opIDOp[o.ID] = o
	}
}

// OpByID returns the Op for a given ID. A new Op with an Unknown name is
// returned if one is not found for the given ID (preserving the unknown ID);
// this is what lets the disassembler keep going on an opcode byte the
// toolkit variant never emitted (§7 UnknownOpcode).
func OpByID(id byte) *Op {
	if o := opIDOp[id]; o != nil {
		return o
	}
	return &Op{gaccore.UnknownEnum(id), id}
}
