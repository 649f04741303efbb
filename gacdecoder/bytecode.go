package gacdecoder

import (
	"github.com/gac-toolkit/gac/gacdb/gaccmd"
	"github.com/gac-toolkit/gac/gacdecoder/memimage"
)

// disasmCond disassembles one condition script starting at addr (spec
// §4.4, grounded in deGAC.get_cond). It returns the decoded instructions
// and the address immediately after the script's terminating END byte, so
// callers walking several back-to-back scripts (HPCs/LPCs) can chain the
// return address into the next call.
//
// Every byte with the high bit set is a PUSH: the low 7 bits of that byte
// become the high bits of a 15-bit immediate, and the following byte
// supplies the low 8 bits. Any other byte is an opcode, masked to its low
// 6 bits before lookup. OpEND (0x00) terminates the script immediately,
// the same way a lone length-prefix terminator byte of 0 does.
func disasmCond(img *memimage.Image, addr uint16) ([]gaccmd.Instr, uint16) {
	var out []gaccmd.Instr
	for {
		b := img.Read8(addr)
		if b == 0 {
			return out, addr + 1
		}
		if b&0x80 != 0 {
			lo := img.Read8(addr + 1)
			imm := uint16(b&0x7F)<<8 | uint16(lo)
			out = append(out, gaccmd.Push(imm))
			addr += 2
			continue
		}
		addr++
		op := gaccmd.OpByID(b & 0x3F)
		out = append(out, gaccmd.Instruction(op))
		if op.ID == gaccmd.OpEND {
			return out, addr
		}
	}
}
