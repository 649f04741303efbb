package gacdecoder

import (
	"github.com/gac-toolkit/gac/gacdb"
	"github.com/gac-toolkit/gac/gacdb/gaccmd"
	"github.com/gac-toolkit/gac/gacdecoder/memimage"
)

// fontGlyphCount is the number of printable glyphs a custom font supplies;
// the decoded font is front-padded with the unprintable/control range so
// indexing by ASCII code works directly (spec §4.3, "font table").
const fontGlyphCount = 96

// extractFont recovers the custom 8x8 bitmap font, or nil if the game
// uses the ROM font (grounded in deGAC.get_font).
func extractFont(img *memimage.Image) []byte {
	base := img.Read16(fontPointerAddr) + 256
	if base < fontROMThreshold {
		return nil
	}
	glyphs := img.ReadBytes(base, fontGlyphCount*8)
	font := make([]byte, 32*8+len(glyphs))
	copy(font[32*8:], glyphs)
	return font
}

// extractWords walks a vocabulary table: repeated (id byte, token-index
// word) pairs terminated by an id of zero (grounded in deGAC.get_words).
// It returns words keyed by their decoded text, alongside every entry
// whose id was the pronoun marker (255) collected separately.
func extractWords(img *memimage.Image, addr uint16) (words map[string]byte, pronouns []string) {
	words = map[string]byte{}
	for {
		id := img.Read8(addr)
		if id == 0 {
			return words, pronouns
		}
		addr++
		tokenIdx := img.Read16(addr) & 0x7FF
		word := decodeSingleWord(img, tokenIdx)
		addr += 2
		if id == 0xFF {
			pronouns = append(pronouns, word)
		} else {
			words[word] = id
		}
	}
}

func extractVerbs(img *memimage.Image) map[string]byte {
	words, _ := extractWords(img, addrVerbs)
	return words
}

func extractNouns(img *memimage.Image) (words map[string]byte, pronouns []string) {
	return extractWords(img, img.Read16(addrNouns))
}

func extractAdverbs(img *memimage.Image) map[string]byte {
	words, _ := extractWords(img, img.Read16(addrAdverbs))
	return words
}

// extractMessages walks the message table: repeated (id, length, text)
// records terminated by an id of zero (grounded in deGAC.get_messages).
func extractMessages(img *memimage.Image) map[int]string {
	out := map[int]string{}
	addr := img.Read16(addrMessages)
	for {
		id := img.Read8(addr)
		if id == 0 {
			return out
		}
		length := img.Read8(addr + 1)
		addr += 2
		out[int(id)] = decodeText(img, addr, int(length))
		addr += uint16(length)
	}
}

// extractObjects walks the object table: repeated (id, length, weight,
// initial location, name) records terminated by an id of zero (grounded
// in deGAC.get_objects).
func extractObjects(img *memimage.Image) map[byte]*gacdb.Object {
	out := map[byte]*gacdb.Object{}
	addr := img.Read16(addrObjects)
	for {
		id := img.Read8(addr)
		if id == 0 {
			return out
		}
		length := img.Read8(addr + 1)
		addr += 2
		obj := &gacdb.Object{
			Weight:     img.Read8(addr),
			InitialLoc: img.Read16(addr + 1),
			Name:       decodeText(img, addr+3, int(length)-3),
		}
		out[id] = obj
		addr += uint16(length)
	}
}

// extractRooms walks the room table: repeated (id, length, graphic id,
// exits, description) records terminated by an id of zero (grounded in
// deGAC.get_rooms).
func extractRooms(img *memimage.Image) map[uint16]*gacdb.Room {
	out := map[uint16]*gacdb.Room{}
	addr := img.Read16(addrRooms)
	for {
		id := img.Read16(addr)
		if id == 0 {
			return out
		}
		length := img.Read16(addr + 2)
		addr += 4
		base := addr

		room := &gacdb.Room{GraphicID: img.Read16(addr)}
		addr += 2

		for img.Read8(addr) != 0 {
			room.Exits = append(room.Exits, gacdb.Exit{
				Dir:  img.Read8(addr),
				Dest: img.Read16(addr + 1),
			})
			addr += 3
		}
		addr++

		room.Desc = decodeText(img, addr, int(length)-int(addr-base))
		out[id] = room
		addr = base + length
	}
}

// gfxRecordLen rejects a graphic record whose length leaves no room for
// the instruction count byte, the same early-exit deGAC.get_graphics uses
// to stop scanning past the last valid record.
const gfxRecordLen = 4

// extractGfx walks the graphics table: repeated (id, length, instruction
// list) records terminated by an id of zero or a too-short length
// (grounded in deGAC.get_graphics).
func extractGfx(img *memimage.Image) map[uint16]gacdb.Gfx {
	out := map[uint16]gacdb.Gfx{}
	addr := img.Read16(addrGraphics)
	for {
		id := img.Read16(addr)
		if id == 0 {
			return out
		}
		length := img.Read16(addr + 2)
		if length <= gfxRecordLen {
			return out
		}
		base := addr
		addr += 4

		numInst := img.Read8(addr)
		addr++
		var insts gacdb.Gfx
		for ; numInst > 0; numInst-- {
			cmd := img.Read8(addr)
			addr++
			op := gaccmd.GfxOpByID(cmd)
			if op == nil {
				break
			}
			var inst gaccmd.GfxInstr
			inst.Op = op
			copy(inst.Params[:], img.ReadBytes(addr, op.Params))
			addr += uint16(op.Params)
			insts = append(insts, inst)
		}
		out[id] = insts
		addr = base + length
	}
}

// extractLCs walks the local-condition table: repeated (room id,
// condition script) records terminated by a room id of zero (grounded in
// deGAC.get_lcs).
func extractLCs(img *memimage.Image) map[uint16]gacdb.Cond {
	out := map[uint16]gacdb.Cond{}
	addr := img.Read16(addrLCs)
	for {
		room := img.Read16(addr)
		if room == 0 {
			return out
		}
		var instrs []gaccmd.Instr
		instrs, addr = disasmCond(img, addr+2)
		out[room] = instrs
	}
}
