package gacdecoder

import "github.com/gac-toolkit/gac/gacdecoder/memimage"

// wordField decomposes one compressed text word (spec §4.2):
//
//	bits 14-15: top  (case mode, or 3 for a punctuation run)
//	bits 11-13: punct (index into the punctuation table)
//	bits  0-10: value (token index, or repeat count when top==3)
type wordField struct {
	top   byte
	punct byte
	value uint16
}

func decomposeWord(w uint16) wordField {
	return wordField{
		top:   byte(w >> 14 & 3),
		punct: byte(w >> 11 & 7),
		value: w & 0x7FF,
	}
}

// findToken returns the address of the token-table entry for the given
// token index. The token table is a sequence of Pascal-style byte runs:
// a length byte followed by that many payload bytes; find_token walks past
// `token` whole entries and returns the start of the requested one's
// payload (grounded in deGAC.get_message_len's inline helper).
func findToken(img *memimage.Image, token uint16) uint16 {
	addr := img.Read16(addrTokens)
	for ; token > 0; token-- {
		length := img.Read8(addr)
		addr += 1 + uint16(length)
	}
	return addr + 1
}

// decodeTokenWord appends one vocabulary token's characters to msg,
// applying the case rule selected by top (spec §4.2, Design Note on case
// mapping):
//
//	top==0: first character verbatim, remaining characters lowercased
//	top==1: every character lowercased
//	top==2: every character verbatim
//
// Each stored byte has its high bit (0x80) set on the token's final
// character; whenever lowering is in effect, decodeTokenWord sets bit 0x20
// on any byte with bit 0x40 set, folding uppercase letters to lowercase.
func decodeTokenWord(img *memimage.Image, token uint16, top byte, msg []byte) []byte {
	for {
		a := img.Read8(token)
		switch top {
		case 0:
			top = 1 // only the token's first character is left verbatim
		case 1:
			if a&0x40 != 0 {
				a |= 0x20
			}
		case 2:
			// verbatim for every character
		}
		msg = append(msg, a&0x7F)
		token++
		if a&0x80 != 0 {
			break
		}
	}
	return msg
}

// decodeText decodes `length` bytes of compressed text starting at addr
// into a string (spec §4.2). A punctuation word whose punctuation byte is
// the NUL terminator ends the string early, exactly as the source's
// get_message_len returns as soon as it sees a zero punctuation byte —
// including mid-record, which is why callers must trust the returned
// string's own end rather than assume all `length` bytes were consumed.
func decodeText(img *memimage.Image, addr uint16, length int) string {
	var msg []byte
	for n := 0; n < length; n += 2 {
		w := img.Read16(addr + uint16(n))
		f := decomposeWord(w)
		if f.top == 3 {
			b := img.Read8(addrPunctuation + uint16(f.punct))
			if b == 0 {
				return string(msg)
			}
			for i := byte(0); i < byte(w&0xFF); i++ {
				msg = append(msg, b)
			}
			continue
		}

		token := findToken(img, f.value)
		msg = decodeTokenWord(img, token, f.top, msg)

		b := img.Read8(addrPunctuation + uint16(f.punct))
		if b == 0 {
			return string(msg)
		}
		msg = append(msg, b)
	}
	return string(msg)
}

// decodeSingleWord decodes one bare vocabulary word stored as a token
// index (no case mode, no punctuation): used by the verb/noun/adverb
// tables, which store plain uppercase tokens (grounded in deGAC.get_words).
func decodeSingleWord(img *memimage.Image, tokenIdx uint16) string {
	token := findToken(img, tokenIdx)
	var msg []byte
	for {
		a := img.Read8(token)
		msg = append(msg, a&0x7F)
		token++
		if a&0x80 != 0 {
			break
		}
	}
	return string(msg)
}
