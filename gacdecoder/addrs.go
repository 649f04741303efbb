// Package gacdecoder recovers a portable gacdb.Database from a raw GAC
// memory snapshot (spec §4.1-§4.4). It plays the role the teacher's
// repparser package plays for replay files: Decode walks a fixed sequence
// of tables through a memimage.Image exactly as repparser.parse walks a
// fixed sequence of sections through a repdecoder.Decoder.
package gacdecoder

// Fixed header addresses (spec §6, "Header pointer table"). Each resolves
// to a little-endian pointer except where noted.
const (
	addrPunctuation = 0xA1E5 // 8 literal bytes, not a pointer
	addrNouns       = 0xA51F
	addrAdverbs     = 0xA521
	addrObjects     = 0xA523
	addrRooms       = 0xA525
	addrHPCs        = 0xA527
	addrLCs         = 0xA529
	addrLPCs        = 0xA52B
	addrMessages    = 0xA52D
	addrGraphics    = 0xA52F
	addrTokens      = 0xA531
	addrInitRoom    = 0xA54D // literal 16-bit value, not a pointer
	addrVerbs       = 0xA54F // inline table, not a pointer
)

// magicPunctuation is the punctuation byte sequence that both identifies a
// valid GAC database and supplies the phrase-ending glyphs themselves
// (spec §1, §4.1). Toolkit variants with any other punctuation bytes are
// out of scope.
var magicPunctuation = [8]byte{0, ' ', '.', ',', '-', '!', '?', ':'}

// fontPointerAddr is the address (outside the header table) that, when
// non-ROM, points at the custom 8x8 bitmap font (see deGAC's get_font).
const fontPointerAddr = 23606

// fontROMThreshold is the lowest address a custom font pointer can have;
// anything below it means the ROM font is in use and no custom glyphs
// were extracted.
const fontROMThreshold = 0x5B00
