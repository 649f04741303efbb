package gacdecoder

import (
	"bytes"
	"testing"

	"github.com/gac-toolkit/gac/gacdb/gaccmd"
	"github.com/gac-toolkit/gac/gacdecoder/memimage"
)

// Mirrors memimage's own fixed snapshot layout so tests can poke arbitrary
// addresses >= 0x5C00 without memimage exporting its internals.
const (
	testSeekPos  = 0x1C1B
	testMemBase  = 0x5C00
	testFileSize = 49179
)

// buildImage constructs a memimage.Image with the given (address, byte)
// pokes applied, for addresses in [0x5C00, 0x5C00+0xA400).
func buildImage(t *testing.T, pokes map[uint16]byte) *memimage.Image {
	t.Helper()
	buf := make([]byte, testFileSize)
	for addr, b := range pokes {
		buf[testSeekPos+int(addr)-testMemBase] = b
	}
	img, err := memimage.Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func poke16(pokes map[uint16]byte, addr uint16, v uint16) {
	pokes[addr] = byte(v)
	pokes[addr+1] = byte(v >> 8)
}

// withToken lays out one token-table entry at tokenAddr: a length byte
// followed by the token's bytes (each masked into 7 bits, final byte's bit
// 7 set). Callers point addrTokens at tokenAddr, making it token index 0.
func withToken(pokes map[uint16]byte, tokenAddr uint16, chars []byte) {
	pokes[tokenAddr] = byte(len(chars))
	for i, c := range chars {
		b := c & 0x7F
		if i == len(chars)-1 {
			b |= 0x80
		}
		pokes[tokenAddr+1+uint16(i)] = b
	}
}

func TestDecodeTextPunctuationRun(t *testing.T) {
	pokes := map[uint16]byte{}
	for i, b := range magicPunctuation {
		pokes[addrPunctuation+uint16(i)] = b
	}
	// A punctuation word: top=3 (bits14-15), punct index=1 (' '), repeat
	// count (low byte) = 3.
	w := uint16(3)<<14 | uint16(1)<<11 | 3
	poke16(pokes, testMemBase, w)

	img := buildImage(t, pokes)
	got := decodeText(img, testMemBase, 2)
	if got != "   " {
		t.Errorf("decodeText punctuation run = %q, want 3 spaces", got)
	}
}

func TestDecodeTextTokenWithTrailingPunctuation(t *testing.T) {
	pokes := map[uint16]byte{}
	for i, b := range magicPunctuation {
		pokes[addrPunctuation+uint16(i)] = b
	}
	poke16(pokes, addrTokens, testMemBase+0x1000) // token table base
	withToken(pokes, testMemBase+0x1000, []byte("Hi"))

	// top=0 (capitalized), punct=2 ('.'), token index=0.
	w := uint16(0)<<14 | uint16(2)<<11 | 0
	poke16(pokes, testMemBase, w)

	img := buildImage(t, pokes)
	got := decodeText(img, testMemBase, 2)
	if got != "Hi." {
		t.Errorf("decodeText = %q, want %q", got, "Hi.")
	}
}

func TestDecodeTextLowercasesTopOne(t *testing.T) {
	pokes := map[uint16]byte{}
	for i, b := range magicPunctuation {
		pokes[addrPunctuation+uint16(i)] = b
	}
	poke16(pokes, addrTokens, testMemBase+0x1000)
	withToken(pokes, testMemBase+0x1000, []byte("HI"))

	// top=1 (all lowercase), punct=0 (terminator: stop before appending).
	w := uint16(1)<<14 | uint16(0)<<11 | 0
	poke16(pokes, testMemBase, w)

	img := buildImage(t, pokes)
	got := decodeText(img, testMemBase, 2)
	if got != "hi" {
		t.Errorf("decodeText = %q, want %q", got, "hi")
	}
}

func TestFindTokenWalksLengthPrefixedEntries(t *testing.T) {
	pokes := map[uint16]byte{}
	poke16(pokes, addrTokens, testMemBase+0x2000)
	base := uint16(testMemBase + 0x2000)
	// entry 0: length 2
	pokes[base] = 2
	pokes[base+1] = 'A' | 0x80
	pokes[base+2] = 'B' | 0x80
	// entry 1 starts at base+3
	pokes[base+3] = 1
	pokes[base+4] = 'C' | 0x80

	img := buildImage(t, pokes)
	got := findToken(img, 1)
	want := base + 4
	if got != want {
		t.Errorf("findToken(1) = %#x, want %#x", got, want)
	}
}

func TestDisasmCondPushAndOp(t *testing.T) {
	pokes := map[uint16]byte{}
	addr := uint16(testMemBase)
	// PUSH 0x0142: high bit set, (b&0x7F)<<8 | next byte.
	pokes[addr] = 0x80 | 0x01
	pokes[addr+1] = 0x42
	// AND opcode (0x01).
	pokes[addr+2] = gaccmd.OpAND
	// Masked END-of-script opcode (0x40 & 0x3F == OpEND): this is an
	// emitted instruction, distinct from a raw 0x00 terminator byte, which
	// disasmCond stops on without appending (see
	// TestDisasmCondTerminatesOnZeroByte).
	pokes[addr+3] = 0x40

	img := buildImage(t, pokes)
	instrs, next := disasmCond(img, addr)

	if len(instrs) != 3 {
		t.Fatalf("len(instrs) = %d, want 3", len(instrs))
	}
	if !instrs[0].IsPush || instrs[0].Imm != 0x0142 {
		t.Errorf("instrs[0] = %+v, want PUSH 0x0142", instrs[0])
	}
	if instrs[1].IsPush || instrs[1].Op.ID != gaccmd.OpAND {
		t.Errorf("instrs[1] = %+v, want AND", instrs[1])
	}
	if instrs[2].Op.ID != gaccmd.OpEND {
		t.Errorf("instrs[2] = %+v, want END", instrs[2])
	}
	if next != addr+4 {
		t.Errorf("next = %#x, want %#x", next, addr+4)
	}
}

func TestDisasmCondTerminatesOnZeroByte(t *testing.T) {
	pokes := map[uint16]byte{}
	addr := uint16(testMemBase)
	pokes[addr] = 0 // terminator byte, not OpEND

	img := buildImage(t, pokes)
	instrs, next := disasmCond(img, addr)
	if len(instrs) != 0 {
		t.Errorf("len(instrs) = %d, want 0", len(instrs))
	}
	if next != addr+1 {
		t.Errorf("next = %#x, want %#x", next, addr+1)
	}
}
