package gacdecoder

import (
	"testing"

	"github.com/gac-toolkit/gac/gacdb/gaccmd"
)

// punctRun builds a 2-byte compressed-text word that repeats the glyph at
// magicPunctuation[punctIdx] count times and does not terminate (as long as
// that glyph isn't NUL).
func punctRun(punctIdx, count byte) uint16 {
	return uint16(3)<<14 | uint16(punctIdx)<<11 | uint16(count)
}

func TestExtractRoomsTwoRecordsStride(t *testing.T) {
	pokes := map[uint16]byte{}
	for i, b := range magicPunctuation {
		pokes[addrPunctuation+uint16(i)] = b
	}

	tableAddr := uint16(testMemBase + 0x3000)
	poke16(pokes, addrRooms, tableAddr)

	// Room 1: id=1, graphic_id=7, no exits, desc = one punctuation-run word
	// (2 bytes) => length = 2(graphic) + 1(exit terminator) + 2(desc) = 5.
	addr := tableAddr
	poke16(pokes, addr, 1)
	poke16(pokes, addr+2, 5)
	poke16(pokes, addr+4, 7)  // graphic id
	pokes[addr+6] = 0         // no exits
	poke16(pokes, addr+7, punctRun(1, 2)) // "  "

	// Room 2 starts immediately after room 1's full record (4-byte header +
	// length), at addr+9: id=2, graphic_id=9, no exits, desc of 3 spaces.
	addr2 := addr + 4 + 5
	poke16(pokes, addr2, 2)
	poke16(pokes, addr2+2, 5)
	poke16(pokes, addr2+4, 9)
	pokes[addr2+6] = 0
	poke16(pokes, addr2+7, punctRun(1, 3)) // "   "

	// Terminator.
	poke16(pokes, addr2+4+5, 0)

	img := buildImage(t, pokes)
	rooms := extractRooms(img)

	r1, ok := rooms[1]
	if !ok {
		t.Fatal("room 1 missing")
	}
	if r1.GraphicID != 7 {
		t.Errorf("room 1 GraphicID = %d, want 7", r1.GraphicID)
	}
	if r1.Desc != "  " {
		t.Errorf("room 1 Desc = %q, want %q", r1.Desc, "  ")
	}

	r2, ok := rooms[2]
	if !ok {
		t.Fatal("room 2 missing: table walk did not land on the next record")
	}
	if r2.GraphicID != 9 {
		t.Errorf("room 2 GraphicID = %d, want 9", r2.GraphicID)
	}
	if r2.Desc != "   " {
		t.Errorf("room 2 Desc = %q, want %q", r2.Desc, "   ")
	}
}

func TestExtractObjectsTwoRecords(t *testing.T) {
	pokes := map[uint16]byte{}
	for i, b := range magicPunctuation {
		pokes[addrPunctuation+uint16(i)] = b
	}

	tableAddr := uint16(testMemBase + 0x4000)
	poke16(pokes, addrObjects, tableAddr)

	// Object 1: id=5, length=5 (weight+initial_loc+2-byte desc), weight=10,
	// initial_loc=100, name = 4 spaces.
	addr := tableAddr
	pokes[addr] = 5
	pokes[addr+1] = 5
	pokes[addr+2] = 10
	poke16(pokes, addr+3, 100)
	poke16(pokes, addr+5, punctRun(1, 4))

	addr2 := addr + 2 + 5
	pokes[addr2] = 6
	pokes[addr2+1] = 5
	pokes[addr2+2] = 20
	poke16(pokes, addr2+3, 200)
	poke16(pokes, addr2+5, punctRun(1, 2))

	pokes[addr2+2+5] = 0 // terminator

	img := buildImage(t, pokes)
	objs := extractObjects(img)

	o1, ok := objs[5]
	if !ok {
		t.Fatal("object 5 missing")
	}
	if o1.Weight != 10 || o1.InitialLoc != 100 || o1.Name != "    " {
		t.Errorf("object 5 = %+v, want weight 10, loc 100, name %q", o1, "    ")
	}

	o2, ok := objs[6]
	if !ok {
		t.Fatal("object 6 missing: table walk did not land on the next record")
	}
	if o2.Weight != 20 || o2.InitialLoc != 200 || o2.Name != "  " {
		t.Errorf("object 6 = %+v, want weight 20, loc 200, name %q", o2, "  ")
	}
}

func TestExtractMessagesTwoRecords(t *testing.T) {
	pokes := map[uint16]byte{}
	for i, b := range magicPunctuation {
		pokes[addrPunctuation+uint16(i)] = b
	}

	tableAddr := uint16(testMemBase + 0x5000)
	poke16(pokes, addrMessages, tableAddr)

	addr := tableAddr
	pokes[addr] = 100
	pokes[addr+1] = 2
	poke16(pokes, addr+2, punctRun(1, 3)) // "   "

	addr2 := addr + 2 + 2
	pokes[addr2] = 101
	pokes[addr2+1] = 2
	poke16(pokes, addr2+2, punctRun(1, 5)) // "     "

	pokes[addr2+2+2] = 0 // terminator

	img := buildImage(t, pokes)
	msgs := extractMessages(img)

	if msgs[100] != "   " {
		t.Errorf("message 100 = %q, want %q", msgs[100], "   ")
	}
	if msgs[101] != "     " {
		t.Errorf("message 101 = %q, want %q (table walk must land on the next record)", msgs[101], "     ")
	}
}

func TestExtractGfxDecodesFixedWidthInstructions(t *testing.T) {
	pokes := map[uint16]byte{}

	tableAddr := uint16(testMemBase + 0x6000)
	poke16(pokes, addrGraphics, tableAddr)

	addr := tableAddr
	poke16(pokes, addr, 1)      // gfx id
	poke16(pokes, addr+2, 10)   // record length, header included
	pokes[addr+4] = 2           // n_inst
	pokes[addr+5] = gaccmd.GfxBORDER
	pokes[addr+6] = 5
	pokes[addr+7] = gaccmd.GfxPLOT
	pokes[addr+8] = 3
	pokes[addr+9] = 4

	poke16(pokes, addr+10, 0) // terminator

	img := buildImage(t, pokes)
	gfx := extractGfx(img)

	insts, ok := gfx[1]
	if !ok {
		t.Fatal("gfx record 1 missing")
	}
	if len(insts) != 2 {
		t.Fatalf("len(insts) = %d, want 2", len(insts))
	}
	if insts[0].Op.ID != gaccmd.GfxBORDER || insts[0].Params[0] != 5 {
		t.Errorf("insts[0] = %+v, want BORDER 5", insts[0])
	}
	if insts[1].Op.ID != gaccmd.GfxPLOT || insts[1].Params[0] != 3 || insts[1].Params[1] != 4 {
		t.Errorf("insts[1] = %+v, want PLOT 3 4", insts[1])
	}
}
