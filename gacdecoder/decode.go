package gacdecoder

import (
	"io"

	"github.com/gac-toolkit/gac/gacdb"
	"github.com/gac-toolkit/gac/gacdecoder/memimage"
)

// Decode recovers a portable gacdb.Database from a raw memory snapshot
// read from r (spec §4.1-§4.4). It plays the orchestration role the
// teacher's repparser.Parse plays for replay files: load the image, then
// walk a fixed sequence of tables off it.
func Decode(r io.Reader) (*gacdb.Database, error) {
	img, err := memimage.Load(r)
	if err != nil {
		return nil, err
	}
	return decodeImage(img)
}

// DecodeFile is the os.Open-backed convenience wrapper Decode's callers
// (gacdecode's CLI in particular) actually want.
func DecodeFile(name string) (*gacdb.Database, error) {
	img, err := memimage.LoadFile(name)
	if err != nil {
		return nil, err
	}
	return decodeImage(img)
}

func decodeImage(img *memimage.Image) (*gacdb.Database, error) {
	got := img.ReadBytes(addrPunctuation, len(magicPunctuation))
	for i, want := range magicPunctuation {
		if got[i] != want {
			return nil, &DecodeError{Kind: KindBadMagic, Table: "punctuation", Offset: addrPunctuation}
		}
	}

	nouns, pronouns := extractNouns(img)

	db := &gacdb.Database{
		Font:        extractFont(img),
		Verbs:       extractVerbs(img),
		Nouns:       nouns,
		Pronouns:    pronouns,
		Adverbs:     extractAdverbs(img),
		Messages:    extractMessages(img),
		Objects:     extractObjects(img),
		Locations:   extractRooms(img),
		Gfx:         extractGfx(img),
		LCs:         extractLCs(img),
		Model:       gacdb.SPECTRUM,
		Punctuation: punctuationStrings(),
		Separators:  []string{"then", "and"},
		InitLoc:     img.Read16(addrInitRoom),
		NoObjsMsg:   "Nothing",
	}

	db.HPCs, _ = disasmCond(img, img.Read16(addrHPCs))
	db.LPCs, _ = disasmCond(img, img.Read16(addrLPCs))

	return db, nil
}

// punctuationStrings renders the punctuation magic as single-character
// strings, index 0 being the NUL terminator (spec §6).
func punctuationStrings() []string {
	out := make([]string, len(magicPunctuation))
	for i, b := range magicPunctuation {
		out[i] = string(rune(b))
	}
	return out
}
