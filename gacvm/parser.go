package gacvm

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gac-toolkit/gac/gacdb"
)

// upper folds player input to uppercase for vocabulary lookup. Vocabulary
// text itself is plain ASCII, but input may not be (accented names,
// copy-pasted transcripts), so case folding goes through a real Unicode
// caser rather than the byte-range trick a pure-ASCII assumption would use.
var upper = cases.Upper(language.Und)

// SplitStatements breaks a raw input line into independently-parsed
// sub-statements (spec §4.5 "Sentence splitting"): every separator string
// (matched as a whole, case-sensitively) and every punctuation character
// except space becomes a statement delimiter.
func SplitStatements(db *gacdb.Database, line string) []string {
	for _, s := range db.Separators {
		if s != "" && s != " " {
			line = strings.ReplaceAll(line, s, ".")
		}
	}
	delims := map[rune]bool{}
	for _, s := range db.Punctuation {
		for _, r := range s {
			if r != ' ' && r != 0 {
				delims[r] = true
			}
		}
	}
	var b strings.Builder
	for _, r := range line {
		if delims[r] {
			b.WriteByte('.')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Split(b.String(), ".")
}

// findWord matches token against dictionary entries, truncating each
// entry to token's length before comparing (spec §4.5, §9 "Vocabulary
// lookup"): the match is order-sensitive, so dictionary entries are
// visited in a stable, sorted order rather than Go's randomized map
// order.
func findWord(dictionary map[string]byte, token string) byte {
	keys := make([]string, 0, len(dictionary))
	for k := range dictionary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		candidate := k
		if len(candidate) > len(token) {
			candidate = candidate[:len(token)]
		}
		if candidate == token {
			return dictionary[k]
		}
	}
	return 0
}

// Parse resolves one sub-statement's words into the parser slots (spec
// §4.5). It returns whether any slot was filled and whether the input was
// the hard-coded quit token. *QUIT bypasses the adventure's own QUIT
// opcode entirely, the same way the source's __parse_input short-circuits
// on it before trying any vocabulary lookup.
func Parse(db *gacdb.Database, st *State, line string) (anySlotFilled bool, quit bool) {
	st.Verb, st.Adverb, st.Noun1, st.Noun2 = 0, 0, 0, 0

	for _, word := range strings.Fields(upper.String(line)) {
		if word == "*QUIT" {
			return true, true
		}
		matched := false

		if st.Verb == 0 {
			st.Verb = uint16(findWord(db.Verbs, word))
			matched = st.Verb != 0
		}
		// noun1 is only tried for a word the verb slot did not consume,
		// mirroring the source's `if self.noun1 == 0 and not matched` guard.
		if st.Noun1 == 0 && !matched {
			if id := findWord(db.Nouns, word); id != 0 {
				st.Noun1 = uint16(id)
				st.OldNoun = st.Noun1
				matched = true
			} else if isPronoun(db.Pronouns, word) {
				st.Noun1 = st.OldNoun
				matched = st.Noun1 != 0
			}
		}
		if st.Adverb == 0 && !matched {
			st.Adverb = uint16(findWord(db.Adverbs, word))
			matched = st.Adverb != 0
		}
		// Dual noun slots are never filled: the source's own noun2 branch
		// guards on `self.noun2 == 0 and self.noun2 != 0`, which is always
		// false, so the second noun slot is permanently dormant (spec §9
		// "Dual noun slots" — preserved rather than "fixed", since no
		// known game corpus exercises two-noun sentences).
	}

	return st.Verb != 0 || st.Noun1 != 0 || st.Adverb != 0 || st.Noun2 != 0, false
}

func isPronoun(pronouns []string, word string) bool {
	for _, p := range pronouns {
		if strings.EqualFold(p, word) {
			return true
		}
	}
	return false
}
