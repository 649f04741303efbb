// Package gacio defines the text I/O contract the interpreter drives
// (spec §4.8, §9 "Front-end decoupling") and two implementations: a
// synchronous console façade and a channel-based one for a front-end
// running the VM on a worker goroutine.
package gacio

// Facade is the abstract front-end the turn driver talks to. It never
// assumes a terminal is attached — a graphical front-end implements it by
// pumping events through channels instead (see Queued).
type Facade interface {
	// Print writes a string, word-wrapped to the configured width.
	Print(s string)

	// Input blocks for one line of player input, without the trailing
	// newline.
	Input() string

	// SetWidth configures the wrap width in characters.
	SetWidth(w int)

	// SetSeparators adds to the set of characters print may break a line
	// on (in addition to newline).
	SetSeparators(seps []string)

	// WaitKeyOrTimeout blocks for up to frames/50 seconds, or until a key
	// arrives, whichever is first. Implementations that cannot observe a
	// keystroke (e.g. a pipe) may simply sleep the full duration.
	WaitKeyOrTimeout(frames int)
}
