package gacio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// Console is the synchronous, stdio-backed Facade (spec §4.8), grounded
// in the source's IoCallbackGAC: it tracks remaining line width itself
// and breaks at the nearest configured separator rather than mid-word.
type Console struct {
	out        io.Writer
	in         *bufio.Reader
	width      int
	lineRemain int
	separators map[rune]bool
}

// NewConsole builds a Console writing to w and reading lines from r.
func NewConsole(w io.Writer, r io.Reader) *Console {
	return &Console{
		out:        w,
		in:         bufio.NewReader(r),
		separators: map[rune]bool{'\n': true},
	}
}

func (c *Console) SetWidth(w int) {
	c.width = w
	c.lineRemain = w
}

func (c *Console) SetSeparators(seps []string) {
	for _, s := range seps {
		for _, r := range s {
			c.separators[r] = true
		}
	}
}

// Print breaks s into runs ending at the first separator (or at the
// string's last character, if none appears first), wrapping to a new
// line whenever a run would overflow the remaining width.
func (c *Console) Print(s string) {
	runes := []rune(s)
	pos := 0
	for pos < len(runes) {
		end := pos
		for end < len(runes)-1 && !c.separators[runes[end]] {
			end++
		}
		run := string(runes[pos : end+1])
		if len([]rune(run)) > c.lineRemain {
			fmt.Fprint(c.out, "\n")
			c.lineRemain = c.width
		}
		if runes[end] == '\n' {
			c.lineRemain = c.width
		}
		c.lineRemain -= len([]rune(run))
		fmt.Fprint(c.out, run)
		pos = end + 1
	}
}

// Input reads one line, stripping the trailing newline, and resets the
// line-wrap state the way a fresh input prompt does in the source.
func (c *Console) Input() string {
	c.lineRemain = c.width
	line, _ := c.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// WaitKeyOrTimeout has no way to observe a keystroke on a plain pipe, so
// it simply sleeps the full duration; an interactive terminal front-end
// can override this behavior by supplying its own Facade.
func (c *Console) WaitKeyOrTimeout(frames int) {
	time.Sleep(time.Duration(frames) * time.Second / 50)
}
