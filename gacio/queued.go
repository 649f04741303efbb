package gacio

// EventKind tags an OutEvent the VM goroutine sends to the front-end
// (grounded in runGAC_pygame's tagged cmd_queue tuples: 0x01 print, 0x02
// input request, 0x05 wait-key, 0x00 quit).
type EventKind int

const (
	EventPrint EventKind = iota
	EventInputRequest
	EventWaitKey
	EventQuit
)

// OutEvent is one message from the VM goroutine to the front-end.
type OutEvent struct {
	Kind EventKind

	// Text carries the string for EventPrint.
	Text string

	// Frames carries the wait duration for EventWaitKey.
	Frames int
}

// InEvent is one response from the front-end back to the VM goroutine,
// sent only after an EventInputRequest or EventWaitKey was consumed.
type InEvent struct {
	// Line is the player's typed line, for an EventInputRequest reply.
	Line string
}

// Queued is a Facade backed by two single-producer/single-consumer
// channels, letting the interpreter run on its own goroutine while a
// graphical front-end owns the display and input loop (spec §5). Ordering
// between Out and In is FIFO: the front-end must answer each
// EventInputRequest/EventWaitKey before the VM goroutine sends its next
// event, since Input and WaitKeyOrTimeout block on the reply.
type Queued struct {
	Out chan OutEvent
	In  chan InEvent

	width      int
	separators []string
}

// NewQueued builds a Queued façade with the given channel buffering.
// A buffer of 0 makes Print synchronous with the front-end's consumption,
// matching the source's queue.Queue() (unbounded, but FIFO) closely
// enough for a cooperative single-turn producer.
func NewQueued(outBuf, inBuf int) *Queued {
	return &Queued{
		Out: make(chan OutEvent, outBuf),
		In:  make(chan InEvent, inBuf),
	}
}

func (q *Queued) Print(s string) {
	q.Out <- OutEvent{Kind: EventPrint, Text: s}
}

func (q *Queued) Input() string {
	q.Out <- OutEvent{Kind: EventInputRequest}
	resp := <-q.In
	return resp.Line
}

func (q *Queued) SetWidth(w int) {
	q.width = w
}

func (q *Queued) SetSeparators(seps []string) {
	q.separators = append(q.separators, seps...)
}

func (q *Queued) WaitKeyOrTimeout(frames int) {
	q.Out <- OutEvent{Kind: EventWaitKey, Frames: frames}
	<-q.In
}

// Quit tells the front-end the VM goroutine is shutting down. Call it
// after the turn loop returns, not from within the VM itself — a quit
// command from the UI is instead expected to arrive as an
// EventInputRequest reply whose line is *QUIT, which the parser treats as
// an immediate quit (an empty reply only makes the driver prompt again;
// the cancellation path in spec §5 has no mid-script interrupt).
func (q *Queued) Quit() {
	q.Out <- OutEvent{Kind: EventQuit}
}
