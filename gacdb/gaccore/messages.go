package gaccore

// MessageID identifies one of the small set of message numbers the
// interpreter itself relies on (as opposed to the much larger range of
// game-authored messages, which are addressed by plain integer and never
// need a name). Modeled on repcore.Speed/repcore.Engine: a byte ID plus an
// Enum carrying a human name, with a table and a by-ID lookup.
type MessageID struct {
	Enum

	// ID as it is used by condition scripts (MESS <id>) and by the
	// interpreter's own hard-coded prompts.
	ID byte
}

// Standard message numbers the interpreter itself consults.
const (
	MsgAsk            byte = 240
	MsgCantDo         byte = 241
	MsgNotUnderstand  byte = 242
	MsgRestart        byte = 243
	MsgYouSure        byte = 244
	MsgAlreadyHave    byte = 245
	MsgDontHave       byte = 246
	MsgCantSee        byte = 247
	MsgTooMuch        byte = 248
	MsgYourScore      byte = 249
	MsgYouTook        byte = 250
	MsgItsDark        byte = 251
	MsgCantFind       byte = 252
	MsgObjHere        byte = 253
	MsgOkay           byte = 254
	MsgTurns          byte = 255
)

// StandardMessages enumerates the message ids with interpreter-assigned
// meaning.
var StandardMessages = []*MessageID{
	{Enum{"Ask for input"}, MsgAsk},
	{Enum{"Can't do that"}, MsgCantDo},
	{Enum{"Don't understand"}, MsgNotUnderstand},
	{Enum{"Restart"}, MsgRestart},
	{Enum{"Are you sure"}, MsgYouSure},
	{Enum{"Already have"}, MsgAlreadyHave},
	{Enum{"Don't have"}, MsgDontHave},
	{Enum{"Can't see"}, MsgCantSee},
	{Enum{"Too much"}, MsgTooMuch},
	{Enum{"Your score"}, MsgYourScore},
	{Enum{"You took"}, MsgYouTook},
	{Enum{"It's dark"}, MsgItsDark},
	{Enum{"Can't find"}, MsgCantFind},
	{Enum{"Objects here"}, MsgObjHere},
	{Enum{"Okay"}, MsgOkay},
	{Enum{"Turns"}, MsgTurns},
}

var standardByID = func() map[byte]*MessageID {
	m := make(map[byte]*MessageID, len(StandardMessages))
	for _, sm := range StandardMessages {
		m[sm.ID] = sm
	}
	return m
}()

// StandardMessageByID returns the standard message descriptor for id, or nil
// if id does not carry any interpreter-assigned meaning (it is then a
// plain, game-authored message).
func StandardMessageByID(id byte) *MessageID {
	return standardByID[id]
}
