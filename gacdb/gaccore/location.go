package gaccore

// Location encodes where an object currently is: nowhere, carried by the
// player, or in a room. It mirrors the teacher's UnitTag bit-accessor idiom
// (repcmd.UnitTag.Index/Recycle) applied to GAC's location encoding.
type Location uint16

const (
	// Nowhere is the location of an object that does not exist in the world.
	Nowhere Location = 0

	// Carried is the reserved location id meaning "in the player's inventory".
	Carried Location = 255
)

// IsNowhere tells if the location means the object does not exist.
func (l Location) IsNowhere() bool {
	return l == Nowhere
}

// IsCarried tells if the location means the player is carrying the object.
func (l Location) IsCarried() bool {
	return l == Carried
}

// RoomID returns the room id this location refers to, and whether it is a
// room at all (as opposed to Nowhere or Carried).
func (l Location) RoomID() (id uint16, ok bool) {
	if l == Nowhere || l == Carried {
		return 0, false
	}
	return uint16(l), true
}

// String returns a human-readable form of the location.
func (l Location) String() string {
	switch l {
	case Nowhere:
		return "nowhere"
	case Carried:
		return "carried"
	default:
		return "room"
	}
}
