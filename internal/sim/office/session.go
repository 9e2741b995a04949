package office

import "officegrid/internal/protocol"

// session is the transient per-connection state. It moves through
// connected (no room) -> in-room -> gone; voice-call membership is held
// orthogonally and torn down independently on disconnect.
type session struct {
	connID string
	out    chan []byte

	room      *Room
	character *protocol.Character

	// canEdit is granted by a successful passwordCheck and gates itemsUpdate.
	canEdit bool

	// callID is the meeting the connection currently sits in, "" when none.
	callID string
}

func (s *session) inRoom() bool { return s.room != nil }
