package office

import "officegrid/internal/protocol"

// sendTo encodes and queues one frame for one connection. Queues never block
// the loop: when a client cannot keep up, its oldest frame is dropped.
func (o *Office) sendTo(s *session, event string, data any) {
	if s == nil || s.out == nil {
		return
	}
	b, err := protocol.Encode(event, data)
	if err != nil {
		o.logger.Printf("encode %s: %v", event, err)
		return
	}
	sendLatest(s.out, b)
}

// broadcastRoom sends to every member of the room, including the origin.
func (o *Office) broadcastRoom(room *Room, event string, data any) {
	if room == nil {
		return
	}
	b, err := protocol.Encode(event, data)
	if err != nil {
		o.logger.Printf("encode %s: %v", event, err)
		return
	}
	for _, s := range o.sessions {
		if s.room == room {
			sendLatest(s.out, b)
		}
	}
}

// broadcastAll reaches every connection, in a room or not (lobby updates).
func (o *Office) broadcastAll(event string, data any) {
	b, err := protocol.Encode(event, data)
	if err != nil {
		o.logger.Printf("encode %s: %v", event, err)
		return
	}
	for _, s := range o.sessions {
		sendLatest(s.out, b)
	}
}

// broadcastCall sends to every participant of a voice call.
func (o *Office) broadcastCall(c *call, event string, data any) {
	b, err := protocol.Encode(event, data)
	if err != nil {
		o.logger.Printf("encode %s: %v", event, err)
		return
	}
	for _, p := range c.participants {
		if s := o.sessions[p.ID]; s != nil {
			sendLatest(s.out, b)
		}
	}
}

// roomUpdate mirrors every membership change: the room roster to members and
// the refreshed lobby list to everyone.
func (o *Office) roomUpdate(room *Room) {
	if room == nil {
		return
	}
	o.broadcastRoom(room, protocol.EvtCharacters, room.characterList())
	o.broadcastAll(protocol.EvtRooms, o.roomSummaries())
}

func sendLatest(ch chan []byte, b []byte) {
	if ch == nil {
		return
	}
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
