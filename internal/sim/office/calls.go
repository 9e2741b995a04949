package office

import "officegrid/internal/protocol"

// call is the membership roster for one active voice call. No media passes
// through here; the external SDK owns the audio, this side only brokers who
// is in the call and who hosts it.
type call struct {
	meetingID    string
	host         string
	participants []protocol.CallParticipant // insertion order
}

func (c *call) participant(connID string) *protocol.CallParticipant {
	for i := range c.participants {
		if c.participants[i].ID == connID {
			return &c.participants[i]
		}
	}
	return nil
}

func (c *call) remove(connID string) (protocol.CallParticipant, bool) {
	for i := range c.participants {
		if c.participants[i].ID == connID {
			p := c.participants[i]
			c.participants = append(c.participants[:i], c.participants[i+1:]...)
			return p, true
		}
	}
	return protocol.CallParticipant{}, false
}

func (c *call) roster() []protocol.CallParticipant {
	out := make([]protocol.CallParticipant, len(c.participants))
	copy(out, c.participants)
	return out
}
