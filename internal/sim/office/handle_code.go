package office

import "officegrid/internal/protocol"

// handleCodeUpdate overwrites the room's code buffer, last writer wins, and
// rebroadcasts to every member including the sender. The sender tag travels
// with the payload so the UI layer can filter its own echo.
func (o *Office) handleCodeUpdate(s *session, cmd *protocol.CodeUpdateCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	shared.code = cmd.Code
	sender := cmd.Sender
	if sender == "" {
		sender = s.connID
	}
	o.broadcastRoom(s.room, protocol.EvtCodeUpdate, protocol.CodeUpdateEvent{
		Code:   cmd.Code,
		Sender: sender,
	})
}
