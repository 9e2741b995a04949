package office

import "officegrid/internal/protocol"

// handleMove validates the requested move against the room grid. The claimed
// origin is trusted as-is; the server only guarantees the path it broadcasts
// is walkable. Unreachable targets drop the command without any reply.
func (o *Office) handleMove(s *session, cmd *protocol.MoveCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	path := findPath(s.room.Grid(), cmd.From, cmd.To)
	if path == nil {
		return
	}
	s.character.Position = cmd.From
	s.character.Path = path
	o.broadcastRoom(s.room, protocol.EvtPlayerMove, *s.character)
}

func (o *Office) handleDance(s *session) {
	if !s.inRoom() {
		return
	}
	o.broadcastRoom(s.room, protocol.EvtPlayerDance, protocol.PlayerDanceEvent{ID: s.connID})
}

func (o *Office) handleChatMessage(s *session, cmd *protocol.ChatMessageCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	o.broadcastRoom(s.room, protocol.EvtPlayerChatMessage, protocol.PlayerChatEvent{
		ID:      s.connID,
		Message: cmd.Message,
	})
	if o.audit != nil {
		if err := o.audit.LogChat(s.room.ID, s.connID, cmd.Message); err != nil {
			o.logger.Printf("audit chat: %v", err)
		}
	}
}

func (o *Office) handleNearDeskComputer(s *session, near *bool) {
	if near == nil || !s.inRoom() {
		return
	}
	o.broadcastRoom(s.room, protocol.EvtNearDeskComputer, *near)
}
