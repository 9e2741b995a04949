package office

import "officegrid/internal/protocol"

func (o *Office) handleJoinRoom(s *session, cmd *protocol.JoinRoomCmd) {
	if cmd == nil {
		return
	}
	room := o.roomsByID[cmd.RoomID]
	if room == nil {
		// Unknown room id: command is silently ignored, no character created.
		return
	}
	if s.inRoom() {
		o.leaveRoom(s)
	}

	c := &protocol.Character{
		ID:        s.connID,
		Session:   o.rng.Intn(1000),
		Position:  room.randomWalkable(o.rng),
		AvatarURL: cmd.AvatarURL,
	}
	room.Characters = append(room.Characters, c)
	s.room = room
	s.character = c
	s.canEdit = false

	shared := o.collections(room.ID)
	o.sendTo(s, protocol.EvtCodeUpdate, protocol.CodeUpdateEvent{Code: shared.code})
	o.sendTo(s, protocol.EvtEditPermissionUpdate, protocol.EditPermissionEvent{CanEdit: true, IsAdmin: true})
	o.broadcastRoom(room, protocol.EvtUserCountUpdate, protocol.UserCountEvent{Count: len(room.Characters)})
	o.sendTo(s, protocol.EvtRoomJoined, protocol.RoomJoinedEvent{
		Map:        room.mapData(),
		Characters: room.characterList(),
		ID:         s.connID,
	})
	o.roomUpdate(room)
	// First occupant gets the admin role.
	o.sendTo(s, protocol.EvtUserRole, protocol.UserRoleEvent{IsAdmin: len(room.Characters) == 1})

	o.logger.Printf("join conn=%s room=%s pos=%v", s.connID, room.ID, c.Position)
}

func (o *Office) handleLeaveRoom(s *session) {
	o.leaveRoom(s)
}

// leaveRoom deregisters the character and is idempotent: calling it for a
// session with no room is a no-op.
func (o *Office) leaveRoom(s *session) {
	room := s.room
	if room == nil {
		return
	}
	room.removeCharacter(s.connID)
	s.room = nil
	s.character = nil
	s.canEdit = false
	o.broadcastRoom(room, protocol.EvtUserCountUpdate, protocol.UserCountEvent{Count: len(room.Characters)})
	o.roomUpdate(room)
}

func (o *Office) handleAvatarUpdate(s *session, cmd *protocol.AvatarUpdateCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	s.character.AvatarURL = cmd.AvatarURL
	o.broadcastRoom(s.room, protocol.EvtCharacters, s.room.characterList())
}

func (o *Office) handlePasswordCheck(s *session, cmd *protocol.PasswordCheckCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	if cmd.Password == s.room.Password {
		s.canEdit = true
		s.character.CanUpdateRoom = true
		o.sendTo(s, protocol.EvtPasswordCheckSuccess, nil)
	} else {
		o.sendTo(s, protocol.EvtPasswordCheckFail, nil)
	}
}

// handleItemsUpdate replaces the furniture layout. The grid is rebuilt before
// anything is broadcast, and every character is respawned with its in-flight
// path cleared: a layout change invalidates all movement in progress.
func (o *Office) handleItemsUpdate(s *session, cmd *protocol.ItemsUpdateCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	if !s.canEdit {
		return
	}
	if len(cmd.Items) == 0 {
		// Guard against wiping the layout with an accidental empty update.
		return
	}
	room := s.room
	room.replaceItems(cmd.Items)
	for _, c := range room.Characters {
		c.Path = nil
		c.Position = room.randomWalkable(o.rng)
	}
	o.broadcastRoom(room, protocol.EvtMapUpdate, protocol.MapUpdateEvent{
		Map:        room.mapData(),
		Characters: room.characterList(),
	})

	o.persistRooms()
	if o.audit != nil {
		if err := o.audit.LogLayoutUpdate(room.ID, s.connID, len(cmd.Items)); err != nil {
			o.logger.Printf("audit layout update: %v", err)
		}
	}
}
