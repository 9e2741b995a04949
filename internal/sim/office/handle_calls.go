package office

import (
	"fmt"
	"time"

	"officegrid/internal/protocol"
)

func (o *Office) handleVoiceCallStart(s *session, cmd *protocol.VoiceCallStartCmd) {
	if cmd == nil || !s.inRoom() || cmd.MeetingID == "" {
		return
	}
	o.calls[cmd.MeetingID] = &call{
		meetingID: cmd.MeetingID,
		host:      s.connID,
		participants: []protocol.CallParticipant{{
			ID:       s.connID,
			Username: cmd.Username,
			IsMuted:  cmd.IsMuted,
			IsHost:   true,
		}},
	}
	s.callID = cmd.MeetingID
	o.logger.Printf("voice call created meeting=%s host=%s", cmd.MeetingID, s.connID)
}

func (o *Office) handleVoiceCallJoin(s *session, cmd *protocol.VoiceCallJoinCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	c := o.calls[cmd.MeetingID]
	if c == nil {
		o.sendTo(s, protocol.EvtVoiceCallError, protocol.VoiceCallErrorEvent{
			Error:     "Call not found",
			MeetingID: cmd.MeetingID,
			Code:      protocol.ErrCallNotFound,
		})
		return
	}
	c.participants = append(c.participants, protocol.CallParticipant{
		ID:       s.connID,
		Username: cmd.Username,
		IsMuted:  cmd.IsMuted,
	})
	s.callID = cmd.MeetingID

	o.broadcastCall(c, protocol.EvtVoiceUserJoin, protocol.VoiceUserJoinEvent{
		MeetingID: cmd.MeetingID,
		Username:  cmd.Username,
		IsMuted:   cmd.IsMuted,
	})
	o.broadcastCall(c, protocol.EvtVoiceParticipants, protocol.VoiceParticipantsEvent{
		MeetingID:    cmd.MeetingID,
		Participants: c.roster(),
	})
}

func (o *Office) handleVoiceCallLeave(s *session, cmd *protocol.VoiceCallLeaveCmd) {
	if cmd == nil {
		return
	}
	o.removeFromCall(s, cmd.MeetingID, cmd.Username)
}

func (o *Office) handleVoiceCallMute(s *session, cmd *protocol.VoiceCallMuteCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	c := o.calls[cmd.MeetingID]
	if c == nil {
		o.sendTo(s, protocol.EvtVoiceCallError, protocol.VoiceCallErrorEvent{
			Error:     "Call not found",
			MeetingID: cmd.MeetingID,
			Code:      protocol.ErrCallNotFound,
		})
		return
	}
	p := c.participant(s.connID)
	if p == nil {
		return
	}
	p.IsMuted = cmd.IsMuted
	o.broadcastCall(c, protocol.EvtVoiceMuteChange, protocol.VoiceMuteChangeEvent{
		MeetingID: cmd.MeetingID,
		Username:  cmd.Username,
		IsMuted:   cmd.IsMuted,
	})
}

// removeFromCall is the single teardown procedure for explicit leave and
// disconnect. When the host goes and participants remain, the first remaining
// participant (insertion order) inherits the call; an empty roster deletes it.
func (o *Office) removeFromCall(s *session, meetingID, username string) {
	c := o.calls[meetingID]
	if c == nil {
		if s.callID == meetingID {
			s.callID = ""
		}
		return
	}
	removed, ok := c.remove(s.connID)
	if !ok {
		return
	}
	if username == "" {
		username = removed.Username
	}
	s.callID = ""

	if len(c.participants) == 0 {
		delete(o.calls, meetingID)
		o.sendTo(s, protocol.EvtVoiceCallEnd, protocol.VoiceCallEndEvent{MeetingID: meetingID})
		o.logger.Printf("voice call ended meeting=%s", meetingID)
		return
	}

	if c.host == s.connID {
		newHost := &c.participants[0]
		newHost.IsHost = true
		c.host = newHost.ID
		o.broadcastCall(c, protocol.EvtHostChanged, protocol.HostChangedEvent{
			PreviousHost: s.connID,
			NewHost:      newHost.ID,
			DisplayName:  newHost.Username,
		})
		o.logger.Printf("voice call host handed off meeting=%s host=%s", meetingID, newHost.ID)
	} else {
		o.broadcastCall(c, protocol.EvtUserLeft, protocol.UserLeftEvent{
			UserID:      s.connID,
			DisplayName: username,
		})
		o.broadcastCall(c, protocol.EvtVoiceUserLeave, protocol.VoiceUserLeaveEvent{
			MeetingID: meetingID,
			Username:  username,
		})
	}
	o.broadcastCall(c, protocol.EvtVoiceParticipants, protocol.VoiceParticipantsEvent{
		MeetingID:    meetingID,
		Participants: c.roster(),
	})
}

// handleStartCall brokers the external media channel: hosts get a fresh
// channel name, everyone else must wait for a host.
func (o *Office) handleStartCall(s *session, cmd *protocol.StartCallCmd) {
	if cmd == nil {
		return
	}
	if !cmd.IsHost {
		o.sendTo(s, protocol.EvtCallError, protocol.CallErrorEvent{
			Message: "Please wait for a host to start a call first.",
			Code:    protocol.ErrNoActiveHost,
		})
		return
	}
	roomID := "default"
	if s.inRoom() {
		roomID = s.room.ID
	}
	displayName := cmd.Username
	if displayName == "" {
		displayName = shortName("Host ", s.connID)
	}
	o.sendTo(s, protocol.EvtCallStarted, protocol.CallStartedEvent{
		Channel:     fmt.Sprintf("room_%s_%d", roomID, time.Now().UnixMilli()),
		IsHost:      true,
		UserID:      s.connID,
		DisplayName: displayName,
	})
}
