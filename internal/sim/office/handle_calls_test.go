package office

import (
	"encoding/json"
	"strings"
	"testing"

	"officegrid/internal/protocol"
)

func startCallWithTwo(t *testing.T, o *Office) (string, chan []byte, string, chan []byte) {
	t.Helper()
	a, outA := connectClient(t, o)
	b, outB := connectClient(t, o)
	joinRoom(t, o, a, "R")
	joinRoom(t, o, b, "R")
	dispatch(o, a, protocol.Command{
		Name:           protocol.CmdVoiceCallStart,
		VoiceCallStart: &protocol.VoiceCallStartCmd{MeetingID: "m1", Username: "Alex"},
	})
	dispatch(o, b, protocol.Command{
		Name:          protocol.CmdVoiceCallJoin,
		VoiceCallJoin: &protocol.VoiceCallJoinCmd{MeetingID: "m1", Username: "Blake"},
	})
	drainEvents(t, outA)
	drainEvents(t, outB)
	return a, outA, b, outB
}

func TestVoiceCall_JoinBroadcastsRoster(t *testing.T) {
	o := newTestOffice(t)
	a, outA := connectClient(t, o)
	b, outB := connectClient(t, o)
	joinRoom(t, o, a, "R")
	joinRoom(t, o, b, "R")
	dispatch(o, a, protocol.Command{
		Name:           protocol.CmdVoiceCallStart,
		VoiceCallStart: &protocol.VoiceCallStartCmd{MeetingID: "m1", Username: "Alex"},
	})
	drainEvents(t, outA)

	dispatch(o, b, protocol.Command{
		Name:          protocol.CmdVoiceCallJoin,
		VoiceCallJoin: &protocol.VoiceCallJoinCmd{MeetingID: "m1", Username: "Blake", IsMuted: true},
	})

	for name, out := range map[string]chan []byte{"a": outA, "b": outB} {
		raw := lastEvent(t, out, protocol.EvtVoiceParticipants)
		if raw == nil {
			t.Fatalf("%s: no participants broadcast", name)
		}
		var ev protocol.VoiceParticipantsEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(ev.Participants) != 2 {
			t.Fatalf("%s: roster=%+v", name, ev.Participants)
		}
		if !ev.Participants[0].IsHost || ev.Participants[0].ID != a {
			t.Fatalf("%s: host not first in roster: %+v", name, ev.Participants)
		}
		if ev.Participants[1].ID != b || !ev.Participants[1].IsMuted {
			t.Fatalf("%s: joiner record wrong: %+v", name, ev.Participants[1])
		}
	}
}

func TestVoiceCall_JoinUnknownMeeting(t *testing.T) {
	o := newTestOffice(t)
	a, outA := connectClient(t, o)
	joinRoom(t, o, a, "R")
	drainEvents(t, outA)

	dispatch(o, a, protocol.Command{
		Name:          protocol.CmdVoiceCallJoin,
		VoiceCallJoin: &protocol.VoiceCallJoinCmd{MeetingID: "ghost", Username: "Alex"},
	})

	raw := lastEvent(t, outA, protocol.EvtVoiceCallError)
	if raw == nil {
		t.Fatalf("no voice-call-error")
	}
	var ev protocol.VoiceCallErrorEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("%v", err)
	}
	if ev.Error != "Call not found" || ev.MeetingID != "ghost" || ev.Code != protocol.ErrCallNotFound {
		t.Fatalf("error=%+v", ev)
	}
}

func TestVoiceCall_MuteChangeBroadcasts(t *testing.T) {
	o := newTestOffice(t)
	_, outA, b, outB := startCallWithTwo(t, o)

	dispatch(o, b, protocol.Command{
		Name:          protocol.CmdVoiceCallMute,
		VoiceCallMute: &protocol.VoiceCallMuteCmd{MeetingID: "m1", Username: "Blake", IsMuted: true},
	})

	for name, out := range map[string]chan []byte{"a": outA, "b": outB} {
		raw := lastEvent(t, out, protocol.EvtVoiceMuteChange)
		if raw == nil {
			t.Fatalf("%s: no mute broadcast", name)
		}
		var ev protocol.VoiceMuteChangeEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !ev.IsMuted || ev.Username != "Blake" {
			t.Fatalf("%s: mute=%+v", name, ev)
		}
	}
	if p := o.calls["m1"].participant(b); p == nil || !p.IsMuted {
		t.Fatalf("mute not recorded in roster")
	}
}

func TestVoiceCall_NonHostLeave(t *testing.T) {
	o := newTestOffice(t)
	a, outA, b, _ := startCallWithTwo(t, o)

	dispatch(o, b, protocol.Command{
		Name:           protocol.CmdVoiceCallLeave,
		VoiceCallLeave: &protocol.VoiceCallLeaveCmd{MeetingID: "m1", Username: "Blake"},
	})

	events := drainEvents(t, outA)
	var sawLeft, sawVoiceLeave, sawRoster bool
	for _, e := range events {
		switch e.Event {
		case protocol.EvtUserLeft:
			sawLeft = true
		case protocol.EvtVoiceUserLeave:
			sawVoiceLeave = true
		case protocol.EvtVoiceParticipants:
			sawRoster = true
		case protocol.EvtHostChanged:
			t.Fatalf("host changed on a non-host leave")
		}
	}
	if !sawLeft || !sawVoiceLeave || !sawRoster {
		t.Fatalf("missing teardown broadcasts: left=%v voiceLeave=%v roster=%v", sawLeft, sawVoiceLeave, sawRoster)
	}
	if c := o.calls["m1"]; c == nil || c.host != a || len(c.participants) != 1 {
		t.Fatalf("call state after leave: %+v", c)
	}
}

func TestVoiceCall_HostDisconnectHandsOff(t *testing.T) {
	o := newTestOffice(t)
	a, _, b, outB := startCallWithTwo(t, o)

	o.handleDisconnect(a)

	raw := lastEvent(t, outB, protocol.EvtHostChanged)
	if raw == nil {
		t.Fatalf("no host-changed after host disconnect")
	}
	var ev protocol.HostChangedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("%v", err)
	}
	if ev.PreviousHost != a || ev.NewHost != b || ev.DisplayName != "Blake" {
		t.Fatalf("hand-off=%+v", ev)
	}

	c := o.calls["m1"]
	if c == nil {
		t.Fatalf("call deleted while a participant remained")
	}
	if c.host != b || !c.participants[0].IsHost {
		t.Fatalf("new host not promoted: %+v", c)
	}
}

func TestVoiceCall_LastLeaveEndsCall(t *testing.T) {
	o := newTestOffice(t)
	a, outA := connectClient(t, o)
	joinRoom(t, o, a, "R")
	dispatch(o, a, protocol.Command{
		Name:           protocol.CmdVoiceCallStart,
		VoiceCallStart: &protocol.VoiceCallStartCmd{MeetingID: "m1", Username: "Alex"},
	})
	drainEvents(t, outA)

	dispatch(o, a, protocol.Command{
		Name:           protocol.CmdVoiceCallLeave,
		VoiceCallLeave: &protocol.VoiceCallLeaveCmd{MeetingID: "m1", Username: "Alex"},
	})

	if o.calls["m1"] != nil {
		t.Fatalf("empty call not deleted")
	}
	if o.sessions[a].callID != "" {
		t.Fatalf("session still tied to the ended call")
	}
	raw := lastEvent(t, outA, protocol.EvtVoiceCallEnd)
	if raw == nil {
		t.Fatalf("no voice-call-end for the last participant")
	}
	var ev protocol.VoiceCallEndEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("%v", err)
	}
	if ev.MeetingID != "m1" {
		t.Fatalf("meetingId=%q", ev.MeetingID)
	}
}

func TestStartCall_NonHostRejected(t *testing.T) {
	o := newTestOffice(t)
	a, outA := connectClient(t, o)
	joinRoom(t, o, a, "R")
	drainEvents(t, outA)

	dispatch(o, a, protocol.Command{
		Name:      protocol.CmdStartCall,
		StartCall: &protocol.StartCallCmd{IsHost: false, Username: "Alex"},
	})

	raw := lastEvent(t, outA, protocol.EvtCallError)
	if raw == nil {
		t.Fatalf("no callError")
	}
	var ev protocol.CallErrorEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("%v", err)
	}
	if ev.Message != "Please wait for a host to start a call first." {
		t.Fatalf("message=%q", ev.Message)
	}
	if ev.Code != protocol.ErrNoActiveHost {
		t.Fatalf("code=%q", ev.Code)
	}
}

func TestStartCall_HostGetsChannel(t *testing.T) {
	o := newTestOffice(t)
	a, outA := connectClient(t, o)
	joinRoom(t, o, a, "R")
	drainEvents(t, outA)

	dispatch(o, a, protocol.Command{
		Name:      protocol.CmdStartCall,
		StartCall: &protocol.StartCallCmd{IsHost: true, Username: "Alex"},
	})

	raw := lastEvent(t, outA, protocol.EvtCallStarted)
	if raw == nil {
		t.Fatalf("no callStarted")
	}
	var ev protocol.CallStartedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("%v", err)
	}
	if !strings.HasPrefix(ev.Channel, "room_R_") {
		t.Fatalf("channel=%q want room_R_<timestamp>", ev.Channel)
	}
	if !ev.IsHost || ev.UserID != a || ev.DisplayName != "Alex" {
		t.Fatalf("callStarted=%+v", ev)
	}
}
