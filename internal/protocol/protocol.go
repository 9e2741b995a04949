package protocol

import (
	"encoding/json"
	"fmt"
)

// Every frame on the wire is an envelope: an event name plus a payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names (client -> server).
const (
	CmdJoinRoom           = "joinRoom"
	CmdLeaveRoom          = "leaveRoom"
	CmdAvatarUpdate       = "characterAvatarUpdate"
	CmdMove               = "move"
	CmdDance              = "dance"
	CmdChatMessage        = "chatMessage"
	CmdPasswordCheck      = "passwordCheck"
	CmdItemsUpdate        = "itemsUpdate"
	CmdGetTodos           = "getTodos"
	CmdAddTodo            = "addTodo"
	CmdUpdateTodo         = "updateTodo"
	CmdDeleteTodo         = "deleteTodo"
	CmdGetTasks           = "getTasks"
	CmdCreateTask         = "createTask"
	CmdReorderTasks       = "reorderTasks"
	CmdUpdateTaskStatus   = "updateTaskStatus"
	CmdGetComments        = "getComments"
	CmdAddComment         = "addComment"
	CmdGetTaskAssignments = "getTaskAssignments"
	CmdAssignTask         = "assignTask"
	CmdTakeTask           = "takeTask"
	CmdCodeUpdate         = "codeUpdate"
	CmdNearDeskComputer   = "nearDeskComputer"
	CmdVoiceCallStart     = "voice-call-start"
	CmdVoiceCallJoin      = "voice-call-join"
	CmdVoiceCallLeave     = "voice-call-leave"
	CmdVoiceCallMute      = "voice-call-mute-change"
	CmdStartCall          = "startCall"
)

// Outbound event names (server -> client).
const (
	EvtWelcome               = "welcome"
	EvtRooms                 = "rooms"
	EvtRoomJoined            = "roomJoined"
	EvtCharacters            = "characters"
	EvtUserCountUpdate       = "userCountUpdate"
	EvtUserRole              = "userRole"
	EvtEditPermissionUpdate  = "editPermissionUpdate"
	EvtPlayerMove            = "playerMove"
	EvtPlayerDance           = "playerDance"
	EvtPlayerChatMessage     = "playerChatMessage"
	EvtMapUpdate             = "mapUpdate"
	EvtTodosUpdate           = "todosUpdate"
	EvtTasksUpdate           = "tasksUpdate"
	EvtCommentsUpdate        = "commentsUpdate"
	EvtTaskAssignmentsUpdate = "taskAssignmentsUpdate"
	EvtCodeUpdate            = "codeUpdate"
	EvtPasswordCheckSuccess  = "passwordCheckSuccess"
	EvtPasswordCheckFail     = "passwordCheckFail"
	EvtCallStarted           = "callStarted"
	EvtCallError             = "callError"
	EvtNearDeskComputer      = "nearDeskComputer"
	EvtHostChanged           = "host-changed"
	EvtUserLeft              = "user-left"
	EvtVoiceUserJoin         = "voice-call-user-join"
	EvtVoiceUserLeave        = "voice-call-user-leave"
	EvtVoiceParticipants     = "voice-call-participants"
	EvtVoiceMuteChange       = "voice-call-mute-change"
	EvtVoiceCallEnd          = "voice-call-end"
	EvtVoiceCallError        = "voice-call-error"
)

// Encode wraps a payload into an envelope frame.
func Encode(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, err
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("envelope missing event name")
	}
	return env, nil
}
