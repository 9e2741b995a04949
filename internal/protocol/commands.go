package protocol

import (
	"encoding/json"
	"fmt"
)

// Command is the closed union of every inbound event. Exactly one payload
// pointer is set, matching Name. Unknown event names fail decoding so a typo
// can never silently no-op.
type Command struct {
	Name string

	JoinRoom         *JoinRoomCmd
	AvatarUpdate     *AvatarUpdateCmd
	Move             *MoveCmd
	ChatMessage      *ChatMessageCmd
	PasswordCheck    *PasswordCheckCmd
	ItemsUpdate      *ItemsUpdateCmd
	AddTodo          *Todo
	UpdateTodo       *TodoUpdate
	DeleteTodo       *DeleteTodoCmd
	CreateTask       *Task
	ReorderTasks     *ReorderTasksCmd
	UpdateTaskStatus *UpdateTaskStatusCmd
	AddComment       *AddCommentCmd
	AssignTask       *AssignTaskCmd
	TakeTask         *TakeTaskCmd
	CodeUpdate       *CodeUpdateCmd
	NearDeskComputer *bool
	VoiceCallStart   *VoiceCallStartCmd
	VoiceCallJoin    *VoiceCallJoinCmd
	VoiceCallLeave   *VoiceCallLeaveCmd
	VoiceCallMute    *VoiceCallMuteCmd
	StartCall        *StartCallCmd
}

type JoinRoomCmd struct {
	RoomID    string `json:"roomId"`
	AvatarURL string `json:"avatarUrl"`
}

type AvatarUpdateCmd struct {
	AvatarURL string `json:"avatarUrl"`
}

type MoveCmd struct {
	From Vec2 `json:"from"`
	To   Vec2 `json:"to"`
}

type ChatMessageCmd struct {
	Message string `json:"message"`
}

type PasswordCheckCmd struct {
	Password string `json:"password"`
}

type ItemsUpdateCmd struct {
	Items []PlacedItem `json:"items"`
}

// TodoUpdate carries only the fields the client changed; nil means "keep the
// stored value". Applied as a shallow merge onto the stored todo.
type TodoUpdate struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type DeleteTodoCmd struct {
	ID string `json:"id"`
}

type ReorderTasksCmd struct {
	Tasks []Task `json:"tasks"`
}

// UpdateTaskStatusCmd serves two collections: a status string moves the task
// on the board, a completed flag flips the assignment record.
type UpdateTaskStatusCmd struct {
	TaskID    string `json:"taskId"`
	Status    string `json:"status,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
}

type AddCommentCmd struct {
	TaskID    string `json:"taskId"`
	Comment   string `json:"comment"`
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type AssignTaskCmd struct {
	TaskID       string `json:"taskId"`
	AssignedTo   string `json:"assignedTo"`
	AssignedName string `json:"assignedName,omitempty"`
	AssignedAt   string `json:"assignedAt,omitempty"`
	Deadline     string `json:"deadline,omitempty"`
}

type TakeTaskCmd struct {
	TaskID   string `json:"taskId"`
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	TakenAt  string `json:"takenAt,omitempty"`
}

type CodeUpdateCmd struct {
	Code   string `json:"code"`
	Sender string `json:"sender,omitempty"`
}

type VoiceCallStartCmd struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
	IsMuted   bool   `json:"isMuted"`
}

type VoiceCallJoinCmd struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
	IsMuted   bool   `json:"isMuted"`
}

type VoiceCallLeaveCmd struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
}

type VoiceCallMuteCmd struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
	IsMuted   bool   `json:"isMuted"`
}

type StartCallCmd struct {
	IsHost   bool   `json:"isHost"`
	Username string `json:"username"`
}

// DecodeCommand parses an envelope frame into the command union.
func DecodeCommand(b []byte) (Command, error) {
	env, err := DecodeEnvelope(b)
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Name: env.Event}

	into := func(v any) error {
		if len(env.Data) == 0 {
			return fmt.Errorf("%s: missing payload", env.Event)
		}
		if err := json.Unmarshal(env.Data, v); err != nil {
			return fmt.Errorf("%s: %w", env.Event, err)
		}
		return nil
	}

	switch env.Event {
	case CmdJoinRoom:
		cmd.JoinRoom = &JoinRoomCmd{}
		err = into(cmd.JoinRoom)
	case CmdLeaveRoom, CmdDance, CmdGetTodos, CmdGetTasks, CmdGetComments, CmdGetTaskAssignments:
		// No payload.
	case CmdAvatarUpdate:
		cmd.AvatarUpdate = &AvatarUpdateCmd{}
		err = into(cmd.AvatarUpdate)
	case CmdMove:
		cmd.Move = &MoveCmd{}
		err = into(cmd.Move)
	case CmdChatMessage:
		cmd.ChatMessage = &ChatMessageCmd{}
		err = into(cmd.ChatMessage)
	case CmdPasswordCheck:
		cmd.PasswordCheck = &PasswordCheckCmd{}
		err = into(cmd.PasswordCheck)
	case CmdItemsUpdate:
		cmd.ItemsUpdate = &ItemsUpdateCmd{}
		err = into(cmd.ItemsUpdate)
	case CmdAddTodo:
		cmd.AddTodo = &Todo{}
		err = into(cmd.AddTodo)
	case CmdUpdateTodo:
		cmd.UpdateTodo = &TodoUpdate{}
		err = into(cmd.UpdateTodo)
	case CmdDeleteTodo:
		cmd.DeleteTodo = &DeleteTodoCmd{}
		err = into(cmd.DeleteTodo)
	case CmdCreateTask:
		cmd.CreateTask = &Task{}
		err = into(cmd.CreateTask)
	case CmdReorderTasks:
		cmd.ReorderTasks = &ReorderTasksCmd{}
		err = into(cmd.ReorderTasks)
	case CmdUpdateTaskStatus:
		cmd.UpdateTaskStatus = &UpdateTaskStatusCmd{}
		err = into(cmd.UpdateTaskStatus)
	case CmdAddComment:
		cmd.AddComment = &AddCommentCmd{}
		err = into(cmd.AddComment)
	case CmdAssignTask:
		cmd.AssignTask = &AssignTaskCmd{}
		err = into(cmd.AssignTask)
	case CmdTakeTask:
		cmd.TakeTask = &TakeTaskCmd{}
		err = into(cmd.TakeTask)
	case CmdCodeUpdate:
		cmd.CodeUpdate = &CodeUpdateCmd{}
		err = into(cmd.CodeUpdate)
	case CmdNearDeskComputer:
		var near bool
		err = into(&near)
		cmd.NearDeskComputer = &near
	case CmdVoiceCallStart:
		cmd.VoiceCallStart = &VoiceCallStartCmd{}
		err = into(cmd.VoiceCallStart)
	case CmdVoiceCallJoin:
		cmd.VoiceCallJoin = &VoiceCallJoinCmd{}
		err = into(cmd.VoiceCallJoin)
	case CmdVoiceCallLeave:
		cmd.VoiceCallLeave = &VoiceCallLeaveCmd{}
		err = into(cmd.VoiceCallLeave)
	case CmdVoiceCallMute:
		cmd.VoiceCallMute = &VoiceCallMuteCmd{}
		err = into(cmd.VoiceCallMute)
	case CmdStartCall:
		cmd.StartCall = &StartCallCmd{}
		err = into(cmd.StartCall)
	default:
		return Command{}, fmt.Errorf("unknown event %q", env.Event)
	}
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}
