package protocol

// Vec2 is a grid cell coordinate, [x, y].
type Vec2 [2]int

func (v Vec2) X() int { return v[0] }
func (v Vec2) Y() int { return v[1] }

// PlacedItem is one furniture instance inside a room. Size, walkable and wall
// come from the item catalog; clients send them back verbatim on layout edits.
type PlacedItem struct {
	Name         string `json:"name"`
	GridPosition Vec2   `json:"gridPosition"`
	Rotation     int    `json:"rotation,omitempty"`
	Size         Vec2   `json:"size,omitempty"`
	Walkable     bool   `json:"walkable,omitempty"`
	Wall         bool   `json:"wall,omitempty"`
}

// Character is the server-side avatar record for one connection in one room.
// Position is the cell the character last moved FROM; clients walk the path.
type Character struct {
	ID            string `json:"id"`
	Session       int    `json:"session"`
	Position      Vec2   `json:"position"`
	Path          []Vec2 `json:"path,omitempty"`
	AvatarURL     string `json:"avatarUrl"`
	CanUpdateRoom bool   `json:"canUpdateRoom,omitempty"`
}

type MapData struct {
	GridDivision int          `json:"gridDivision"`
	Size         Vec2         `json:"size"`
	Items        []PlacedItem `json:"items"`
}

// RoomSummary is the lobby view of a room. It never carries the password or
// grid internals.
type RoomSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NbCharacters int    `json:"nbCharacters"`
}

type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type Comment struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

type Assignment struct {
	TaskID       string `json:"taskId"`
	AssignedTo   string `json:"assignedTo"`
	AssignedName string `json:"assignedName"`
	AssignedAt   string `json:"assignedAt"`
	Deadline     string `json:"deadline"`
	Completed    bool   `json:"completed"`
}

type CallParticipant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsMuted  bool   `json:"isMuted"`
	IsHost   bool   `json:"isHost"`
}

// Server event payloads.

type WelcomeEvent struct {
	Rooms []RoomSummary `json:"rooms"`
	Items any           `json:"items"`
}

type RoomJoinedEvent struct {
	Map        MapData     `json:"map"`
	Characters []Character `json:"characters"`
	ID         string      `json:"id"`
}

type MapUpdateEvent struct {
	Map        MapData     `json:"map"`
	Characters []Character `json:"characters"`
}

type UserCountEvent struct {
	Count int `json:"count"`
}

type UserRoleEvent struct {
	IsAdmin bool `json:"isAdmin"`
}

type EditPermissionEvent struct {
	CanEdit bool `json:"canEdit"`
	IsAdmin bool `json:"isAdmin"`
}

type PlayerDanceEvent struct {
	ID string `json:"id"`
}

type PlayerChatEvent struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type CodeUpdateEvent struct {
	Code   string `json:"code"`
	Sender string `json:"sender,omitempty"`
}

type CallStartedEvent struct {
	Channel     string `json:"channel"`
	IsHost      bool   `json:"isHost"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type CallErrorEvent struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type HostChangedEvent struct {
	PreviousHost string `json:"previousHost"`
	NewHost      string `json:"newHost"`
	DisplayName  string `json:"displayName"`
}

type UserLeftEvent struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type VoiceUserJoinEvent struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
	IsMuted   bool   `json:"isMuted"`
}

type VoiceUserLeaveEvent struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
}

type VoiceParticipantsEvent struct {
	MeetingID    string            `json:"meetingId"`
	Participants []CallParticipant `json:"participants"`
}

type VoiceMuteChangeEvent struct {
	MeetingID string `json:"meetingId"`
	Username  string `json:"username"`
	IsMuted   bool   `json:"isMuted"`
}

type VoiceCallEndEvent struct {
	MeetingID string `json:"meetingId"`
}

type VoiceCallErrorEvent struct {
	Error     string `json:"error"`
	MeetingID string `json:"meetingId"`
	Code      string `json:"code,omitempty"`
}
